package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/crmdesk/customer-registry/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

type addressReq struct {
	AddressDetails string `json:"address_details"`
	City           string `json:"city"`
	State          string `json:"state"`
	PinCode        string `json:"pin_code"`
}

func (r *addressReq) normalize() {
	r.AddressDetails = strings.TrimSpace(r.AddressDetails)
	r.City = strings.TrimSpace(r.City)
	r.State = strings.TrimSpace(r.State)
	r.PinCode = strings.TrimSpace(r.PinCode)
}

// validate returns a field-level message, or "" when the payload is valid.
// pin_code format is enforced here so direct API calls cannot bypass the UI check.
func (r addressReq) validate() string {
	switch {
	case r.AddressDetails == "":
		return "address_details is required"
	case r.City == "":
		return "city is required"
	case r.State == "":
		return "state is required"
	case r.PinCode == "":
		return "pin_code is required"
	case !util.ValidPinCode(r.PinCode):
		return "pin_code must be 4-10 digits"
	}
	return ""
}

func (r addressReq) toModel(customerID int64) model.Address {
	return model.Address{
		CustomerID:     customerID,
		AddressDetails: r.AddressDetails,
		City:           r.City,
		State:          r.State,
		PinCode:        r.PinCode,
	}
}

func listCitiesHandler(addressesRepo repository.AddressesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		cities, err := addressesRepo.DistinctCities(c.Request().Context())
		if err != nil {
			log.Errorf("list cities failed: %v", err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, cities)
	}
}

func createAddressHandler(addressesRepo repository.AddressesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		customerID, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		}

		var req addressReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.normalize()
		if msg := req.validate(); msg != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		address := req.toModel(customerID)
		if err := addressesRepo.Insert(c.Request().Context(), nil, &address); err != nil {
			// the FK rejects inserts against a missing parent
			if repository.IsForeignKeyViolation(err) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
			}

			log.Errorf("create address for customer %d failed: %v", customerID, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, address)
	}
}

func getAddressHandler(addressesRepo repository.AddressesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid address id"})
		}

		address, err := addressesRepo.GetByID(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "address not found"})
		}
		if err != nil {
			log.Errorf("get address %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, address)
	}
}

func updateAddressHandler(addressesRepo repository.AddressesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid address id"})
		}

		var req addressReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.normalize()
		if msg := req.validate(); msg != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		address := req.toModel(0)
		address.ID = id
		err := addressesRepo.Update(c.Request().Context(), &address)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "address not found"})
		}
		if err != nil {
			log.Errorf("update address %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{"updatedID": id})
	}
}

func deleteAddressHandler(addressesRepo repository.AddressesRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid address id"})
		}

		err := addressesRepo.Delete(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "address not found"})
		}
		if err != nil {
			log.Errorf("delete address %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{"deletedID": id})
	}
}
