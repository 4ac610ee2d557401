package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/crmdesk/customer-registry/internal/util"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
)

// RegistryService is the slice of the registry service the handlers need.
type RegistryService interface {
	CreateCustomer(ctx context.Context, c *model.Customer) error
	GetCustomer(ctx context.Context, id int64) (*model.Customer, error)
}

type customerReq struct {
	FirstName   string       `json:"first_name"`
	LastName    string       `json:"last_name"`
	PhoneNumber string       `json:"phone_number"`
	Addresses   []addressReq `json:"addresses"`
}

func (r *customerReq) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.PhoneNumber = util.NormalizePhone(r.PhoneNumber)
	for i := range r.Addresses {
		r.Addresses[i].normalize()
	}
}

// validate returns a field-level message, or "" when the payload is valid.
func (r customerReq) validate() string {
	switch {
	case r.FirstName == "":
		return "first_name is required"
	case r.LastName == "":
		return "last_name is required"
	case r.PhoneNumber == "":
		return "phone_number is required"
	case !util.ValidPhone(r.PhoneNumber):
		return "phone_number must be 7-15 digits, optionally prefixed with +"
	}
	for _, a := range r.Addresses {
		if msg := a.validate(); msg != "" {
			return msg
		}
	}
	return ""
}

func parseIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func listCustomersHandler(customersRepo repository.CustomersRepository, pageSize int) echo.HandlerFunc {
	return func(c echo.Context) error {
		page := 1
		if v := c.QueryParam("page"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				page = n
			}
		}

		// limit is accepted for compatibility but capped at the configured page size
		limit := pageSize
		if v := c.QueryParam("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= pageSize {
				limit = n
			}
		}

		customers, total, err := customersRepo.List(c.Request().Context(), repository.ListFilter{
			Search:   strings.TrimSpace(c.QueryParam("search")),
			City:     strings.TrimSpace(c.QueryParam("city")),
			Page:     page,
			PageSize: limit,
		})
		if err != nil {
			log.Errorf("list customers failed: %v", err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{
			"data":  customers,
			"total": total,
		})
	}
}

func getCustomerHandler(svc RegistryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		}

		customer, err := svc.GetCustomer(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		if err != nil {
			log.Errorf("get customer %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, customer)
	}
}

func createCustomerHandler(svc RegistryService) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req customerReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.normalize()
		if msg := req.validate(); msg != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		customer := model.Customer{
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
			Addresses:   []model.Address{},
		}
		for _, a := range req.Addresses {
			customer.Addresses = append(customer.Addresses, a.toModel(0))
		}

		if err := svc.CreateCustomer(c.Request().Context(), &customer); err != nil {
			if repository.IsDuplicateEntry(err) {
				return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
			}

			log.Errorf("create customer failed: %v", err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusCreated, customer)
	}
}

func updateCustomerHandler(customersRepo repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		}

		var req customerReq
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad request"})
		}

		req.normalize()
		req.Addresses = nil // addresses are managed through their own routes
		if msg := req.validate(); msg != "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
		}

		err := customersRepo.Update(c.Request().Context(), &model.Customer{
			ID:          id,
			FirstName:   req.FirstName,
			LastName:    req.LastName,
			PhoneNumber: req.PhoneNumber,
		})
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		if err != nil {
			if repository.IsDuplicateEntry(err) {
				return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
			}

			log.Errorf("update customer %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{"updatedID": id})
	}
}

func deleteCustomerHandler(customersRepo repository.CustomersRepository) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := parseIDParam(c)
		if !ok {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid customer id"})
		}

		err := customersRepo.Delete(c.Request().Context(), id)
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "customer not found"})
		}
		if err != nil {
			log.Errorf("delete customer %d failed: %v", id, err)

			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}

		return c.JSON(http.StatusOK, map[string]any{"deletedID": id})
	}
}
