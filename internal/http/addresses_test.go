package http

import (
	"net/http"
	"testing"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAddress_OK(t *testing.T) {
	repo := &mockAddressesRepo{}
	c, rec := newJSONContext(http.MethodPost, "/api/customers/7/addresses",
		`{"address_details": "12 Elm Street", "city": "Austin", "state": "TX", "pin_code": "73301"}`)
	c.SetPath("/api/customers/:id/addresses")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, createAddressHandler(repo)(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var got model.Address
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, int64(21), got.ID)
	assert.Equal(t, int64(7), got.CustomerID)
	assert.Equal(t, "Austin", got.City)
}

func TestCreateAddress_MissingParentCustomer(t *testing.T) {
	// the FK rejects the orphaned insert; surfaced as not-found
	repo := &mockAddressesRepo{insertErr: &mysql.MySQLError{
		Number:  1452,
		Message: "Cannot add or update a child row: a foreign key constraint fails",
	}}
	c, rec := newJSONContext(http.MethodPost, "/api/customers/99/addresses",
		`{"address_details": "12 Elm Street", "city": "Austin", "state": "TX", "pin_code": "73301"}`)
	c.SetPath("/api/customers/:id/addresses")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, createAddressHandler(repo)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	assert.Equal(t, "customer not found", body["error"])
}

func TestCreateAddress_MalformedPinCode(t *testing.T) {
	repo := &mockAddressesRepo{}
	c, rec := newJSONContext(http.MethodPost, "/api/customers/7/addresses",
		`{"address_details": "12 Elm Street", "city": "Austin", "state": "TX", "pin_code": "12345678901"}`)
	c.SetPath("/api/customers/:id/addresses")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, createAddressHandler(repo)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAddress_MissingField(t *testing.T) {
	repo := &mockAddressesRepo{}
	c, rec := newJSONContext(http.MethodPost, "/api/customers/7/addresses",
		`{"address_details": "12 Elm Street", "state": "TX", "pin_code": "73301"}`)
	c.SetPath("/api/customers/:id/addresses")
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, createAddressHandler(repo)(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	assert.Equal(t, "city is required", body["error"])
}

func TestGetAddress_OK(t *testing.T) {
	repo := &mockAddressesRepo{address: &model.Address{
		ID: 3, CustomerID: 7, AddressDetails: "12 Elm Street", City: "Austin", State: "TX", PinCode: "73301",
	}}
	c, rec := newJSONContext(http.MethodGet, "/api/addresses/3", "")
	c.SetPath("/api/addresses/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, getAddressHandler(repo)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got model.Address
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, int64(3), got.ID)
}

func TestGetAddress_NotFound(t *testing.T) {
	repo := &mockAddressesRepo{getErr: repository.ErrNotFound}
	c, rec := newJSONContext(http.MethodGet, "/api/addresses/99", "")
	c.SetPath("/api/addresses/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, getAddressHandler(repo)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var body map[string]string
	require.NoError(t, decodeBody(rec, &body))
	assert.Equal(t, "address not found", body["error"])
}

func TestUpdateAddress_OK(t *testing.T) {
	repo := &mockAddressesRepo{}
	c, rec := newJSONContext(http.MethodPut, "/api/addresses/3",
		`{"address_details": "400 Congress Ave", "city": "Dallas", "state": "TX", "pin_code": "75201"}`)
	c.SetPath("/api/addresses/:id")
	c.SetParamNames("id")
	c.SetParamValues("3")

	require.NoError(t, updateAddressHandler(repo)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, decodeBody(rec, &body))
	assert.Equal(t, float64(3), body["updatedID"])
}

func TestUpdateAddress_NotFound(t *testing.T) {
	// updating a missing address id reports not-found; this is the documented
	// behavior, not a silent success
	repo := &mockAddressesRepo{updateErr: repository.ErrNotFound}
	c, rec := newJSONContext(http.MethodPut, "/api/addresses/99",
		`{"address_details": "400 Congress Ave", "city": "Dallas", "state": "TX", "pin_code": "75201"}`)
	c.SetPath("/api/addresses/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, updateAddressHandler(repo)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteAddress_NotFound(t *testing.T) {
	repo := &mockAddressesRepo{deleteErr: repository.ErrNotFound}
	c, rec := newJSONContext(http.MethodDelete, "/api/addresses/99", "")
	c.SetPath("/api/addresses/:id")
	c.SetParamNames("id")
	c.SetParamValues("99")

	require.NoError(t, deleteAddressHandler(repo)(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListCities(t *testing.T) {
	repo := &mockAddressesRepo{cities: []string{"Austin", "Dallas", "Seattle"}}
	c, rec := newJSONContext(http.MethodGet, "/api/customers/cities", "")

	require.NoError(t, listCitiesHandler(repo)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []string
	require.NoError(t, decodeBody(rec, &got))
	assert.Equal(t, []string{"Austin", "Dallas", "Seattle"}, got)
}

func TestListCities_Empty(t *testing.T) {
	repo := &mockAddressesRepo{cities: []string{}}
	c, rec := newJSONContext(http.MethodGet, "/api/customers/cities", "")

	require.NoError(t, listCitiesHandler(repo)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
