package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/labstack/echo/v4"
)

// --- Mock registry service ---

type mockRegistry struct {
	createErr error
	created   *model.Customer

	customer *model.Customer
	getErr   error
}

func (m *mockRegistry) CreateCustomer(_ context.Context, c *model.Customer) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = 11
	for i := range c.Addresses {
		c.Addresses[i].ID = int64(i + 1)
		c.Addresses[i].CustomerID = c.ID
	}
	m.created = c
	return nil
}

func (m *mockRegistry) GetCustomer(_ context.Context, id int64) (*model.Customer, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.customer, nil
}

// --- Mock customers repository ---

type mockCustomersRepo struct {
	listRows  []model.Customer
	listTotal int
	listErr   error
	gotFilter repository.ListFilter

	updateErr error
	deleteErr error
}

func (m *mockCustomersRepo) List(_ context.Context, f repository.ListFilter) ([]model.Customer, int, error) {
	m.gotFilter = f
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.listRows, m.listTotal, nil
}

func (m *mockCustomersRepo) GetByID(_ context.Context, id int64) (*model.Customer, error) {
	return nil, repository.ErrNotFound
}

func (m *mockCustomersRepo) Insert(_ context.Context, _ *sqlx.Tx, c *model.Customer) error {
	c.ID = 1
	return nil
}

func (m *mockCustomersRepo) Update(_ context.Context, _ *model.Customer) error { return m.updateErr }
func (m *mockCustomersRepo) Delete(_ context.Context, _ int64) error           { return m.deleteErr }

// --- Mock addresses repository ---

type mockAddressesRepo struct {
	address *model.Address
	getErr  error

	insertErr error
	updateErr error
	deleteErr error

	cities    []string
	citiesErr error
}

func (m *mockAddressesRepo) GetByID(_ context.Context, id int64) (*model.Address, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.address, nil
}

func (m *mockAddressesRepo) ListByCustomer(_ context.Context, _ int64) ([]model.Address, error) {
	return []model.Address{}, nil
}

func (m *mockAddressesRepo) Insert(_ context.Context, _ *sqlx.Tx, a *model.Address) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	a.ID = 21
	return nil
}

func (m *mockAddressesRepo) Update(_ context.Context, _ *model.Address) error { return m.updateErr }
func (m *mockAddressesRepo) Delete(_ context.Context, _ int64) error          { return m.deleteErr }

func (m *mockAddressesRepo) DistinctCities(_ context.Context) ([]string, error) {
	if m.citiesErr != nil {
		return nil, m.citiesErr
	}
	return m.cities, nil
}

// --- Helpers ---

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(rec *httptest.ResponseRecorder, out any) error {
	return json.Unmarshal(rec.Body.Bytes(), out)
}
