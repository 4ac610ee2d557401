// Package registry coordinates the cross-table customer operations: the
// transactional create-with-addresses and the read that attaches owned
// addresses to the parent row.
package registry

import (
	"context"
	"fmt"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/crmdesk/customer-registry/internal/repository"
	"github.com/jmoiron/sqlx"
)

type Service struct {
	db        *sqlx.DB
	customers repository.CustomersRepository
	addresses repository.AddressesRepository
}

// New constructs the registry service.
func New(db *sqlx.DB, customersRepo repository.CustomersRepository, addressesRepo repository.AddressesRepository) *Service {
	return &Service{
		db:        db,
		customers: customersRepo,
		addresses: addressesRepo,
	}
}

// CreateCustomer inserts the customer row and any inline addresses within a
// single transaction. If any address insert fails the customer row is rolled
// back too; a partially created customer is never visible.
// Generated ids are written back into c and c.Addresses.
func (s *Service) CreateCustomer(ctx context.Context, c *model.Customer) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.customers.Insert(ctx, tx, c); err != nil {
		return err
	}

	for i := range c.Addresses {
		c.Addresses[i].CustomerID = c.ID
		if err := s.addresses.Insert(ctx, tx, &c.Addresses[i]); err != nil {
			return fmt.Errorf("insert address %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetCustomer fetches a customer by id together with all addresses it owns.
// Returns repository.ErrNotFound when the customer does not exist.
func (s *Service) GetCustomer(ctx context.Context, id int64) (*model.Customer, error) {
	c, err := s.customers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	addresses, err := s.addresses.ListByCustomer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list addresses: %w", err)
	}
	c.Addresses = addresses

	return c, nil
}
