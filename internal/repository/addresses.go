package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/jmoiron/sqlx"
)

// AddressesRepository defines persistence for the addresses table. Existence
// of the parent customer is not pre-checked; the foreign key rejects orphaned
// inserts (see IsForeignKeyViolation).
type AddressesRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Address, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error)
	Insert(ctx context.Context, tx *sqlx.Tx, a *model.Address) error
	Update(ctx context.Context, a *model.Address) error
	Delete(ctx context.Context, id int64) error
	DistinctCities(ctx context.Context) ([]string, error)
}

type AddressesRepositoryImpl struct {
	db *sqlx.DB
}

func NewAddressesRepository(db *sqlx.DB) *AddressesRepositoryImpl {
	return &AddressesRepositoryImpl{db: db}
}

var _ AddressesRepository = (*AddressesRepositoryImpl)(nil)

func (r *AddressesRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
	if tx != nil {
		return fn(tx)
	}
	t, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = t.Rollback() }()
	if err := fn(t); err != nil {
		return err
	}
	return t.Commit()
}

func (r *AddressesRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Address, error) {
	var a model.Address
	err := r.db.GetContext(ctx, &a, `
		SELECT id, customer_id, address_details, city, state, pin_code
		  FROM addresses
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AddressesRepositoryImpl) ListByCustomer(ctx context.Context, customerID int64) ([]model.Address, error) {
	addresses := []model.Address{}
	err := r.db.SelectContext(ctx, &addresses, `
		SELECT id, customer_id, address_details, city, state, pin_code
		  FROM addresses
		 WHERE customer_id = ?
		 ORDER BY id ASC
	`, customerID)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// Insert creates the address row and writes the generated id back into a.
func (r *AddressesRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, a *model.Address) error {
	const q = `
		INSERT INTO addresses (customer_id, address_details, city, state, pin_code)
		VALUES (?, ?, ?, ?, ?)
	`
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, a.CustomerID, a.AddressDetails, a.City, a.State, a.PinCode)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		a.ID = id
		return nil
	})
}

// Update overwrites the four mutable fields; customer_id is not reassignable.
// Returns ErrNotFound when the id matched no row.
func (r *AddressesRepositoryImpl) Update(ctx context.Context, a *model.Address) error {
	const q = `
		UPDATE addresses
		   SET address_details = ?, city = ?, state = ?, pin_code = ?
		 WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, q, a.AddressDetails, a.City, a.State, a.PinCode, a.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AddressesRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM addresses WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctCities returns the distinct city values across all addresses, sorted
// ascending. Used to populate the list view's city filter control.
func (r *AddressesRepositoryImpl) DistinctCities(ctx context.Context) ([]string, error) {
	cities := []string{}
	err := r.db.SelectContext(ctx, &cities, `SELECT DISTINCT city FROM addresses ORDER BY city ASC`)
	if err != nil {
		return nil, err
	}
	return cities, nil
}
