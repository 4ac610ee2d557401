package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/jmoiron/sqlx"
)

// CustomersRepository defines persistence for the customers table. Insert and
// the address inserts of a combined create share a transaction via the tx
// parameter; passing nil runs the statement in its own transaction.
type CustomersRepository interface {
	List(ctx context.Context, f ListFilter) ([]model.Customer, int, error)
	GetByID(ctx context.Context, id int64) (*model.Customer, error)
	Insert(ctx context.Context, tx *sqlx.Tx, c *model.Customer) error
	Update(ctx context.Context, c *model.Customer) error
	Delete(ctx context.Context, id int64) error
}

type CustomersRepositoryImpl struct {
	db *sqlx.DB
}

func NewCustomersRepository(db *sqlx.DB) *CustomersRepositoryImpl {
	return &CustomersRepositoryImpl{db: db}
}

var _ CustomersRepository = (*CustomersRepositoryImpl)(nil)

func (r *CustomersRepositoryImpl) withTx(ctx context.Context, tx *sqlx.Tx, fn func(*sqlx.Tx) error) error {
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

// List returns one page of customers matching the filter plus the total count
// of matches with pagination ignored. A page past the end yields zero rows and
// the same total.
func (r *CustomersRepositoryImpl) List(ctx context.Context, f ListFilter) ([]model.Customer, int, error) {
	pageSQL, pageArgs, countSQL, countArgs := buildListQuery(f)

	customers := []model.Customer{}
	if err := r.db.SelectContext(ctx, &customers, pageSQL, pageArgs...); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.db.GetContext(ctx, &total, countSQL, countArgs...); err != nil {
		return nil, 0, err
	}

	return customers, total, nil
}

func (r *CustomersRepositoryImpl) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	var c model.Customer
	err := r.db.GetContext(ctx, &c, `
		SELECT id, first_name, last_name, phone_number
		  FROM customers
		 WHERE id = ? LIMIT 1
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Insert creates the customer row and writes the generated id back into c.
func (r *CustomersRepositoryImpl) Insert(ctx context.Context, tx *sqlx.Tx, c *model.Customer) error {
	const q = `
		INSERT INTO customers (first_name, last_name, phone_number)
		VALUES (?, ?, ?)
	`
	return r.withTx(ctx, tx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, q, c.FirstName, c.LastName, c.PhoneNumber)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		c.ID = id
		return nil
	})
}

// Update overwrites the three mutable fields. Returns ErrNotFound when the id
// matched no row.
func (r *CustomersRepositoryImpl) Update(ctx context.Context, c *model.Customer) error {
	const q = `
		UPDATE customers
		   SET first_name = ?, last_name = ?, phone_number = ?
		 WHERE id = ?
	`
	res, err := r.db.ExecContext(ctx, q, c.FirstName, c.LastName, c.PhoneNumber, c.ID)
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

// Delete removes the customer row; owned addresses go with it via the
// ON DELETE CASCADE foreign key. Returns ErrNotFound when the id matched no row.
func (r *CustomersRepositoryImpl) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
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
