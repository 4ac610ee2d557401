package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Table DDL kept in sync with migrations/001_init.sql. The addresses FK
// carries ON DELETE CASCADE: deleting a customer removes its addresses.
const (
	createCustomersTable = `
CREATE TABLE IF NOT EXISTS customers (
    id           BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    first_name   VARCHAR(255)    NOT NULL,
    last_name    VARCHAR(255)    NOT NULL,
    phone_number VARCHAR(32)     NOT NULL,
    PRIMARY KEY (id),
    UNIQUE KEY uq_customers_phone_number (phone_number)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`

	createAddressesTable = `
CREATE TABLE IF NOT EXISTS addresses (
    id              BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
    customer_id     BIGINT UNSIGNED NOT NULL,
    address_details VARCHAR(512)    NOT NULL,
    city            VARCHAR(128)    NOT NULL,
    state           VARCHAR(128)    NOT NULL,
    pin_code        VARCHAR(16)     NOT NULL,
    PRIMARY KEY (id),
    KEY idx_addresses_customer_id (customer_id),
    KEY idx_addresses_city (city),
    CONSTRAINT fk_addresses_customer FOREIGN KEY (customer_id)
        REFERENCES customers (id) ON DELETE CASCADE
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci`
)

// EnsureSchema creates the customers and addresses tables if they are absent.
// Safe to run on every startup.
func EnsureSchema(ctx context.Context, dbx *sqlx.DB) error {
	for _, stmt := range []string{createCustomersTable, createAddressesTable} {
		if _, err := dbx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
