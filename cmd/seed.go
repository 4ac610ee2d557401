package cmd

import (
	"fmt"
	"log"

	"github.com/crmdesk/customer-registry/internal/config"
	"github.com/crmdesk/customer-registry/internal/db"
	"github.com/crmdesk/customer-registry/internal/model"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo customers and addresses",
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1) load config
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// 2) connect MySQL
		sqlDB, err := db.NewMySQLConnection(cfg.MySQL.DSN, db.MySQLOpts{
			MaxOpenConns:    cfg.MySQL.MaxOpenConns,
			MaxIdleConns:    cfg.MySQL.MaxIdleConns,
			ConnMaxLifetime: cfg.MySQL.ConnMaxLifetime,
			ConnMaxIdleTime: cfg.MySQL.ConnMaxIdleTime,
			PingTimeout:     cfg.MySQL.PingTimeout,
		})
		if err != nil {
			return fmt.Errorf("mysql connect: %w", err)
		}
		defer sqlDB.Close()

		if err := db.EnsureSchema(cmd.Context(), sqlDB); err != nil {
			return err
		}

		log.Println(">> Seeding demo customers...")

		if err := seedCustomers(sqlDB); err != nil {
			return err
		}
		if err := ensureAddresses(sqlDB); err != nil {
			return err
		}

		log.Println(">> Seed completed ✅")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

// seedCustomers inserts 5 deterministic demo customers (idempotent).
func seedCustomers(dbx *sqlx.DB) error {
	customers := []model.Customer{
		{FirstName: "Ann", LastName: "Lee", PhoneNumber: "5551234567"},
		{FirstName: "Bruno", LastName: "Marques", PhoneNumber: "5552345678"},
		{FirstName: "Carla", LastName: "Nguyen", PhoneNumber: "5553456789"},
		{FirstName: "Dmitri", LastName: "Orlov", PhoneNumber: "5554567890"},
		{FirstName: "Esi", LastName: "Prah", PhoneNumber: "5555678901"},
	}

	// idempotent upsert based on phone_number (UNIQUE)
	const q = `
INSERT INTO customers
    (first_name, last_name, phone_number)
VALUES
    (?, ?, ?)
ON DUPLICATE KEY UPDATE
    first_name = VALUES(first_name),
    last_name  = VALUES(last_name)
`
	tx, err := dbx.Beginx()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, c := range customers {
		if _, err := tx.Exec(q, c.FirstName, c.LastName, c.PhoneNumber); err != nil {
			return fmt.Errorf("insert customer %q %q: %w", c.FirstName, c.LastName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit customers: %w", err)
	}
	return nil
}

// ensureAddresses attaches demo addresses to seeded customers that have none yet.
func ensureAddresses(dbx *sqlx.DB) error {
	addresses := []struct {
		phone string
		addr  model.Address
	}{
		{"5551234567", model.Address{AddressDetails: "12 Elm Street", City: "Austin", State: "TX", PinCode: "73301"}},
		{"5551234567", model.Address{AddressDetails: "400 Congress Ave", City: "Dallas", State: "TX", PinCode: "75201"}},
		{"5552345678", model.Address{AddressDetails: "88 Pine Road", City: "Austin", State: "TX", PinCode: "73344"}},
		{"5553456789", model.Address{AddressDetails: "7 Harbor Way", City: "Seattle", State: "WA", PinCode: "98101"}},
	}

	const q = `
INSERT INTO addresses (customer_id, address_details, city, state, pin_code)
SELECT c.id, ?, ?, ?, ?
FROM customers c
WHERE c.phone_number = ?
  AND NOT EXISTS (
      SELECT 1 FROM addresses a
      WHERE a.customer_id = c.id AND a.address_details = ?
  )
`
	for _, s := range addresses {
		if _, err := dbx.Exec(q, s.addr.AddressDetails, s.addr.City, s.addr.State, s.addr.PinCode, s.phone, s.addr.AddressDetails); err != nil {
			return fmt.Errorf("ensure address in %s: %w", s.addr.City, err)
		}
	}
	return nil
}
