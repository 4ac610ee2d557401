package model

// Customer is a person record keyed by a surrogate id. PhoneNumber is unique
// across all customers and doubles as an alternate search key.
type Customer struct {
	ID          int64  `db:"id" json:"id"`
	FirstName   string `db:"first_name" json:"first_name"`
	LastName    string `db:"last_name" json:"last_name"`
	PhoneNumber string `db:"phone_number" json:"phone_number"`

	// Addresses is populated on single-customer reads and on create, where
	// the response always carries an addresses array (empty when the
	// customer owns none). List rows leave it nil.
	Addresses []Address `db:"-" json:"addresses"`
}
