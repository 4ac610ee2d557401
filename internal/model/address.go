package model

// Address is a postal address owned by exactly one customer. Rows are removed
// automatically when the parent customer is deleted.
type Address struct {
	ID             int64  `db:"id" json:"id"`
	CustomerID     int64  `db:"customer_id" json:"customer_id"`
	AddressDetails string `db:"address_details" json:"address_details"`
	City           string `db:"city" json:"city"`
	State          string `db:"state" json:"state"`
	PinCode        string `db:"pin_code" json:"pin_code"`
}
