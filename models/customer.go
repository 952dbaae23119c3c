package models

// Customer rows are created through the upsert-by-phone procedure; the
// phone number is the idempotency key.
type Customer struct {
	CustomerID string  `gorm:"primaryKey;type:varchar(10)" json:"customer_id"`
	FullName   string  `gorm:"type:varchar(100);not null" json:"full_name"`
	Phone      *string `gorm:"type:varchar(15);unique" json:"phone"`
}
