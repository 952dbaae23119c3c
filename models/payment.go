package models

import "time"

type Payment struct {
	PaymentID string     `gorm:"primaryKey;type:varchar(10)" json:"payment_id"`
	Amount    *float64   `gorm:"type:decimal(10,2)" json:"amount"`
	PayDate   *time.Time `json:"pay_date"`
	Method    string     `gorm:"type:varchar(8)" json:"method"`
	Status    string     `gorm:"type:varchar(7)" json:"status"`
	InvoiceID *string    `gorm:"type:varchar(10);unique" json:"invoice_id"`
	Invoice   *Invoice   `gorm:"foreignKey:InvoiceID;references:InvoiceID" json:"-"`
	StaffID   string     `gorm:"type:varchar(10);not null;index" json:"staff_id"`
}
