package models

import "time"

type Invoice struct {
	InvoiceID   string     `gorm:"primaryKey;type:varchar(10)" json:"invoice_id"`
	DateCreated *time.Time `json:"date_created"`
	Tax         *float64   `gorm:"type:decimal(10,2)" json:"tax"`
	StaffID     string     `gorm:"type:varchar(10);not null;index" json:"staff_id"`
	CustomerID  string     `gorm:"type:varchar(10);not null;index" json:"customer_id"`
	Customer    Customer   `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
}
