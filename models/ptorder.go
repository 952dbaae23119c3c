package models

// Ptorder ties a completed order to the staff member and customer who
// closed it. One row per order, written idempotently by the complete
// operation.
type Ptorder struct {
	OrderID    string   `gorm:"primaryKey;type:varchar(10)" json:"order_id"`
	StaffID    string   `gorm:"type:varchar(10);not null;index" json:"staff_id"`
	CustomerID string   `gorm:"type:varchar(10);not null;index" json:"customer_id"`
	Customer   Customer `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
}
