package models

import "time"

const (
	OrderServing = "Serving"
	OrderPaid    = "Paid"
)

type Order struct {
	OrderID   string    `gorm:"primaryKey;type:varchar(10)" json:"order_id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	Status    string    `gorm:"type:varchar(9);not null;default:'Serving'" json:"status"`
	// Quantity caches the sum of detail quantities. It is recomputed from
	// the details after every mutation, never incremented in place.
	Quantity int      `gorm:"not null;default:0" json:"quantity"`
	TableID  int      `gorm:"not null;index" json:"table_id"`
	Table    Table    `gorm:"foreignKey:TableID" json:"-"`
	Details  []Detail `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"details"`
}

// TotalPrice sums quantity x item price over the loaded details.
// Details whose item or price is missing contribute 0 rather than failing.
func (o *Order) TotalPrice() float64 {
	var total float64
	for _, d := range o.Details {
		if d.Item.Price == nil {
			continue
		}
		total += float64(d.Quantity) * *d.Item.Price
	}
	return total
}
