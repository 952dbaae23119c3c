package models

// Item status values. Items with a null SuperItemID are category headers,
// not orderable dishes.
const (
	ItemAvailable   = "Available"
	ItemUnavailable = "Unavailable"
)

type Item struct {
	ItemID      string   `gorm:"primaryKey;type:varchar(10)" json:"item_id"`
	Name        string   `gorm:"type:varchar(100);not null" json:"name"`
	Price       *float64 `gorm:"type:decimal(10,2)" json:"price"`
	Status      string   `gorm:"type:varchar(11)" json:"status"`
	SuperItemID *string  `gorm:"type:varchar(10);index" json:"super_item_id"`
	SuperItem   *Item    `gorm:"foreignKey:SuperItemID;references:ItemID" json:"-"`
}

// Orderable reports whether the item can be added to an order:
// it must be a leaf item (has a parent category) and available.
func (i *Item) Orderable() bool {
	return i.SuperItemID != nil && i.Status == ItemAvailable
}
