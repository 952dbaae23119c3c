package models

// Detail is one line of an order: an item prepared by a chef in a given
// quantity. The (order, item, staff) triple is unique; adding the same
// item again increments Quantity instead of inserting a new row.
type Detail struct {
	DetailID uint   `gorm:"primaryKey" json:"detail_id"`
	OrderID  string `gorm:"type:varchar(10);not null;uniqueIndex:idx_detail_order_item_staff" json:"order_id"`
	ItemID   string `gorm:"type:varchar(10);not null;uniqueIndex:idx_detail_order_item_staff" json:"item_id"`
	Item     Item   `gorm:"foreignKey:ItemID;references:ItemID" json:"item"`
	StaffID  string `gorm:"type:varchar(10);not null;uniqueIndex:idx_detail_order_item_staff" json:"staff_id"`
	Staff    Staff  `gorm:"foreignKey:StaffID;references:StaffID" json:"-"`
	Quantity int    `gorm:"not null" json:"quantity"`
}
