package models

const (
	TableAvailable = "Available"
	TableOccupied  = "Occupied"
)

// Table is a physical table. Invariant: at most one order with status
// Serving references a table at any time.
type Table struct {
	TableID     int    `gorm:"primaryKey" json:"table_id"`
	TableNumber int    `gorm:"not null" json:"table_number"`
	Area        string `gorm:"type:varchar(50)" json:"area"`
	Status      string `gorm:"type:varchar(9);not null;default:'Available'" json:"status"`
}
