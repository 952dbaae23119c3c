package models

import "time"

type Promotion struct {
	PromoID         string     `gorm:"primaryKey;type:varchar(10)" json:"promo_id"`
	Description     string     `gorm:"type:varchar(255)" json:"description"`
	MinValue        *float64   `gorm:"type:decimal(10,2)" json:"min_value"`
	ExpireDate      *time.Time `json:"expire_date"`
	DiscountPercent *float64   `gorm:"type:decimal(5,2)" json:"discount_percent"`
}
