package models

import "time"

// User is a login account for the API. Staff and User are separate:
// staff rows describe people on the floor, users hold credentials.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Username  string `gorm:"type:varchar(100);unique;not null" json:"username"`
	Password  string `gorm:"type:varchar(255);not null" json:"-"`
	Role      string `gorm:"type:varchar(50);not null" json:"role"`
	FullName  string `gorm:"type:varchar(100)" json:"full_name"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
