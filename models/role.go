package models

import "time"

// Role names seeded at boot. Dashboard scope depends on these.
const (
	RoleCustomer   = "customer"
	RoleHotelOwner = "hotel_owner"
	RoleAdmin      = "admin"
)

type Role struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:50;uniqueIndex" json:"name"`
	Description string    `gorm:"size:255" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
