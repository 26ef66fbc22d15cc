package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	HotelStatusPending   = "pending"
	HotelStatusActive    = "active"
	HotelStatusRejected  = "rejected"
	HotelStatusSuspended = "suspended"
)

type Hotel struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	OwnerID     uint   `gorm:"index" json:"owner_id"`
	Name        string `gorm:"size:255;index" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	Address     string `gorm:"size:255" json:"address"`
	City        string `gorm:"size:100;index" json:"city"`
	District    string `gorm:"size:100" json:"district,omitempty"`
	StarRating  int    `json:"star_rating,omitempty"`
	Phone       string `gorm:"size:30" json:"phone,omitempty"`
	Email       string `gorm:"size:150" json:"email,omitempty"`
	ImageURL    string `gorm:"size:255" json:"image_url,omitempty"`

	Status     string `gorm:"size:32;default:pending;index" json:"status"`
	IsFeatured bool   `gorm:"default:false" json:"is_featured"`

	Owner User   `gorm:"foreignKey:OwnerID" json:"-"`
	Rooms []Room `gorm:"foreignKey:HotelID" json:"rooms,omitempty"`
}
