package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ReviewStatusActive = "active"
	ReviewStatusHidden = "hidden"
)

type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID   uint   `gorm:"index" json:"hotel_id"`
	UserID    uint   `gorm:"index" json:"user_id"`
	BookingID uint   `gorm:"index" json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `gorm:"type:text" json:"comment,omitempty"`
	Status    string `gorm:"size:32;default:active;index" json:"status"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
