package models

import (
	"gorm.io/gorm"
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusUnavailable = "unavailable"
)

type RoomType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"size:100;uniqueIndex" json:"name"`
	Description string `gorm:"size:255" json:"description,omitempty"`
	MaxGuests   int    `json:"max_guests"`
}

// Room is a room type offering within a hotel. Quantity is the number of
// physical units of this room, not a per-night counter.
type Room struct {
	gorm.Model

	HotelID    uint  `gorm:"index" json:"hotel_id"`
	RoomTypeID *uint `gorm:"column:room_type_id" json:"room_type_id,omitempty"`

	Name         string  `gorm:"size:255" json:"name"`
	RoomNumber   string  `gorm:"column:room_number;size:50" json:"room_number,omitempty"`
	Description  string  `gorm:"type:text" json:"description,omitempty"`
	MaxGuests    int     `gorm:"column:max_guests" json:"max_guests"`
	NumBeds      int     `gorm:"column:num_beds;default:1" json:"num_beds"`
	BasePrice    float64 `gorm:"column:base_price" json:"base_price"`
	WeekendPrice float64 `gorm:"column:weekend_price" json:"weekend_price,omitempty"`
	Quantity     int     `gorm:"default:1" json:"quantity"`
	Status       string  `gorm:"size:32;default:available" json:"status"`
	ImageURL     string  `gorm:"size:255" json:"image_url,omitempty"`

	Hotel    Hotel    `gorm:"foreignKey:HotelID" json:"-"`
	RoomType RoomType `gorm:"foreignKey:RoomTypeID" json:"room_type,omitempty"`
}
