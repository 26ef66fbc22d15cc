package models

import "time"

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uint   `gorm:"index" json:"user_id"`
	Title   string `gorm:"size:255" json:"title"`
	Message string `gorm:"type:text" json:"message"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}

type SearchHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID      uint       `gorm:"index" json:"user_id"`
	Destination string     `gorm:"size:255" json:"destination"`
	CheckIn     *time.Time `gorm:"column:check_in" json:"check_in,omitempty"`
	CheckOut    *time.Time `gorm:"column:check_out" json:"check_out,omitempty"`
	NumGuests   int        `gorm:"column:num_guests" json:"num_guests,omitempty"`
}

type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID  uint `gorm:"index:idx_fav_user_hotel,unique" json:"user_id"`
	HotelID uint `gorm:"index:idx_fav_user_hotel,unique" json:"hotel_id"`

	Hotel Hotel `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
}
