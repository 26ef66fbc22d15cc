package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Promotion is a site-wide or per-hotel campaign. Conditions carries
// free-form constraints (minimum nights, room types) as JSON.
type Promotion struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	HotelID         *uint          `gorm:"index" json:"hotel_id,omitempty"`
	Title           string         `gorm:"size:255" json:"title"`
	Description     string         `gorm:"type:text" json:"description,omitempty"`
	DiscountPercent float64        `gorm:"column:discount_percent" json:"discount_percent"`
	StartDate       time.Time      `gorm:"column:start_date" json:"start_date"`
	EndDate         time.Time      `gorm:"column:end_date" json:"end_date"`
	IsActive        bool           `gorm:"default:true" json:"is_active"`
	Conditions      datatypes.JSON `json:"conditions,omitempty"`
}

type DiscountCode struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Code            string    `gorm:"size:64;uniqueIndex" json:"code"`
	OwnerID         *uint     `gorm:"column:owner_id;index" json:"owner_id,omitempty"`
	DiscountPercent float64   `gorm:"column:discount_percent" json:"discount_percent"`
	MaxDiscount     float64   `gorm:"column:max_discount" json:"max_discount,omitempty"`
	ValidFrom       time.Time `gorm:"column:valid_from" json:"valid_from"`
	ValidTo         time.Time `gorm:"column:valid_to" json:"valid_to"`
	UsageLimit      int       `gorm:"column:usage_limit" json:"usage_limit"`
	UsedCount       int       `gorm:"column:used_count;default:0" json:"used_count"`
	IsActive        bool      `gorm:"default:true" json:"is_active"`
}
