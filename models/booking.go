package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	BookingStatusPending    = "pending"
	BookingStatusConfirmed  = "confirmed"
	BookingStatusCheckedIn  = "checked_in"
	BookingStatusCheckedOut = "checked_out"
	BookingStatusCancelled  = "cancelled"
	BookingStatusRejected   = "rejected"

	PaymentStatusUnpaid   = "unpaid"
	PaymentStatusPaid     = "paid"
	PaymentStatusRefunded = "refunded"
)

// Booking holds the stay window as a half-open interval:
// [CheckInDate, CheckOutDate). Checkout day does not occupy the room.
type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;size:64;uniqueIndex" json:"reference_code"`
	HotelID       uint   `gorm:"index" json:"hotel_id"`
	UserID        uint   `gorm:"index" json:"user_id"`

	CheckInDate  time.Time `gorm:"column:check_in_date;index" json:"check_in_date"`
	CheckOutDate time.Time `gorm:"column:check_out_date" json:"check_out_date"`
	NumGuests    int       `gorm:"column:num_guests;default:1" json:"num_guests"`

	Status         string  `gorm:"size:32;index" json:"status"`
	TotalAmount    float64 `gorm:"column:total_amount" json:"total_amount"`
	DiscountAmount float64 `gorm:"column:discount_amount" json:"discount_amount"`
	FinalAmount    float64 `gorm:"column:final_amount" json:"final_amount"`
	DiscountCode   string  `gorm:"column:discount_code;size:64" json:"discount_code,omitempty"`
	PaymentStatus  string  `gorm:"column:payment_status;size:32;default:unpaid" json:"payment_status"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	Hotel   Hotel           `gorm:"foreignKey:HotelID" json:"hotel,omitempty"`
	User    User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Details []BookingDetail `gorm:"foreignKey:BookingID" json:"details"`
}

// BookingDetail reserves Quantity units of one room for the parent booking's
// stay window. Rows are created with the booking and never updated after the
// booking is paid.
type BookingDetail struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	BookingID uint `gorm:"index" json:"booking_id"`
	RoomID    uint `gorm:"index" json:"room_id"`
	Quantity  int  `gorm:"default:1" json:"quantity"`

	UnitPrice float64 `gorm:"column:unit_price" json:"unit_price"`
	Nights    int     `json:"nights"`
	Amount    float64 `json:"amount"`

	Room Room `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}
