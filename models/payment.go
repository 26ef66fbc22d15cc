package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PaymentMethodCard     = "card"
	PaymentMethodTransfer = "bank_transfer"
	PaymentMethodCash     = "cash"

	PaymentRecordPending   = "pending"
	PaymentRecordCompleted = "completed"
	PaymentRecordFailed    = "failed"
	PaymentRecordRefunded  = "refunded"
)

type Payment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID uint    `gorm:"index" json:"booking_id"`
	UserID    uint    `gorm:"index" json:"user_id"`
	Amount    float64 `json:"amount"`
	Method    string  `gorm:"size:32" json:"method"`
	Status    string  `gorm:"size:32;default:pending" json:"status"`

	TransactionRef string     `gorm:"column:transaction_ref;size:64" json:"transaction_ref,omitempty"`
	PaidAt         *time.Time `gorm:"column:paid_at" json:"paid_at,omitempty"`

	Booking Booking `gorm:"foreignKey:BookingID" json:"-"`
}
