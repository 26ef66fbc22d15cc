package controllers

import (
	"fmt"
	"net/http"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type createPaymentPayload struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Method    string `json:"method" binding:"required"`
}

func validPaymentMethod(m string) bool {
	switch m {
	case models.PaymentMethodCard, models.PaymentMethodTransfer, models.PaymentMethodCash:
		return true
	}
	return false
}

// CreatePayment records a payment for the caller's booking and flips the
// booking to paid. No gateway is involved; the record is the receipt.
func CreatePayment(c *gin.Context) {
	caller := callerFrom(c)
	var payload createPaymentPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if !validPaymentMethod(payload.Method) {
		utils.JSONError(c, http.StatusBadRequest, "method must be card, bank_transfer or cash")
		return
	}

	var payment models.Payment
	txErr := config.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, payload.BookingID).Error; err != nil {
			return services.ErrNotFound
		}
		if booking.UserID != caller.UserID {
			return services.ErrNotFound
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			return services.Invalid("booking is already paid")
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return services.Invalid(fmt.Sprintf("cannot pay a booking in status %s", booking.Status))
		}

		now := time.Now()
		payment = models.Payment{
			BookingID:      booking.ID,
			UserID:         caller.UserID,
			Amount:         booking.FinalAmount,
			Method:         payload.Method,
			Status:         models.PaymentRecordCompleted,
			TransactionRef: uuid.NewString(),
			PaidAt:         &now,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return fmt.Errorf("failed to create payment: %w", err)
		}
		return tx.Model(&booking).
			Update("payment_status", models.PaymentStatusPaid).Error
	})
	if txErr != nil {
		respondServiceError(c, txErr)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, payment)
}

func GetMyPayments(c *gin.Context) {
	caller := callerFrom(c)
	page, perPage := paginationParams(c)

	var total int64
	q := config.DB.Model(&models.Payment{}).Where("user_id = ?", caller.UserID)
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var payments []models.Payment
	err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&payments).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, payments, page, perPage, total)
}
