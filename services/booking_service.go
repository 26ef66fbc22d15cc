package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const dateLayout = "2006-01-02"

type BookingService struct {
	DB           *gorm.DB
	Availability *AvailabilityService
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db, Availability: NewAvailabilityService(db)}
}

// StayNights counts whole nights in the half-open window [in, out).
func StayNights(checkIn, checkOut time.Time) int {
	n := int(checkOut.Sub(checkIn).Hours() / 24)
	if n < 1 {
		n = 1
	}
	return n
}

// RoomCharge is base price times nights times reserved units. Weekend
// pricing is display-only and does not enter booking totals.
func RoomCharge(basePrice float64, nights, quantity int) float64 {
	return basePrice * float64(nights) * float64(quantity)
}

// ApplyDiscount returns the discount amount for a total, percent-based and
// capped at maxDiscount when the cap is set. Never exceeds the total.
func ApplyDiscount(total, percent, maxDiscount float64) float64 {
	if percent <= 0 || total <= 0 {
		return 0
	}
	discount := total * percent / 100
	if maxDiscount > 0 && discount > maxDiscount {
		discount = maxDiscount
	}
	if discount > total {
		discount = total
	}
	return discount
}

type BookingRoomRequest struct {
	RoomID   uint `json:"room_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// mergeRoomRequests collapses duplicate room lines into one line per room,
// summing quantities. The availability recheck runs once per room, so a
// request listing a room twice must present its full quantity in a single
// line or the recheck would approve each part against the same free units.
// Line quantities below 1 count as 1.
func mergeRoomRequests(rooms []BookingRoomRequest) []BookingRoomRequest {
	merged := make([]BookingRoomRequest, 0, len(rooms))
	index := make(map[uint]int, len(rooms))
	for _, rr := range rooms {
		qty := rr.Quantity
		if qty < 1 {
			qty = 1
		}
		if i, ok := index[rr.RoomID]; ok {
			merged[i].Quantity += qty
			continue
		}
		index[rr.RoomID] = len(merged)
		merged = append(merged, BookingRoomRequest{RoomID: rr.RoomID, Quantity: qty})
	}
	return merged
}

type CreateBookingRequest struct {
	HotelID      uint                 `json:"hotel_id" binding:"required"`
	CheckIn      string               `json:"check_in" binding:"required"`
	CheckOut     string               `json:"check_out" binding:"required"`
	NumGuests    int                  `json:"num_guests"`
	Rooms        []BookingRoomRequest `json:"rooms" binding:"required"`
	DiscountCode string               `json:"discount_code"`
}

func parseStayDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, Invalid(fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value))
	}
	return t, nil
}

// CreateBooking reserves rooms for the caller.
//
// Availability is checked twice: the caller usually checked before
// submitting, and the insert transaction rechecks after taking a row lock on
// each requested room. Two requests racing for the last unit serialize on
// that lock and the loser gets ErrRoomUnavailable instead of an oversell.
func (s *BookingService) CreateBooking(caller Caller, req CreateBookingRequest) (*models.Booking, error) {
	checkIn, err := parseStayDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := parseStayDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	if err := ValidateStayRange(checkIn, checkOut, true); err != nil {
		return nil, err
	}
	if len(req.Rooms) == 0 {
		return nil, Invalid("at least one room is required")
	}
	if req.NumGuests <= 0 {
		req.NumGuests = 1
	}

	var hotel models.Hotel
	if err := s.DB.First(&hotel, req.HotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load hotel %d: %w", req.HotelID, err)
	}
	if hotel.Status != models.HotelStatusActive {
		return nil, Invalid("hotel is not open for booking")
	}

	nights := StayNights(checkIn, checkOut)
	roomLines := mergeRoomRequests(req.Rooms)
	var bookingID uint

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var total float64
		var capacity int
		details := make([]models.BookingDetail, 0, len(roomLines))

		for _, rr := range roomLines {
			qty := rr.Quantity

			// Lock the room row so concurrent bookings serialize here.
			var room models.Room
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&room, rr.RoomID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrNotFound
				}
				return fmt.Errorf("failed to lock room %d: %w", rr.RoomID, err)
			}
			if room.HotelID != req.HotelID {
				return Invalid(fmt.Sprintf("room %d does not belong to hotel %d", room.ID, req.HotelID))
			}
			if room.Status != models.RoomStatusAvailable {
				return ErrRoomUnavailable
			}

			booked, err := bookedUnits(tx, room.ID, checkIn, checkOut)
			if err != nil {
				return err
			}
			if ClampAvailable(room.Quantity, booked) < qty {
				return ErrRoomUnavailable
			}

			capacity += room.MaxGuests * qty
			amount := RoomCharge(room.BasePrice, nights, qty)
			total += amount
			details = append(details, models.BookingDetail{
				RoomID:    room.ID,
				Quantity:  qty,
				UnitPrice: room.BasePrice,
				Nights:    nights,
				Amount:    amount,
			})
		}

		if capacity > 0 && req.NumGuests > capacity {
			return Invalid(fmt.Sprintf("requested rooms sleep at most %d guests", capacity))
		}

		var discount float64
		if req.DiscountCode != "" {
			discount, err = redeemDiscountCode(tx, req.DiscountCode, total)
			if err != nil {
				return err
			}
		}

		booking := models.Booking{
			ReferenceCode:  uuid.NewString(),
			HotelID:        req.HotelID,
			UserID:         caller.UserID,
			CheckInDate:    checkIn,
			CheckOutDate:   checkOut,
			NumGuests:      req.NumGuests,
			Status:         models.BookingStatusConfirmed,
			TotalAmount:    total,
			DiscountAmount: discount,
			FinalAmount:    total - discount,
			DiscountCode:   req.DiscountCode,
			PaymentStatus:  models.PaymentStatusUnpaid,
			Details:        details,
		}
		if err := tx.Create(&booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		bookingID = booking.ID
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	var booking models.Booking
	if err := s.DB.Preload("Details.Room").Preload("Hotel").Preload("User").
		First(&booking, bookingID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload booking %d: %w", bookingID, err)
	}

	// Confirmation email and notification are best-effort; the booking
	// stands whether or not they go out.
	go func(b models.Booking) {
		if b.User.Email != "" {
			if err := utils.SendBookingConfirmationEmail(b.User.Email, b.User.FullName,
				b.ReferenceCode, b.Hotel.Name,
				b.CheckInDate.Format(dateLayout), b.CheckOutDate.Format(dateLayout),
				b.FinalAmount); err != nil {
				log.Printf("warning: booking confirmation email failed for %s: %v", b.ReferenceCode, err)
			}
		}
		note := models.Notification{
			UserID:  b.UserID,
			Title:   "Booking confirmed",
			Message: fmt.Sprintf("Your booking %s at %s is confirmed.", b.ReferenceCode, b.Hotel.Name),
		}
		if err := s.DB.Create(&note).Error; err != nil {
			log.Printf("warning: failed to create booking notification: %v", err)
		}
	}(booking)

	return &booking, nil
}

// redeemDiscountCode validates and consumes one use of a code inside the
// booking transaction, so the usage counter can't run past its limit.
func redeemDiscountCode(tx *gorm.DB, code string, total float64) (float64, error) {
	var dc models.DiscountCode
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("code = ?", code).First(&dc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, Invalid("discount code not found")
		}
		return 0, fmt.Errorf("failed to load discount code: %w", err)
	}

	now := time.Now()
	if !dc.IsActive || now.Before(dc.ValidFrom) || now.After(dc.ValidTo) {
		return 0, Invalid("discount code is not valid")
	}
	if dc.UsageLimit > 0 && dc.UsedCount >= dc.UsageLimit {
		return 0, Invalid("discount code usage limit reached")
	}

	if err := tx.Model(&dc).Update("used_count", gorm.Expr("used_count + 1")).Error; err != nil {
		return 0, fmt.Errorf("failed to consume discount code: %w", err)
	}
	return ApplyDiscount(total, dc.DiscountPercent, dc.MaxDiscount), nil
}

// GetBooking loads a booking the caller may see: the guest who made it,
// the owner of its hotel, or an admin.
func (s *BookingService) GetBooking(caller Caller, bookingID uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.Preload("Details.Room").Preload("Hotel").Preload("User").
		First(&booking, bookingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load booking %d: %w", bookingID, err)
	}

	if booking.UserID != caller.UserID && !caller.IsAdmin() {
		if caller.Role != models.RoleHotelOwner || booking.Hotel.OwnerID != caller.UserID {
			// Same response as a missing booking so existence doesn't leak.
			return nil, ErrNotFound
		}
	}
	return &booking, nil
}

// ListUserBookings pages through the caller's own bookings, newest first.
func (s *BookingService) ListUserBookings(userID uint, page, perPage int) ([]models.Booking, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}

	var total int64
	q := s.DB.Model(&models.Booking{}).Where("user_id = ?", userID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var bookings []models.Booking
	err := q.Preload("Details.Room").Preload("Hotel").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, total, nil
}

// CancelBooking terminates a pending or confirmed booking. Guests may
// cancel their own; admins may cancel any. Paid bookings are marked
// refunded together with their completed payments.
func (s *BookingService) CancelBooking(caller Caller, bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if booking.UserID != caller.UserID && !caller.IsAdmin() {
			return ErrForbidden
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return Invalid(fmt.Sprintf("cannot cancel a booking in status %s", booking.Status))
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       models.BookingStatusCancelled,
			"cancelled_at": now,
		}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			updates["payment_status"] = models.PaymentStatusRefunded
			if err := tx.Model(&models.Payment{}).
				Where("booking_id = ? AND status = ?", booking.ID, models.PaymentRecordCompleted).
				Update("status", models.PaymentRecordRefunded).Error; err != nil {
				return fmt.Errorf("failed to refund payments: %w", err)
			}
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to cancel booking: %w", err)
		}
		return nil
	})
}

// RejectBooking lets the hotel owner (or an admin) turn down a booking that
// has not been checked in yet.
func (s *BookingService) RejectBooking(scope HotelScope, bookingID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !scope.Contains(booking.HotelID) {
			return ErrNotFound
		}
		if booking.Status != models.BookingStatusPending && booking.Status != models.BookingStatusConfirmed {
			return Invalid(fmt.Sprintf("cannot reject a booking in status %s", booking.Status))
		}

		updates := map[string]interface{}{"status": models.BookingStatusRejected}
		if booking.PaymentStatus == models.PaymentStatusPaid {
			updates["payment_status"] = models.PaymentStatusRefunded
		}
		return tx.Model(&booking).Updates(updates).Error
	})
}

// CheckIn moves a confirmed booking to checked_in.
func (s *BookingService) CheckIn(scope HotelScope, bookingID uint) error {
	return s.transition(scope, bookingID, models.BookingStatusConfirmed, models.BookingStatusCheckedIn, "checked_in_at")
}

// CheckOut moves a checked_in booking to checked_out.
func (s *BookingService) CheckOut(scope HotelScope, bookingID uint) error {
	return s.transition(scope, bookingID, models.BookingStatusCheckedIn, models.BookingStatusCheckedOut, "checked_out_at")
}

func (s *BookingService) transition(scope HotelScope, bookingID uint, from, to, stampColumn string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&booking, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if !scope.Contains(booking.HotelID) {
			return ErrNotFound
		}
		if booking.Status != from {
			return Invalid(fmt.Sprintf("booking must be %s, is %s", from, booking.Status))
		}
		return tx.Model(&booking).Updates(map[string]interface{}{
			"status":    to,
			stampColumn: time.Now(),
		}).Error
	})
}
