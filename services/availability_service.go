package services

import (
	"errors"
	"fmt"
	"time"

	"hotel-booking/models"

	"gorm.io/gorm"
)

// OccupyingStatuses are the booking statuses that hold room units against a
// date range. Pending bookings never block new reservations; cancelled and
// rejected bookings release their units.
var OccupyingStatuses = []string{
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
}

// Overlaps applies the half-open interval rule to two stay windows
// [aIn, aOut) and [bIn, bOut). Back-to-back stays (checkout day equals the
// next check-in day) do not overlap.
func Overlaps(aIn, aOut, bIn, bOut time.Time) bool {
	return aIn.Before(bOut) && aOut.After(bIn)
}

// ClampAvailable floors the available count at zero. Booked sums can exceed
// quantity under concurrent writes; availability must never go negative.
func ClampAvailable(quantity int, booked int) int {
	if avail := quantity - booked; avail > 0 {
		return avail
	}
	return 0
}

// ValidateStayRange rejects inverted or zero-length windows. When
// forbidPast is set, windows starting before today are rejected too; the
// past is still queryable for historical reporting.
func ValidateStayRange(checkIn, checkOut time.Time, forbidPast bool) error {
	if !checkIn.Before(checkOut) {
		return Invalid("check_out must be after check_in")
	}
	if forbidPast {
		// Stay dates are UTC midnights of calendar dates, so "today" must
		// come from the local calendar date, not the UTC epoch grid.
		y, m, d := time.Now().Date()
		today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		if checkIn.Before(today) {
			return Invalid("check_in cannot be in the past")
		}
	}
	return nil
}

type RoomAvailability struct {
	RoomID            uint    `json:"room_id"`
	TotalQuantity     int     `json:"total_quantity"`
	AvailableQuantity int     `json:"available_quantity"`
	IsAvailable       bool    `json:"is_available"`
	Status            string  `json:"status"`
	BasePrice         float64 `json:"base_price"`
}

type AvailabilityService struct {
	DB *gorm.DB
}

func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// bookedUnits sums reserved units of one room across occupying bookings
// overlapping [checkIn, checkOut). Runs against tx so the commit-time
// recheck sees the transaction's own snapshot.
func bookedUnits(tx *gorm.DB, roomID uint, checkIn, checkOut time.Time) (int, error) {
	var booked int64
	err := tx.Model(&models.BookingDetail{}).
		Joins("JOIN bookings ON bookings.id = booking_details.booking_id").
		Where("booking_details.room_id = ?", roomID).
		Where("bookings.status IN ?", OccupyingStatuses).
		Where("bookings.check_in_date < ? AND bookings.check_out_date > ?", checkOut, checkIn).
		Where("bookings.deleted_at IS NULL").
		Select("COALESCE(SUM(booking_details.quantity), 0)").
		Scan(&booked).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum booked units for room %d: %w", roomID, err)
	}
	return int(booked), nil
}

// AvailableUnits computes how many units of the room are free over the
// half-open window. The result is a snapshot; callers that go on to insert
// a booking must recheck inside the same transaction.
func (s *AvailabilityService) AvailableUnits(roomID uint, checkIn, checkOut time.Time) (RoomAvailability, error) {
	var out RoomAvailability

	if err := ValidateStayRange(checkIn, checkOut, false); err != nil {
		return out, err
	}

	var room models.Room
	if err := s.DB.First(&room, roomID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return out, ErrNotFound
		}
		return out, fmt.Errorf("failed to load room %d: %w", roomID, err)
	}

	booked, err := bookedUnits(s.DB, room.ID, checkIn, checkOut)
	if err != nil {
		return out, err
	}

	avail := ClampAvailable(room.Quantity, booked)
	out = RoomAvailability{
		RoomID:            room.ID,
		TotalQuantity:     room.Quantity,
		AvailableQuantity: avail,
		IsAvailable:       avail > 0 && room.Status == models.RoomStatusAvailable,
		Status:            room.Status,
		BasePrice:         room.BasePrice,
	}
	return out, nil
}

type AvailabilitySearch struct {
	HotelID    uint
	RoomTypeID uint
	NumGuests  int
	CheckIn    time.Time
	CheckOut   time.Time
}

type AvailableRoom struct {
	Room              models.Room `json:"room"`
	AvailableQuantity int         `json:"available_quantity"`
}

// SearchAvailableRooms lists rooms with at least one free unit over the
// window, with optional hotel / room type / guest count filters. Only rooms
// of active hotels are considered.
func (s *AvailabilityService) SearchAvailableRooms(q AvailabilitySearch) ([]AvailableRoom, error) {
	if err := ValidateStayRange(q.CheckIn, q.CheckOut, false); err != nil {
		return nil, err
	}

	query := s.DB.Model(&models.Room{}).
		Joins("JOIN hotels ON hotels.id = rooms.hotel_id").
		Where("rooms.status = ?", models.RoomStatusAvailable).
		Where("hotels.status = ?", models.HotelStatusActive).
		Where("hotels.deleted_at IS NULL")

	if q.HotelID != 0 {
		query = query.Where("rooms.hotel_id = ?", q.HotelID)
	}
	if q.RoomTypeID != 0 {
		query = query.Where("rooms.room_type_id = ?", q.RoomTypeID)
	}
	if q.NumGuests > 0 {
		query = query.Where("rooms.max_guests >= ?", q.NumGuests)
	}

	var rooms []models.Room
	if err := query.Preload("RoomType").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}

	results := make([]AvailableRoom, 0, len(rooms))
	for _, room := range rooms {
		booked, err := bookedUnits(s.DB, room.ID, q.CheckIn, q.CheckOut)
		if err != nil {
			return nil, err
		}
		if avail := ClampAvailable(room.Quantity, booked); avail > 0 {
			results = append(results, AvailableRoom{Room: room, AvailableQuantity: avail})
		}
	}
	return results, nil
}
