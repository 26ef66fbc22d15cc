package services

import (
	"errors"
	"fmt"

	"hotel-booking/models"

	"gorm.io/gorm"
)

// Caller is the resolved identity an operation runs as. The HTTP layer
// fills it from the access token; services never read ambient session state.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// HotelScope narrows every hotel-derived query to the hotels the caller may
// touch. Admins see everything; owners see their own hotels; an empty owned
// set must yield empty results, never unrestricted ones.
type HotelScope struct {
	All      bool
	HotelIDs []uint
}

func (s HotelScope) Contains(hotelID uint) bool {
	if s.All {
		return true
	}
	for _, id := range s.HotelIDs {
		if id == hotelID {
			return true
		}
	}
	return false
}

// Empty reports whether the scope matches no hotel at all.
func (s HotelScope) Empty() bool { return !s.All && len(s.HotelIDs) == 0 }

type ScopeService struct {
	DB *gorm.DB
}

func NewScopeService(db *gorm.DB) *ScopeService {
	return &ScopeService{DB: db}
}

// ResolveHotelScope authorizes the caller for owner/admin dashboard
// operations and returns the permitted hotel-id set. Customers (and any
// unknown role) are rejected before any data access.
func (s *ScopeService) ResolveHotelScope(caller Caller) (HotelScope, error) {
	switch caller.Role {
	case models.RoleAdmin:
		return HotelScope{All: true}, nil
	case models.RoleHotelOwner:
		var ids []uint
		err := s.DB.Model(&models.Hotel{}).
			Where("owner_id = ?", caller.UserID).
			Pluck("id", &ids).Error
		if err != nil {
			return HotelScope{}, fmt.Errorf("failed to resolve owned hotels: %w", err)
		}
		return HotelScope{HotelIDs: ids}, nil
	default:
		return HotelScope{}, ErrForbidden
	}
}

// failClosed is the predicate applied when the permitted set is empty.
func failClosed(q *gorm.DB) *gorm.DB { return q.Where("1 = 0") }

// HotelQuery returns a hotel query restricted to the scope.
func (s *ScopeService) HotelQuery(scope HotelScope) *gorm.DB {
	q := s.DB.Model(&models.Hotel{})
	if scope.All {
		return q
	}
	if len(scope.HotelIDs) == 0 {
		return failClosed(q)
	}
	return q.Where("id IN ?", scope.HotelIDs)
}

// BookingQuery returns a booking query restricted to the scope's hotels.
func (s *ScopeService) BookingQuery(scope HotelScope) *gorm.DB {
	q := s.DB.Model(&models.Booking{})
	if scope.All {
		return q
	}
	if len(scope.HotelIDs) == 0 {
		return failClosed(q)
	}
	return q.Where("hotel_id IN ?", scope.HotelIDs)
}

// RoomQuery returns a room query restricted to the scope's hotels.
func (s *ScopeService) RoomQuery(scope HotelScope) *gorm.DB {
	q := s.DB.Model(&models.Room{})
	if scope.All {
		return q
	}
	if len(scope.HotelIDs) == 0 {
		return failClosed(q)
	}
	return q.Where("hotel_id IN ?", scope.HotelIDs)
}

// ReviewQuery returns a review query restricted to the scope's hotels.
func (s *ScopeService) ReviewQuery(scope HotelScope) *gorm.DB {
	q := s.DB.Model(&models.Review{})
	if scope.All {
		return q
	}
	if len(scope.HotelIDs) == 0 {
		return failClosed(q)
	}
	return q.Where("hotel_id IN ?", scope.HotelIDs)
}

// RequireHotelOwnership loads a hotel and checks the caller may mutate it.
// Admins pass; owners must own the specific hotel.
func (s *ScopeService) RequireHotelOwnership(caller Caller, hotelID uint) (*models.Hotel, error) {
	var hotel models.Hotel
	if err := s.DB.First(&hotel, hotelID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load hotel %d: %w", hotelID, err)
	}
	if !caller.IsAdmin() && hotel.OwnerID != caller.UserID {
		return nil, ErrForbidden
	}
	return &hotel, nil
}
