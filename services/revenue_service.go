package services

import (
	"fmt"
	"sort"
	"time"

	"hotel-booking/models"

	"gorm.io/gorm"
)

// RevenueSafeStatuses are the booking statuses that count toward revenue.
// A cancelled or rejected booking never contributes, and neither does a
// pending one.
var RevenueSafeStatuses = []string{
	models.BookingStatusConfirmed,
	models.BookingStatusCheckedIn,
	models.BookingStatusCheckedOut,
}

func IsRevenueSafe(status string) bool {
	for _, s := range RevenueSafeStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type RevenueBucket struct {
	Period string  `json:"period"`
	Amount float64 `json:"amount"`
}

// MonthBucket keys a booking by the year-month of its check-in date.
func MonthBucket(b models.Booking) string {
	if b.CheckInDate.IsZero() {
		return "unknown"
	}
	return b.CheckInDate.Format("2006-01")
}

// AggregateRevenue filters bookings to revenue-safe statuses, sums
// final_amount per bucket and returns buckets ordered by key ascending.
// The sum across buckets equals the sum over the filtered set regardless of
// the bucket function.
func AggregateRevenue(bookings []models.Booking, bucket func(models.Booking) string) []RevenueBucket {
	totals := map[string]float64{}
	for _, b := range bookings {
		if !IsRevenueSafe(b.Status) {
			continue
		}
		totals[bucket(b)] += b.FinalAmount
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]RevenueBucket, 0, len(keys))
	for _, k := range keys {
		out = append(out, RevenueBucket{Period: k, Amount: totals[k]})
	}
	return out
}

func TotalRevenue(buckets []RevenueBucket) float64 {
	var total float64
	for _, b := range buckets {
		total += b.Amount
	}
	return total
}

type RevenueService struct {
	DB     *gorm.DB
	Scopes *ScopeService
}

func NewRevenueService(db *gorm.DB, scopes *ScopeService) *RevenueService {
	return &RevenueService{DB: db, Scopes: scopes}
}

type RevenueSummary struct {
	TotalRevenue   float64         `json:"total_revenue"`
	MonthlyRevenue []RevenueBucket `json:"monthly_revenue"`
}

// MonthlySummary buckets scoped revenue-safe bookings by check-in month,
// optionally restricted to a date window.
func (s *RevenueService) MonthlySummary(scope HotelScope, start, end *time.Time) (RevenueSummary, error) {
	q := s.Scopes.BookingQuery(scope).Where("status IN ?", RevenueSafeStatuses)
	if start != nil {
		q = q.Where("check_in_date >= ?", *start)
	}
	if end != nil {
		q = q.Where("check_out_date <= ?", *end)
	}

	var bookings []models.Booking
	if err := q.Order("check_in_date ASC").Find(&bookings).Error; err != nil {
		return RevenueSummary{}, fmt.Errorf("failed to load bookings for revenue summary: %w", err)
	}

	buckets := AggregateRevenue(bookings, MonthBucket)
	return RevenueSummary{
		TotalRevenue:   TotalRevenue(buckets),
		MonthlyRevenue: buckets,
	}, nil
}

// ScopedTotal sums final_amount over revenue-safe bookings in scope.
func (s *RevenueService) ScopedTotal(scope HotelScope) (float64, error) {
	var total float64
	err := s.Scopes.BookingQuery(scope).
		Where("status IN ?", RevenueSafeStatuses).
		Select("COALESCE(SUM(final_amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}
