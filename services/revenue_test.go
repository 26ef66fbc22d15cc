package services

import (
	"math"
	"testing"
	"time"

	"hotel-booking/models"
)

func booking(status string, checkIn time.Time, amount float64) models.Booking {
	return models.Booking{Status: status, CheckInDate: checkIn, FinalAmount: amount}
}

func TestIsRevenueSafe(t *testing.T) {
	safe := []string{
		models.BookingStatusConfirmed,
		models.BookingStatusCheckedIn,
		models.BookingStatusCheckedOut,
	}
	for _, s := range safe {
		if !IsRevenueSafe(s) {
			t.Errorf("status %s should count toward revenue", s)
		}
	}
	for _, s := range []string{
		models.BookingStatusPending,
		models.BookingStatusCancelled,
		models.BookingStatusRejected,
	} {
		if IsRevenueSafe(s) {
			t.Errorf("status %s must not count toward revenue", s)
		}
	}
}

func TestMonthBucket(t *testing.T) {
	b := booking(models.BookingStatusConfirmed, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), 100)
	if got := MonthBucket(b); got != "2026-03" {
		t.Errorf("MonthBucket = %q, want 2026-03", got)
	}
	if got := MonthBucket(models.Booking{}); got != "unknown" {
		t.Errorf("MonthBucket zero date = %q, want unknown", got)
	}
}

func TestAggregateRevenue(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	bookings := []models.Booking{
		booking(models.BookingStatusConfirmed, jan, 100),
		booking(models.BookingStatusCheckedOut, jan, 50),
		booking(models.BookingStatusCheckedIn, feb, 200),
		booking(models.BookingStatusCancelled, feb, 999), // excluded
		booking(models.BookingStatusPending, jan, 999),   // excluded
		booking(models.BookingStatusConfirmed, jan, 0),   // zero amount counts as 0
	}

	buckets := AggregateRevenue(bookings, MonthBucket)
	if len(buckets) != 2 {
		t.Fatalf("got %d buckets, want 2: %+v", len(buckets), buckets)
	}
	if buckets[0].Period != "2026-01" || buckets[0].Amount != 150 {
		t.Errorf("bucket[0] = %+v, want 2026-01 / 150", buckets[0])
	}
	if buckets[1].Period != "2026-02" || buckets[1].Amount != 200 {
		t.Errorf("bucket[1] = %+v, want 2026-02 / 200", buckets[1])
	}
	if total := TotalRevenue(buckets); total != 350 {
		t.Errorf("TotalRevenue = %v, want 350", total)
	}
}

// Bucketing must never change the total: summing per-month equals summing
// per-anything over the same filtered set.
func TestAggregateRevenueTotalInvariant(t *testing.T) {
	jan := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	bookings := []models.Booking{
		booking(models.BookingStatusConfirmed, jan, 123.45),
		booking(models.BookingStatusCheckedOut, feb, 67.89),
		booking(models.BookingStatusRejected, feb, 500),
	}

	monthly := TotalRevenue(AggregateRevenue(bookings, MonthBucket))
	single := TotalRevenue(AggregateRevenue(bookings, func(models.Booking) string { return "all" }))
	if math.Abs(monthly-single) > 1e-9 {
		t.Errorf("totals diverge across bucketings: monthly=%v single=%v", monthly, single)
	}
}

func TestAggregateRevenueEmpty(t *testing.T) {
	if buckets := AggregateRevenue(nil, MonthBucket); len(buckets) != 0 {
		t.Errorf("expected no buckets for no bookings, got %+v", buckets)
	}
}
