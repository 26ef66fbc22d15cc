package services

import (
	"testing"
	"time"

	"hotel-booking/models"
)

func day(d int) time.Time {
	return time.Date(2026, 10, d, 0, 0, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                 string
		aIn, aOut, bIn, bOut int
		want                 bool
	}{
		{"identical windows", 10, 12, 10, 12, true},
		{"contained", 10, 15, 11, 13, true},
		{"partial overlap", 10, 12, 11, 13, true},
		{"back-to-back checkout equals checkin", 10, 12, 12, 14, false},
		{"back-to-back reversed", 12, 14, 10, 12, false},
		{"fully before", 5, 8, 10, 12, false},
		{"fully after", 13, 15, 10, 12, false},
		{"single night shared", 10, 11, 10, 11, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Overlaps(day(tc.aIn), day(tc.aOut), day(tc.bIn), day(tc.bOut))
			if got != tc.want {
				t.Errorf("Overlaps([%d,%d), [%d,%d)) = %v, want %v",
					tc.aIn, tc.aOut, tc.bIn, tc.bOut, got, tc.want)
			}
		})
	}
}

func TestClampAvailable(t *testing.T) {
	cases := []struct {
		quantity, booked, want int
	}{
		{2, 0, 2},
		{2, 1, 1},
		{2, 2, 0},
		{2, 3, 0}, // overbooked, never negative
		{0, 0, 0},
		{5, 2, 3},
	}
	for _, tc := range cases {
		if got := ClampAvailable(tc.quantity, tc.booked); got != tc.want {
			t.Errorf("ClampAvailable(%d, %d) = %d, want %d", tc.quantity, tc.booked, got, tc.want)
		}
	}
}

func TestValidateStayRange(t *testing.T) {
	if err := ValidateStayRange(day(10), day(12), false); err != nil {
		t.Errorf("valid range rejected: %v", err)
	}
	if err := ValidateStayRange(day(12), day(10), false); err == nil {
		t.Error("inverted range accepted")
	}
	if err := ValidateStayRange(day(10), day(10), false); err == nil {
		t.Error("zero-length range accepted")
	}

	past := time.Now().AddDate(0, 0, -5)
	if err := ValidateStayRange(past, past.AddDate(0, 0, 2), true); err == nil {
		t.Error("past check-in accepted with forbidPast")
	}
	if err := ValidateStayRange(past, past.AddDate(0, 0, 2), false); err != nil {
		t.Errorf("historical range rejected without forbidPast: %v", err)
	}

	future := time.Now().AddDate(0, 0, 5)
	if err := ValidateStayRange(future, future.AddDate(0, 0, 2), true); err != nil {
		t.Errorf("future range rejected: %v", err)
	}
}

// Stay dates arrive as UTC midnight of a calendar date. A check-in on
// today's local date must be accepted in every time zone, and yesterday's
// rejected; comparing against the UTC epoch grid gets both wrong when the
// zone offset straddles midnight.
func TestValidateStayRangeSameDayCheckIn(t *testing.T) {
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	if err := ValidateStayRange(today, today.AddDate(0, 0, 1), true); err != nil {
		t.Errorf("same-day check-in rejected: %v", err)
	}
	yesterday := today.AddDate(0, 0, -1)
	if err := ValidateStayRange(yesterday, yesterday.AddDate(0, 0, 2), true); err == nil {
		t.Error("yesterday's check-in accepted")
	}
}

func TestOccupyingStatuses(t *testing.T) {
	occupying := map[string]bool{}
	for _, s := range OccupyingStatuses {
		occupying[s] = true
	}

	if !occupying[models.BookingStatusConfirmed] || !occupying[models.BookingStatusCheckedIn] {
		t.Errorf("confirmed and checked_in must occupy, got %v", OccupyingStatuses)
	}
	for _, s := range []string{
		models.BookingStatusPending,
		models.BookingStatusCheckedOut,
		models.BookingStatusCancelled,
		models.BookingStatusRejected,
	} {
		if occupying[s] {
			t.Errorf("status %s must not occupy", s)
		}
	}
}

// Two units of one room; a confirmed booking holds one unit for [10, 12)
// and a pending one would cover [11, 13) but never occupies.
func TestAvailabilityScenario(t *testing.T) {
	type held struct {
		status   string
		in, out  int
		quantity int
	}
	bookings := []held{
		{models.BookingStatusConfirmed, 10, 12, 1},
		{models.BookingStatusPending, 11, 13, 1},
	}

	bookedOver := func(in, out int) int {
		occupying := map[string]bool{}
		for _, s := range OccupyingStatuses {
			occupying[s] = true
		}
		var sum int
		for _, b := range bookings {
			if occupying[b.status] && Overlaps(day(b.in), day(b.out), day(in), day(out)) {
				sum += b.quantity
			}
		}
		return sum
	}

	const quantity = 2
	if got := ClampAvailable(quantity, bookedOver(10, 12)); got != 1 {
		t.Errorf("available over [10,12) = %d, want 1", got)
	}
	if got := ClampAvailable(quantity, bookedOver(12, 14)); got != 2 {
		t.Errorf("available over [12,14) = %d, want 2 (back-to-back)", got)
	}
	if got := ClampAvailable(quantity, bookedOver(11, 13)); got != 1 {
		t.Errorf("available over [11,13) = %d, want 1 (pending never occupies)", got)
	}
}
