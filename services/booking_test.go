package services

import (
	"testing"
	"time"
)

func TestStayNights(t *testing.T) {
	cases := []struct {
		in, out int
		want    int
	}{
		{10, 11, 1},
		{10, 12, 2},
		{10, 17, 7},
	}
	for _, tc := range cases {
		if got := StayNights(day(tc.in), day(tc.out)); got != tc.want {
			t.Errorf("StayNights([%d,%d)) = %d, want %d", tc.in, tc.out, got, tc.want)
		}
	}
}

func TestRoomCharge(t *testing.T) {
	if got := RoomCharge(100, 3, 2); got != 600 {
		t.Errorf("RoomCharge(100, 3, 2) = %v, want 600", got)
	}
	if got := RoomCharge(80.50, 2, 1); got != 161 {
		t.Errorf("RoomCharge(80.50, 2, 1) = %v, want 161", got)
	}
}

func TestApplyDiscount(t *testing.T) {
	cases := []struct {
		name                        string
		total, percent, maxDiscount float64
		want                        float64
	}{
		{"plain percent", 1000, 10, 0, 100},
		{"capped", 1000, 10, 50, 50},
		{"cap above discount", 1000, 10, 500, 100},
		{"zero percent", 1000, 0, 0, 0},
		{"zero total", 0, 10, 0, 0},
		{"discount never exceeds total", 10, 100, 0, 10},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ApplyDiscount(tc.total, tc.percent, tc.maxDiscount); got != tc.want {
				t.Errorf("ApplyDiscount(%v, %v, %v) = %v, want %v",
					tc.total, tc.percent, tc.maxDiscount, got, tc.want)
			}
		})
	}
}

// A request listing the same room on several lines must collapse to one
// line carrying the summed quantity, or the per-room availability recheck
// would approve each part against the same free units. Two units free plus
// lines for 2 and 1 of the same room must face a single check for 3.
func TestMergeRoomRequests(t *testing.T) {
	cases := []struct {
		name string
		in   []BookingRoomRequest
		want []BookingRoomRequest
	}{
		{
			"distinct rooms untouched",
			[]BookingRoomRequest{{RoomID: 1, Quantity: 1}, {RoomID: 2, Quantity: 2}},
			[]BookingRoomRequest{{RoomID: 1, Quantity: 1}, {RoomID: 2, Quantity: 2}},
		},
		{
			"duplicate room lines summed",
			[]BookingRoomRequest{{RoomID: 7, Quantity: 2}, {RoomID: 7, Quantity: 1}},
			[]BookingRoomRequest{{RoomID: 7, Quantity: 3}},
		},
		{
			"duplicates interleaved, first position kept",
			[]BookingRoomRequest{{RoomID: 3, Quantity: 1}, {RoomID: 5, Quantity: 1}, {RoomID: 3, Quantity: 2}},
			[]BookingRoomRequest{{RoomID: 3, Quantity: 3}, {RoomID: 5, Quantity: 1}},
		},
		{
			"zero and negative quantities count as one each",
			[]BookingRoomRequest{{RoomID: 4, Quantity: 0}, {RoomID: 4, Quantity: -2}},
			[]BookingRoomRequest{{RoomID: 4, Quantity: 2}},
		},
		{
			"empty request",
			nil,
			[]BookingRoomRequest{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mergeRoomRequests(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d lines %+v, want %d %+v", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("line %d = %+v, want %+v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestParseStayDate(t *testing.T) {
	got, err := parseStayDate("2026-10-05")
	if err != nil {
		t.Fatalf("valid date rejected: %v", err)
	}
	want := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("parsed %v, want %v", got, want)
	}

	for _, bad := range []string{"05-10-2026", "2026/10/05", "not-a-date", ""} {
		if _, err := parseStayDate(bad); err == nil {
			t.Errorf("date %q accepted", bad)
		} else if !IsValidation(err) {
			t.Errorf("date %q: expected validation error, got %v", bad, err)
		}
	}
}
