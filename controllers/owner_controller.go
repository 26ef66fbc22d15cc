package controllers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

func resolveScope(c *gin.Context) (services.HotelScope, bool) {
	scopes := services.NewScopeService(config.DB)
	scope, err := scopes.ResolveHotelScope(callerFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return services.HotelScope{}, false
	}
	return scope, true
}

func dateRangeParams(c *gin.Context) (start, end *time.Time) {
	if t, err := time.Parse("2006-01-02", c.Query("start_date")); err == nil {
		start = &t
	}
	if t, err := time.Parse("2006-01-02", c.Query("end_date")); err == nil {
		end = &t
	}
	return start, end
}

// OwnerDashboard summarizes the owner's hotels: counts, upcoming arrivals
// and total revenue.
func OwnerDashboard(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	scopes := services.NewScopeService(config.DB)

	var hotelCount, roomCount, bookingCount int64
	scopes.HotelQuery(scope).Count(&hotelCount)
	scopes.RoomQuery(scope).Count(&roomCount)
	scopes.BookingQuery(scope).Count(&bookingCount)

	today := time.Now().Truncate(24 * time.Hour)
	var arrivalsToday int64
	scopes.BookingQuery(scope).
		Where("status = ? AND check_in_date >= ? AND check_in_date < ?",
			models.BookingStatusConfirmed, today, today.Add(24*time.Hour)).
		Count(&arrivalsToday)

	var inHouse int64
	scopes.BookingQuery(scope).
		Where("status = ?", models.BookingStatusCheckedIn).
		Count(&inHouse)

	revenue := services.NewRevenueService(config.DB, scopes)
	total, err := revenue.ScopedTotal(scope)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotel_count":    hotelCount,
		"room_count":     roomCount,
		"booking_count":  bookingCount,
		"arrivals_today": arrivalsToday,
		"in_house":       inHouse,
		"total_revenue":  total,
	})
}

func OwnerHotels(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	scopes := services.NewScopeService(config.DB)

	var hotels []models.Hotel
	if err := scopes.HotelQuery(scope).Order("created_at DESC").Find(&hotels).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func OwnerBookings(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	page, perPage := paginationParams(c)
	scopes := services.NewScopeService(config.DB)

	q := scopes.BookingQuery(scope)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		q = q.Where("hotel_id = ?", hotelID)
	}
	if start, end := dateRangeParams(c); start != nil || end != nil {
		if start != nil {
			q = q.Where("check_in_date >= ?", *start)
		}
		if end != nil {
			q = q.Where("check_in_date <= ?", *end)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var bookings []models.Booking
	err := q.Preload("User").Preload("Hotel").Preload("Details.Room").
		Order("check_in_date DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, bookings, page, perPage, total)
}

// OwnerCheckInBooking moves a confirmed booking of an owned hotel to
// checked_in.
func OwnerCheckInBooking(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	if err := svc.CheckIn(scope, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "guest checked in")
}

func OwnerCheckOutBooking(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	if err := svc.CheckOut(scope, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "guest checked out")
}

func OwnerRejectBooking(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	if err := svc.RejectBooking(scope, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "booking rejected")
}

// OwnerRevenue returns the monthly revenue summary over the owner's hotels.
func OwnerRevenue(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	start, end := dateRangeParams(c)

	scopes := services.NewScopeService(config.DB)
	revenue := services.NewRevenueService(config.DB, scopes)
	summary, err := revenue.MonthlySummary(scope, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, summary)
}

// OwnerRoomsStatus reports per-room availability for a stay window,
// defaulting to tonight.
func OwnerRoomsStatus(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}

	checkIn := time.Now().Truncate(24 * time.Hour)
	checkOut := checkIn.Add(24 * time.Hour)
	if t, err := time.Parse("2006-01-02", c.Query("check_in")); err == nil {
		checkIn = t
	}
	if t, err := time.Parse("2006-01-02", c.Query("check_out")); err == nil {
		checkOut = t
	}
	if !checkIn.Before(checkOut) {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be after check_in")
		return
	}

	scopes := services.NewScopeService(config.DB)
	var rooms []models.Room
	if err := scopes.RoomQuery(scope).Find(&rooms).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	availability := services.NewAvailabilityService(config.DB)
	statuses := make([]services.RoomAvailability, 0, len(rooms))
	for _, room := range rooms {
		st, err := availability.AvailableUnits(room.ID, checkIn, checkOut)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		statuses = append(statuses, st)
	}
	utils.JSONSuccess(c, http.StatusOK, statuses)
}

func OwnerReviews(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	page, perPage := paginationParams(c)
	scopes := services.NewScopeService(config.DB)

	q := scopes.ReviewQuery(scope)
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var reviews []models.Review
	err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&reviews).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, reviews, page, perPage, total)
}

// OwnerStatistics breaks scoped bookings down by status plus review
// averages.
func OwnerStatistics(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	scopes := services.NewScopeService(config.DB)

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var byStatus []statusCount
	err := scopes.BookingQuery(scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var rating struct {
		AvgRating   float64 `json:"avg_rating"`
		ReviewCount int64   `json:"review_count"`
	}
	scopes.ReviewQuery(scope).
		Where("status = ?", models.ReviewStatusActive).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count").
		Scan(&rating)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"bookings_by_status": byStatus,
		"avg_rating":         rating.AvgRating,
		"review_count":       rating.ReviewCount,
	})
}

// OwnerOccupancy reports booked vs total units per hotel for one night.
func OwnerOccupancy(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}

	night := time.Now().Truncate(24 * time.Hour)
	if t, err := time.Parse("2006-01-02", c.Query("date")); err == nil {
		night = t
	}
	nextDay := night.Add(24 * time.Hour)

	scopes := services.NewScopeService(config.DB)
	var hotels []models.Hotel
	if err := scopes.HotelQuery(scope).Preload("Rooms").Find(&hotels).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	availability := services.NewAvailabilityService(config.DB)
	type hotelOccupancy struct {
		HotelID     uint    `json:"hotel_id"`
		HotelName   string  `json:"hotel_name"`
		TotalUnits  int     `json:"total_units"`
		BookedUnits int     `json:"booked_units"`
		Rate        float64 `json:"occupancy_rate"`
	}

	out := make([]hotelOccupancy, 0, len(hotels))
	for _, hotel := range hotels {
		entry := hotelOccupancy{HotelID: hotel.ID, HotelName: hotel.Name}
		for _, room := range hotel.Rooms {
			st, err := availability.AvailableUnits(room.ID, night, nextDay)
			if err != nil {
				respondServiceError(c, err)
				return
			}
			entry.TotalUnits += st.TotalQuantity
			entry.BookedUnits += st.TotalQuantity - st.AvailableQuantity
		}
		if entry.TotalUnits > 0 {
			entry.Rate = float64(entry.BookedUnits) / float64(entry.TotalUnits)
		}
		out = append(out, entry)
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"date": night.Format("2006-01-02"), "hotels": out})
}

// OwnerExportBookings streams scoped bookings as CSV.
func OwnerExportBookings(c *gin.Context) {
	scope, ok := resolveScope(c)
	if !ok {
		return
	}
	scopes := services.NewScopeService(config.DB)

	q := scopes.BookingQuery(scope)
	if start, end := dateRangeParams(c); start != nil || end != nil {
		if start != nil {
			q = q.Where("check_in_date >= ?", *start)
		}
		if end != nil {
			q = q.Where("check_in_date <= ?", *end)
		}
	}

	var bookings []models.Booking
	if err := q.Preload("Hotel").Preload("User").Order("check_in_date").Find(&bookings).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)

	w := csv.NewWriter(c.Writer)
	w.Write([]string{"reference", "hotel", "guest", "check_in", "check_out", "status", "payment_status", "final_amount"})
	for _, b := range bookings {
		w.Write([]string{
			b.ReferenceCode,
			b.Hotel.Name,
			b.User.FullName,
			b.CheckInDate.Format("2006-01-02"),
			b.CheckOutDate.Format("2006-01-02"),
			b.Status,
			b.PaymentStatus,
			strconv.FormatFloat(b.FinalAmount, 'f', 2, 64),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("csv export error: %v", err)
	}
}
