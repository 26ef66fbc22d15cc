package controllers

import (
	"net/http"
	"strconv"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// SearchHotels finds active hotels by destination text, recording the
// search for logged-in callers.
func SearchHotels(c *gin.Context) {
	page, perPage := paginationParams(c)
	destination := c.Query("destination")

	q := config.DB.Model(&models.Hotel{}).Where("status = ?", models.HotelStatusActive)
	if destination != "" {
		like := "%" + destination + "%"
		q = q.Where("city LIKE ? OR district LIKE ? OR name LIKE ?", like, like, like)
	}
	if rating := c.Query("min_rating"); rating != "" {
		if n, err := strconv.Atoi(rating); err == nil {
			q = q.Where("star_rating >= ?", n)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var hotels []models.Hotel
	err := q.Order("is_featured DESC, star_rating DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&hotels).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if caller := callerFrom(c); caller.UserID != 0 && destination != "" {
		recordSearch(caller.UserID, destination, c)
	}

	utils.JSONPaginated(c, hotels, page, perPage, total)
}

func recordSearch(userID uint, destination string, c *gin.Context) {
	entry := models.SearchHistory{
		UserID:      userID,
		Destination: destination,
		NumGuests:   int(queryUint(c, "num_guests")),
	}
	if t, err := time.Parse("2006-01-02", c.Query("check_in")); err == nil {
		entry.CheckIn = &t
	}
	if t, err := time.Parse("2006-01-02", c.Query("check_out")); err == nil {
		entry.CheckOut = &t
	}
	config.DB.Create(&entry)
}

// SearchSuggestions returns distinct cities matching a prefix.
func SearchSuggestions(c *gin.Context) {
	prefix := c.Query("q")
	if prefix == "" {
		utils.JSONSuccess(c, http.StatusOK, []string{})
		return
	}

	var cities []string
	err := config.DB.Model(&models.Hotel{}).
		Where("status = ? AND city LIKE ?", models.HotelStatusActive, prefix+"%").
		Distinct().
		Order("city").
		Limit(10).
		Pluck("city", &cities).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, cities)
}

// SearchAvailability lists rooms with free units over a stay window.
func SearchAvailability(c *gin.Context) {
	checkIn, err := time.Parse("2006-01-02", c.Query("check_in"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_in must be YYYY-MM-DD")
		return
	}
	checkOut, err := time.Parse("2006-01-02", c.Query("check_out"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "check_out must be YYYY-MM-DD")
		return
	}

	svc := services.NewAvailabilityService(config.DB)
	results, err := svc.SearchAvailableRooms(services.AvailabilitySearch{
		HotelID:    queryUint(c, "hotel_id"),
		RoomTypeID: queryUint(c, "room_type_id"),
		NumGuests:  int(queryUint(c, "num_guests")),
		CheckIn:    checkIn,
		CheckOut:   checkOut,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, results)
}

func GetSearchHistory(c *gin.Context) {
	caller := callerFrom(c)
	var history []models.SearchHistory
	err := config.DB.Where("user_id = ?", caller.UserID).
		Order("created_at DESC").
		Limit(20).
		Find(&history).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, history)
}

func DeleteSearchHistory(c *gin.Context) {
	caller := callerFrom(c)
	if err := config.DB.Where("user_id = ?", caller.UserID).
		Delete(&models.SearchHistory{}).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "search history cleared")
}
