package controllers

import (
	"net/http"
	"strconv"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type hotelPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city"`
	District    string `json:"district"`
	StarRating  int    `json:"star_rating"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	ImageURL    string `json:"image_url"`
}

// GetHotels lists active hotels with optional city / rating / featured /
// free-text filters, paginated.
func GetHotels(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Hotel{}).Where("status = ?", models.HotelStatusActive)

	if city := c.Query("city"); city != "" {
		q = q.Where("city = ?", city)
	}
	if rating := c.Query("min_rating"); rating != "" {
		if n, err := strconv.Atoi(rating); err == nil {
			q = q.Where("star_rating >= ?", n)
		}
	}
	if c.Query("featured") == "true" {
		q = q.Where("is_featured = ?", true)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("name LIKE ? OR city LIKE ? OR address LIKE ?", like, like, like)
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
	utils.JSONPaginated(c, hotels, page, perPage, total)
}

func GetFeaturedHotels(c *gin.Context) {
	var hotels []models.Hotel
	err := config.DB.
		Where("status = ? AND is_featured = ?", models.HotelStatusActive, true).
		Order("star_rating DESC").
		Limit(12).
		Find(&hotels).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

// GetHotel returns one active hotel with its rooms and review summary.
func GetHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var hotel models.Hotel
	err := config.DB.Preload("Rooms", "status = ?", models.RoomStatusAvailable).
		Where("status = ?", models.HotelStatusActive).
		First(&hotel, id).Error
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}

	var summary struct {
		AvgRating   float64 `json:"avg_rating"`
		ReviewCount int64   `json:"review_count"`
	}
	config.DB.Model(&models.Review{}).
		Where("hotel_id = ? AND status = ?", hotel.ID, models.ReviewStatusActive).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count").
		Scan(&summary)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"hotel":        hotel,
		"avg_rating":   summary.AvgRating,
		"review_count": summary.ReviewCount,
	})
}

// CreateHotel registers a new hotel for the calling owner. New hotels start
// pending until an admin approves them.
func CreateHotel(c *gin.Context) {
	caller := callerFrom(c)
	var payload hotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Name == "" || payload.Address == "" || payload.City == "" {
		utils.JSONError(c, http.StatusBadRequest, "name, address and city are required")
		return
	}

	hotel := models.Hotel{
		OwnerID:     caller.UserID,
		Name:        payload.Name,
		Description: payload.Description,
		Address:     payload.Address,
		City:        payload.City,
		District:    payload.District,
		StarRating:  payload.StarRating,
		Phone:       payload.Phone,
		Email:       payload.Email,
		ImageURL:    payload.ImageURL,
		Status:      models.HotelStatusPending,
	}
	if err := config.DB.Create(&hotel).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, hotel)
}

func UpdateHotel(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	scopes := services.NewScopeService(config.DB)
	hotel, err := scopes.RequireHotelOwnership(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var payload hotelPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != "" {
		updates["name"] = payload.Name
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.Address != "" {
		updates["address"] = payload.Address
	}
	if payload.City != "" {
		updates["city"] = payload.City
	}
	if payload.District != "" {
		updates["district"] = payload.District
	}
	if payload.StarRating != 0 {
		updates["star_rating"] = payload.StarRating
	}
	if payload.Phone != "" {
		updates["phone"] = payload.Phone
	}
	if payload.Email != "" {
		updates["email"] = payload.Email
	}
	if payload.ImageURL != "" {
		updates["image_url"] = payload.ImageURL
	}
	if len(updates) > 0 {
		if err := config.DB.Model(hotel).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func DeleteHotel(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	scopes := services.NewScopeService(config.DB)
	hotel, err := scopes.RequireHotelOwnership(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	var activeBookings int64
	config.DB.Model(&models.Booking{}).
		Where("hotel_id = ? AND status IN ?", hotel.ID, services.OccupyingStatuses).
		Count(&activeBookings)
	if activeBookings > 0 {
		utils.JSONError(c, http.StatusBadRequest, "hotel has active bookings")
		return
	}

	if err := config.DB.Delete(hotel).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "hotel deleted")
}

// GetHotelRooms lists the available rooms of one active hotel.
func GetHotelRooms(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var hotel models.Hotel
	if err := config.DB.Where("status = ?", models.HotelStatusActive).First(&hotel, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}

	var rooms []models.Room
	err := config.DB.Preload("RoomType").
		Where("hotel_id = ? AND status = ?", hotel.ID, models.RoomStatusAvailable).
		Find(&rooms).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}
