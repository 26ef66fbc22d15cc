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

type roomPayload struct {
	HotelID      uint    `json:"hotel_id"`
	RoomTypeID   *uint   `json:"room_type_id"`
	Name         string  `json:"name"`
	RoomNumber   string  `json:"room_number"`
	Description  string  `json:"description"`
	MaxGuests    int     `json:"max_guests"`
	NumBeds      int     `json:"num_beds"`
	BasePrice    float64 `json:"base_price"`
	WeekendPrice float64 `json:"weekend_price"`
	Quantity     *int    `json:"quantity"`
	Status       string  `json:"status"`
	ImageURL     string  `json:"image_url"`
}

func GetRooms(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Room{})
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		q = q.Where("hotel_id = ?", hotelID)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var rooms []models.Room
	err := q.Preload("RoomType").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&rooms).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, rooms, page, perPage, total)
}

func GetRoom(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := config.DB.Preload("RoomType").First(&room, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func CreateRoom(c *gin.Context) {
	caller := callerFrom(c)
	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.HotelID == 0 || payload.Name == "" || payload.BasePrice <= 0 {
		utils.JSONError(c, http.StatusBadRequest, "hotel_id, name and a positive base_price are required")
		return
	}

	scopes := services.NewScopeService(config.DB)
	if _, err := scopes.RequireHotelOwnership(caller, payload.HotelID); err != nil {
		respondServiceError(c, err)
		return
	}

	quantity := 1
	if payload.Quantity != nil {
		if *payload.Quantity < 0 {
			utils.JSONError(c, http.StatusBadRequest, "quantity cannot be negative")
			return
		}
		quantity = *payload.Quantity
	}
	maxGuests := payload.MaxGuests
	if maxGuests < 1 {
		maxGuests = 2
	}
	numBeds := payload.NumBeds
	if numBeds < 1 {
		numBeds = 1
	}

	room := models.Room{
		HotelID:      payload.HotelID,
		RoomTypeID:   payload.RoomTypeID,
		Name:         payload.Name,
		RoomNumber:   payload.RoomNumber,
		Description:  payload.Description,
		MaxGuests:    maxGuests,
		NumBeds:      numBeds,
		BasePrice:    payload.BasePrice,
		WeekendPrice: payload.WeekendPrice,
		Quantity:     quantity,
		Status:       models.RoomStatusAvailable,
		ImageURL:     payload.ImageURL,
	}
	if err := config.DB.Create(&room).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

func UpdateRoom(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}

	scopes := services.NewScopeService(config.DB)
	if _, err := scopes.RequireHotelOwnership(caller, room.HotelID); err != nil {
		respondServiceError(c, err)
		return
	}

	var payload roomPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Name != "" {
		updates["name"] = payload.Name
	}
	if payload.RoomNumber != "" {
		updates["room_number"] = payload.RoomNumber
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.MaxGuests > 0 {
		updates["max_guests"] = payload.MaxGuests
	}
	if payload.NumBeds > 0 {
		updates["num_beds"] = payload.NumBeds
	}
	if payload.BasePrice > 0 {
		updates["base_price"] = payload.BasePrice
	}
	if payload.WeekendPrice > 0 {
		updates["weekend_price"] = payload.WeekendPrice
	}
	if payload.Quantity != nil {
		if *payload.Quantity < 0 {
			utils.JSONError(c, http.StatusBadRequest, "quantity cannot be negative")
			return
		}
		updates["quantity"] = *payload.Quantity
	}
	if payload.RoomTypeID != nil {
		updates["room_type_id"] = *payload.RoomTypeID
	}
	if payload.ImageURL != "" {
		updates["image_url"] = payload.ImageURL
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&room).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

func DeleteRoom(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}

	scopes := services.NewScopeService(config.DB)
	if _, err := scopes.RequireHotelOwnership(caller, room.HotelID); err != nil {
		respondServiceError(c, err)
		return
	}

	var activeDetails int64
	config.DB.Model(&models.BookingDetail{}).
		Joins("JOIN bookings ON bookings.id = booking_details.booking_id").
		Where("booking_details.room_id = ? AND bookings.status IN ?", room.ID, services.OccupyingStatuses).
		Count(&activeDetails)
	if activeDetails > 0 {
		utils.JSONError(c, http.StatusBadRequest, "room has active bookings")
		return
	}

	if err := config.DB.Delete(&room).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "room deleted")
}

// UpdateRoomStatus toggles a room between available and unavailable.
func UpdateRoomStatus(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Status != models.RoomStatusAvailable && payload.Status != models.RoomStatusUnavailable {
		utils.JSONError(c, http.StatusBadRequest, "status must be available or unavailable")
		return
	}

	var room models.Room
	if err := config.DB.First(&room, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "room not found")
		return
	}

	scopes := services.NewScopeService(config.DB)
	if _, err := scopes.RequireHotelOwnership(caller, room.HotelID); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Model(&room).Update("status", payload.Status).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

// GetRoomAvailability reports free units of a room over a stay window.
func GetRoomAvailability(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

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
	result, err := svc.AvailableUnits(id, checkIn, checkOut)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, result)
}

func GetRoomTypes(c *gin.Context) {
	var types []models.RoomType
	if err := config.DB.Order("id").Find(&types).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, types)
}

func queryUint(c *gin.Context, name string) uint {
	n, _ := strconv.ParseUint(c.Query(name), 10, 32)
	return uint(n)
}
