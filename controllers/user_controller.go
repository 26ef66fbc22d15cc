package controllers

import (
	"net/http"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type updateProfilePayload struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	IDCard   string `json:"id_card"`
	Avatar   string `json:"avatar"`
}

type changePasswordPayload struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func GetProfile(c *gin.Context) {
	caller := callerFrom(c)
	var user models.User
	if err := config.DB.Preload("Role").First(&user, caller.UserID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func UpdateProfile(c *gin.Context) {
	caller := callerFrom(c)
	var payload updateProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.First(&user, caller.UserID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}

	updates := map[string]interface{}{}
	if payload.FullName != "" {
		updates["full_name"] = payload.FullName
	}
	if payload.Phone != "" {
		updates["phone"] = payload.Phone
	}
	if payload.Address != "" {
		updates["address"] = payload.Address
	}
	if payload.IDCard != "" {
		updates["id_card"] = payload.IDCard
	}
	if payload.Avatar != "" {
		updates["avatar"] = payload.Avatar
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&user).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

func ChangePassword(c *gin.Context) {
	caller := callerFrom(c)
	var payload changePasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewAuthService(config.DB)
	if err := svc.ChangePassword(caller.UserID, payload.OldPassword, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "password changed")
}

func GetMyBookings(c *gin.Context) {
	caller := callerFrom(c)
	page, perPage := paginationParams(c)

	svc := services.NewBookingService(config.DB)
	bookings, total, err := svc.ListUserBookings(caller.UserID, page, perPage)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, bookings, page, perPage, total)
}

func GetFavorites(c *gin.Context) {
	caller := callerFrom(c)
	var favorites []models.Favorite
	err := config.DB.Preload("Hotel").
		Where("user_id = ?", caller.UserID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, favorites)
}

func AddFavorite(c *gin.Context) {
	caller := callerFrom(c)
	hotelID, ok := uintParam(c, "hotel_id")
	if !ok {
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, hotelID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}

	fav := models.Favorite{UserID: caller.UserID, HotelID: hotelID}
	if err := config.DB.Where(&fav).FirstOrCreate(&fav).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, fav)
}

func RemoveFavorite(c *gin.Context) {
	caller := callerFrom(c)
	hotelID, ok := uintParam(c, "hotel_id")
	if !ok {
		return
	}

	res := config.DB.
		Where("user_id = ? AND hotel_id = ?", caller.UserID, hotelID).
		Delete(&models.Favorite{})
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "favorite not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "favorite removed")
}

func GetNotifications(c *gin.Context) {
	caller := callerFrom(c)
	page, perPage := paginationParams(c)

	var total int64
	q := config.DB.Model(&models.Notification{}).Where("user_id = ?", caller.UserID)
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var notes []models.Notification
	err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&notes).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, notes, page, perPage, total)
}

func MarkNotificationRead(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, caller.UserID).
		Update("is_read", true)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "notification not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "notification marked as read")
}

func DeleteNotification(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res := config.DB.
		Where("id = ? AND user_id = ?", id, caller.UserID).
		Delete(&models.Notification{})
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "notification not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "notification deleted")
}
