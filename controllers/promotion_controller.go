package controllers

import (
	"net/http"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
)

type promotionPayload struct {
	HotelID         *uint          `json:"hotel_id"`
	Title           string         `json:"title"`
	Description     string         `json:"description"`
	DiscountPercent float64        `json:"discount_percent"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	IsActive        *bool          `json:"is_active"`
	Conditions      datatypes.JSON `json:"conditions"`
}

func GetPromotions(c *gin.Context) {
	now := time.Now()
	var promos []models.Promotion
	err := config.DB.
		Where("is_active = ? AND start_date <= ? AND end_date >= ?", true, now, now).
		Order("discount_percent DESC").
		Find(&promos).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, promos)
}

func GetPromotion(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var promo models.Promotion
	if err := config.DB.First(&promo, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "promotion not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, promo)
}

func CreatePromotion(c *gin.Context) {
	caller := callerFrom(c)
	var payload promotionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Title == "" || payload.DiscountPercent <= 0 || payload.DiscountPercent > 100 {
		utils.JSONError(c, http.StatusBadRequest, "title and a discount_percent in (0, 100] are required")
		return
	}

	start, err := time.Parse("2006-01-02", payload.StartDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", payload.EndDate)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "end_date must be YYYY-MM-DD")
		return
	}
	if !start.Before(end) {
		utils.JSONError(c, http.StatusBadRequest, "end_date must be after start_date")
		return
	}

	// Site-wide promotions are admin-only; hotel promotions need ownership.
	if payload.HotelID == nil {
		if !caller.IsAdmin() {
			utils.JSONError(c, http.StatusForbidden, "only admins can create site-wide promotions")
			return
		}
	} else {
		scopes := services.NewScopeService(config.DB)
		if _, err := scopes.RequireHotelOwnership(caller, *payload.HotelID); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	promo := models.Promotion{
		HotelID:         payload.HotelID,
		Title:           payload.Title,
		Description:     payload.Description,
		DiscountPercent: payload.DiscountPercent,
		StartDate:       start,
		EndDate:         end,
		IsActive:        true,
		Conditions:      payload.Conditions,
	}
	if err := config.DB.Create(&promo).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, promo)
}

func UpdatePromotion(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var promo models.Promotion
	if err := config.DB.First(&promo, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "promotion not found")
		return
	}
	if err := requirePromotionAccess(caller, &promo); err != nil {
		respondServiceError(c, err)
		return
	}

	var payload promotionPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if payload.Title != "" {
		updates["title"] = payload.Title
	}
	if payload.Description != "" {
		updates["description"] = payload.Description
	}
	if payload.DiscountPercent > 0 && payload.DiscountPercent <= 100 {
		updates["discount_percent"] = payload.DiscountPercent
	}
	if payload.StartDate != "" {
		if t, err := time.Parse("2006-01-02", payload.StartDate); err == nil {
			updates["start_date"] = t
		}
	}
	if payload.EndDate != "" {
		if t, err := time.Parse("2006-01-02", payload.EndDate); err == nil {
			updates["end_date"] = t
		}
	}
	if payload.IsActive != nil {
		updates["is_active"] = *payload.IsActive
	}
	if len(payload.Conditions) > 0 {
		updates["conditions"] = payload.Conditions
	}
	if len(updates) > 0 {
		if err := config.DB.Model(&promo).Updates(updates).Error; err != nil {
			respondServiceError(c, err)
			return
		}
	}
	utils.JSONSuccess(c, http.StatusOK, promo)
}

func DeletePromotion(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var promo models.Promotion
	if err := config.DB.First(&promo, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "promotion not found")
		return
	}
	if err := requirePromotionAccess(caller, &promo); err != nil {
		respondServiceError(c, err)
		return
	}

	if err := config.DB.Delete(&promo).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "promotion deleted")
}

func requirePromotionAccess(caller services.Caller, promo *models.Promotion) error {
	if caller.IsAdmin() {
		return nil
	}
	if promo.HotelID == nil {
		return services.ErrForbidden
	}
	scopes := services.NewScopeService(config.DB)
	_, err := scopes.RequireHotelOwnership(caller, *promo.HotelID)
	return err
}
