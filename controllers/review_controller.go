package controllers

import (
	"net/http"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type createReviewPayload struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// CreateReview lets a guest rate a hotel after a completed stay. One review
// per booking.
func CreateReview(c *gin.Context) {
	caller := callerFrom(c)
	var payload createReviewPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.Rating < 1 || payload.Rating > 5 {
		utils.JSONError(c, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	var booking models.Booking
	if err := config.DB.First(&booking, payload.BookingID).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found")
		return
	}
	if booking.UserID != caller.UserID {
		utils.JSONError(c, http.StatusNotFound, "booking not found")
		return
	}
	if booking.Status != models.BookingStatusCheckedOut {
		utils.JSONError(c, http.StatusBadRequest, "only completed stays can be reviewed")
		return
	}

	var existing models.Review
	if err := config.DB.Where("booking_id = ?", booking.ID).First(&existing).Error; err == nil {
		utils.JSONError(c, http.StatusBadRequest, "booking has already been reviewed")
		return
	}

	review := models.Review{
		HotelID:   booking.HotelID,
		UserID:    caller.UserID,
		BookingID: booking.ID,
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		Status:    models.ReviewStatusActive,
	}
	if err := config.DB.Create(&review).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, review)
}

// GetHotelReviews lists active reviews of one hotel, newest first.
func GetHotelReviews(c *gin.Context) {
	hotelID, ok := uintParam(c, "hotel_id")
	if !ok {
		return
	}
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Review{}).
		Where("hotel_id = ? AND status = ?", hotelID, models.ReviewStatusActive)

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

func DeleteReview(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	res := config.DB.
		Where("id = ? AND user_id = ?", id, caller.UserID).
		Delete(&models.Review{})
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "review not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "review deleted")
}
