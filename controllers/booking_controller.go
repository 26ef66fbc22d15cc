package controllers

import (
	"net/http"

	"hotel-booking/config"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

func CreateBooking(c *gin.Context) {
	caller := callerFrom(c)
	var req services.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.CreateBooking(caller, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, booking)
}

func GetBooking(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	booking, err := svc.GetBooking(caller, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, booking)
}

func GetBookings(c *gin.Context) {
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

func CancelBooking(c *gin.Context) {
	caller := callerFrom(c)
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	svc := services.NewBookingService(config.DB)
	if err := svc.CancelBooking(caller, id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "booking cancelled")
}
