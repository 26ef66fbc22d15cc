package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

func callerFrom(c *gin.Context) services.Caller {
	return middleware.GetCaller(c)
}

// respondServiceError maps service failure kinds onto HTTP status codes.
// Unrecognized errors are logged and reported as a generic 500 so internals
// never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, services.ErrForbidden):
		utils.JSONError(c, http.StatusForbidden, "insufficient permissions")
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "room is no longer available for the selected dates")
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, ve.Message)
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}

func paginationParams(c *gin.Context) (page, perPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ = strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	return page, perPage
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.JSONError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
