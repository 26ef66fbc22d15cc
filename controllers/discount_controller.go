package controllers

import (
	"errors"
	"net/http"
	"time"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
)

type discountCodePayload struct {
	Code            string  `json:"code" binding:"required"`
	DiscountPercent float64 `json:"discount_percent" binding:"required"`
	MaxDiscount     float64 `json:"max_discount"`
	ValidFrom       string  `json:"valid_from" binding:"required"`
	ValidTo         string  `json:"valid_to" binding:"required"`
	UsageLimit      int     `json:"usage_limit"`
}

type validateDiscountPayload struct {
	Code   string  `json:"code" binding:"required"`
	Amount float64 `json:"amount"`
}

// ValidateDiscountCode checks a code without consuming a use, optionally
// previewing the discount for an amount.
func ValidateDiscountCode(c *gin.Context) {
	var payload validateDiscountPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var dc models.DiscountCode
	if err := config.DB.Where("code = ?", payload.Code).First(&dc).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "discount code not found")
		return
	}

	now := time.Now()
	valid := dc.IsActive &&
		!now.Before(dc.ValidFrom) && !now.After(dc.ValidTo) &&
		(dc.UsageLimit == 0 || dc.UsedCount < dc.UsageLimit)

	resp := gin.H{
		"valid":            valid,
		"code":             dc.Code,
		"discount_percent": dc.DiscountPercent,
		"max_discount":     dc.MaxDiscount,
	}
	if valid && payload.Amount > 0 {
		resp["discount_amount"] = services.ApplyDiscount(payload.Amount, dc.DiscountPercent, dc.MaxDiscount)
	}
	utils.JSONSuccess(c, http.StatusOK, resp)
}

func CreateDiscountCode(c *gin.Context) {
	caller := callerFrom(c)
	var payload discountCodePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if payload.DiscountPercent <= 0 || payload.DiscountPercent > 100 {
		utils.JSONError(c, http.StatusBadRequest, "discount_percent must be in (0, 100]")
		return
	}

	from, err := time.Parse("2006-01-02", payload.ValidFrom)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "valid_from must be YYYY-MM-DD")
		return
	}
	to, err := time.Parse("2006-01-02", payload.ValidTo)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "valid_to must be YYYY-MM-DD")
		return
	}
	if !from.Before(to) {
		utils.JSONError(c, http.StatusBadRequest, "valid_to must be after valid_from")
		return
	}

	ownerID := caller.UserID
	dc := models.DiscountCode{
		Code:            payload.Code,
		OwnerID:         &ownerID,
		DiscountPercent: payload.DiscountPercent,
		MaxDiscount:     payload.MaxDiscount,
		ValidFrom:       from,
		ValidTo:         to,
		UsageLimit:      payload.UsageLimit,
		IsActive:        true,
	}
	if err := config.DB.Create(&dc).Error; err != nil {
		if isDuplicateEntry(err) {
			utils.JSONError(c, http.StatusBadRequest, "code already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, dc)
}

func GetDiscountCodes(c *gin.Context) {
	caller := callerFrom(c)

	q := config.DB.Model(&models.DiscountCode{})
	if !caller.IsAdmin() {
		q = q.Where("owner_id = ?", caller.UserID)
	}

	var codes []models.DiscountCode
	if err := q.Order("created_at DESC").Find(&codes).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, codes)
}

// isDuplicateEntry spots MySQL error 1062 behind GORM's wrapping.
func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
