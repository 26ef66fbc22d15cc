package controllers

import (
	"encoding/csv"
	"log"
	"net/http"
	"strconv"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

// AdminDashboard summarizes the whole platform.
func AdminDashboard(c *gin.Context) {
	var userCount, hotelCount, pendingHotels, bookingCount int64
	config.DB.Model(&models.User{}).Count(&userCount)
	config.DB.Model(&models.Hotel{}).Count(&hotelCount)
	config.DB.Model(&models.Hotel{}).Where("status = ?", models.HotelStatusPending).Count(&pendingHotels)
	config.DB.Model(&models.Booking{}).Count(&bookingCount)

	scopes := services.NewScopeService(config.DB)
	revenue := services.NewRevenueService(config.DB, scopes)
	total, err := revenue.ScopedTotal(services.HotelScope{All: true})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"user_count":     userCount,
		"hotel_count":    hotelCount,
		"pending_hotels": pendingHotels,
		"booking_count":  bookingCount,
		"total_revenue":  total,
	})
}

func AdminGetUsers(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		q = q.Where("email LIKE ? OR full_name LIKE ?", like, like)
	}
	if role := c.Query("role"); role != "" {
		q = q.Joins("JOIN roles ON roles.id = users.role_id").Where("roles.name = ?", role)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var users []models.User
	err := q.Preload("Role").
		Order("users.created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&users).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, users, page, perPage, total)
}

func AdminGetUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var user models.User
	if err := config.DB.Preload("Role").First(&user, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, user)
}

// AdminUpdateUserStatus activates or deactivates an account.
func AdminUpdateUserStatus(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload struct {
		IsActive *bool `json:"is_active" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	caller := callerFrom(c)
	if id == caller.UserID {
		utils.JSONError(c, http.StatusBadRequest, "cannot change your own status")
		return
	}

	res := config.DB.Model(&models.User{}).Where("id = ?", id).Update("is_active", *payload.IsActive)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "user status updated")
}

// AdminUpdateUserRole reassigns a user to another role by name.
func AdminUpdateUserRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Role string `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var role models.Role
	if err := config.DB.Where("name = ?", payload.Role).First(&role).Error; err != nil {
		utils.JSONError(c, http.StatusBadRequest, "unknown role")
		return
	}

	res := config.DB.Model(&models.User{}).Where("id = ?", id).Update("role_id", role.ID)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "user role updated")
}

func AdminDeleteUser(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	caller := callerFrom(c)
	if id == caller.UserID {
		utils.JSONError(c, http.StatusBadRequest, "cannot delete your own account")
		return
	}

	res := config.DB.Delete(&models.User{}, id)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "user not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "user deleted")
}

func AdminGetHotels(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Hotel{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var hotels []models.Hotel
	err := q.Preload("Owner").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&hotels).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, hotels, page, perPage, total)
}

func AdminGetPendingHotels(c *gin.Context) {
	var hotels []models.Hotel
	err := config.DB.Preload("Owner").
		Where("status = ?", models.HotelStatusPending).
		Order("created_at").
		Find(&hotels).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotels)
}

func adminSetHotelStatus(c *gin.Context, from []string, to string, message string) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}

	allowed := len(from) == 0
	for _, s := range from {
		if hotel.Status == s {
			allowed = true
			break
		}
	}
	if !allowed {
		utils.JSONError(c, http.StatusBadRequest, "hotel is in status "+hotel.Status)
		return
	}

	if err := config.DB.Model(&hotel).Update("status", to).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, message)
}

func AdminApproveHotel(c *gin.Context) {
	adminSetHotelStatus(c,
		[]string{models.HotelStatusPending, models.HotelStatusSuspended},
		models.HotelStatusActive, "hotel approved")
}

func AdminRejectHotel(c *gin.Context) {
	adminSetHotelStatus(c,
		[]string{models.HotelStatusPending},
		models.HotelStatusRejected, "hotel rejected")
}

func AdminSuspendHotel(c *gin.Context) {
	adminSetHotelStatus(c,
		[]string{models.HotelStatusActive},
		models.HotelStatusSuspended, "hotel suspended")
}

// AdminFeatureHotel toggles the featured flag on an active hotel.
func AdminFeatureHotel(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload struct {
		IsFeatured *bool `json:"is_featured" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var hotel models.Hotel
	if err := config.DB.First(&hotel, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "hotel not found")
		return
	}
	if hotel.Status != models.HotelStatusActive && *payload.IsFeatured {
		utils.JSONError(c, http.StatusBadRequest, "only active hotels can be featured")
		return
	}

	if err := config.DB.Model(&hotel).Update("is_featured", *payload.IsFeatured).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, hotel)
}

func AdminGetBookings(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Booking{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if hotelID := c.Query("hotel_id"); hotelID != "" {
		q = q.Where("hotel_id = ?", hotelID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var bookings []models.Booking
	err := q.Preload("Hotel").Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&bookings).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, bookings, page, perPage, total)
}

func AdminGetPayments(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Payment{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respondServiceError(c, err)
		return
	}

	var payments []models.Payment
	err := q.Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&payments).Error
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONPaginated(c, payments, page, perPage, total)
}

func AdminGetReviews(c *gin.Context) {
	page, perPage := paginationParams(c)

	q := config.DB.Model(&models.Review{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

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

// AdminHideReview hides an abusive review without deleting the record.
func AdminHideReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res := config.DB.Model(&models.Review{}).Where("id = ?", id).
		Update("status", models.ReviewStatusHidden)
	if res.Error != nil {
		respondServiceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONError(c, http.StatusNotFound, "review not found")
		return
	}
	utils.JSONMessage(c, http.StatusOK, "review hidden")
}

func AdminDeleteReview(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	res := config.DB.Delete(&models.Review{}, id)
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

// AdminStatistics reports platform-wide revenue, user and booking trends.
func AdminStatistics(c *gin.Context) {
	start, end := dateRangeParams(c)

	scopes := services.NewScopeService(config.DB)
	revenue := services.NewRevenueService(config.DB, scopes)
	summary, err := revenue.MonthlySummary(services.HotelScope{All: true}, start, end)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var bookingsByStatus []statusCount
	config.DB.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&bookingsByStatus)

	type monthCount struct {
		Month string `json:"month"`
		Count int64  `json:"count"`
	}
	var signups []monthCount
	config.DB.Model(&models.User{}).
		Select("DATE_FORMAT(created_at, '%Y-%m') AS month, COUNT(*) AS count").
		Group("month").
		Order("month").
		Scan(&signups)

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"revenue":            summary,
		"bookings_by_status": bookingsByStatus,
		"user_signups":       signups,
	})
}

func AdminGetRoles(c *gin.Context) {
	var roles []models.Role
	if err := config.DB.Order("id").Find(&roles).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, roles)
}

func AdminCreateRole(c *gin.Context) {
	var payload struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	role := models.Role{Name: payload.Name, Description: payload.Description}
	if err := config.DB.Create(&role).Error; err != nil {
		if isDuplicateEntry(err) {
			utils.JSONError(c, http.StatusBadRequest, "role already exists")
			return
		}
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, role)
}

func AdminUpdateRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}
	var payload struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var role models.Role
	if err := config.DB.First(&role, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "role not found")
		return
	}
	if err := config.DB.Model(&role).Update("description", payload.Description).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, role)
}

func AdminDeleteRole(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var role models.Role
	if err := config.DB.First(&role, id).Error; err != nil {
		utils.JSONError(c, http.StatusNotFound, "role not found")
		return
	}
	switch role.Name {
	case models.RoleCustomer, models.RoleHotelOwner, models.RoleAdmin:
		utils.JSONError(c, http.StatusBadRequest, "built-in roles cannot be deleted")
		return
	}

	var inUse int64
	config.DB.Model(&models.User{}).Where("role_id = ?", role.ID).Count(&inUse)
	if inUse > 0 {
		utils.JSONError(c, http.StatusBadRequest, "role is assigned to users")
		return
	}

	if err := config.DB.Delete(&role).Error; err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "role deleted")
}

// AdminExportBookings streams all bookings as CSV.
func AdminExportBookings(c *gin.Context) {
	q := config.DB.Model(&models.Booking{})
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
