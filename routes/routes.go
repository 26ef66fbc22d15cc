package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/models"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", controllers.Register)
			auth.POST("/login", controllers.Login)
			auth.POST("/logout", controllers.Logout)
			auth.POST("/refresh", controllers.RefreshToken)
			auth.GET("/verify-token", middleware.AuthRequired(), controllers.VerifyToken)
			auth.POST("/forgot-password", controllers.ForgotPassword)
			auth.POST("/reset-password", controllers.ResetPassword)
			auth.GET("/verify-email", controllers.VerifyEmail)
			auth.POST("/resend-verification", controllers.ResendVerification)
		}

		users := api.Group("/users", middleware.AuthRequired())
		{
			users.GET("/profile", controllers.GetProfile)
			users.PUT("/profile", controllers.UpdateProfile)
			users.PUT("/change-password", controllers.ChangePassword)
			users.GET("/bookings", controllers.GetMyBookings)
			users.GET("/favorites", controllers.GetFavorites)
			users.POST("/favorites/:hotel_id", controllers.AddFavorite)
			users.DELETE("/favorites/:hotel_id", controllers.RemoveFavorite)
			users.GET("/notifications", controllers.GetNotifications)
			users.PUT("/notifications/:id/read", controllers.MarkNotificationRead)
			users.DELETE("/notifications/:id", controllers.DeleteNotification)
		}

		hotels := api.Group("/hotels")
		{
			hotels.GET("", controllers.GetHotels)
			hotels.GET("/featured", controllers.GetFeaturedHotels)
			hotels.GET("/:id", controllers.GetHotel)
			hotels.GET("/:id/rooms", controllers.GetHotelRooms)

			hotels.POST("", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin),
				controllers.CreateHotel)
			hotels.PUT("/:id", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin),
				controllers.UpdateHotel)
			hotels.DELETE("/:id", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin),
				controllers.DeleteHotel)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", controllers.GetRooms)
			rooms.GET("/types", controllers.GetRoomTypes)
			rooms.GET("/:id", controllers.GetRoom)
			rooms.GET("/:id/availability", controllers.GetRoomAvailability)

			ownerOnly := rooms.Group("", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin))
			{
				ownerOnly.POST("", controllers.CreateRoom)
				ownerOnly.PUT("/:id", controllers.UpdateRoom)
				ownerOnly.DELETE("/:id", controllers.DeleteRoom)
				ownerOnly.PUT("/:id/status", controllers.UpdateRoomStatus)
			}
		}

		search := api.Group("/search")
		{
			search.GET("/hotels", middleware.OptionalAuth(), controllers.SearchHotels)
			search.GET("/suggestions", controllers.SearchSuggestions)
			search.GET("/availability", controllers.SearchAvailability)
			search.GET("/history", middleware.AuthRequired(), controllers.GetSearchHistory)
			search.DELETE("/history", middleware.AuthRequired(), controllers.DeleteSearchHistory)
		}

		bookings := api.Group("/bookings", middleware.AuthRequired())
		{
			bookings.POST("", controllers.CreateBooking)
			bookings.GET("", controllers.GetBookings)
			bookings.GET("/:id", controllers.GetBooking)
			bookings.PUT("/:id/cancel", controllers.CancelBooking)
		}

		payments := api.Group("/payments", middleware.AuthRequired())
		{
			payments.POST("", controllers.CreatePayment)
			payments.GET("", controllers.GetMyPayments)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("/hotel/:hotel_id", controllers.GetHotelReviews)
			reviews.POST("", middleware.AuthRequired(), controllers.CreateReview)
			reviews.DELETE("/:id", middleware.AuthRequired(), controllers.DeleteReview)
		}

		promotions := api.Group("/promotions")
		{
			promotions.GET("", controllers.GetPromotions)
			promotions.GET("/:id", controllers.GetPromotion)

			manage := promotions.Group("", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin))
			{
				manage.POST("", controllers.CreatePromotion)
				manage.PUT("/:id", controllers.UpdatePromotion)
				manage.DELETE("/:id", controllers.DeletePromotion)
			}
		}

		discounts := api.Group("/discounts")
		{
			discounts.POST("/validate", controllers.ValidateDiscountCode)

			manage := discounts.Group("", middleware.AuthRequired(),
				middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin))
			{
				manage.POST("", controllers.CreateDiscountCode)
				manage.GET("", controllers.GetDiscountCodes)
			}
		}

		owner := api.Group("/owner", middleware.AuthRequired(),
			middleware.RoleRequired(models.RoleHotelOwner, models.RoleAdmin))
		{
			owner.GET("/dashboard", controllers.OwnerDashboard)
			owner.GET("/hotels", controllers.OwnerHotels)
			owner.GET("/bookings", controllers.OwnerBookings)
			owner.PUT("/bookings/:id/check-in", controllers.OwnerCheckInBooking)
			owner.PUT("/bookings/:id/check-out", controllers.OwnerCheckOutBooking)
			owner.PUT("/bookings/:id/reject", controllers.OwnerRejectBooking)
			owner.GET("/revenue", controllers.OwnerRevenue)
			owner.GET("/rooms/status", controllers.OwnerRoomsStatus)
			owner.GET("/reviews", controllers.OwnerReviews)
			owner.GET("/statistics", controllers.OwnerStatistics)
			owner.GET("/occupancy", controllers.OwnerOccupancy)
			owner.GET("/reports/export", controllers.OwnerExportBookings)
		}

		admin := api.Group("/admin", middleware.AuthRequired(),
			middleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", controllers.AdminDashboard)
			admin.GET("/users", controllers.AdminGetUsers)
			admin.GET("/users/:id", controllers.AdminGetUser)
			admin.PUT("/users/:id/status", controllers.AdminUpdateUserStatus)
			admin.PUT("/users/:id/role", controllers.AdminUpdateUserRole)
			admin.DELETE("/users/:id", controllers.AdminDeleteUser)

			admin.GET("/hotels", controllers.AdminGetHotels)
			admin.GET("/hotels/pending", controllers.AdminGetPendingHotels)
			admin.PUT("/hotels/:id/approve", controllers.AdminApproveHotel)
			admin.PUT("/hotels/:id/reject", controllers.AdminRejectHotel)
			admin.PUT("/hotels/:id/suspend", controllers.AdminSuspendHotel)
			admin.PUT("/hotels/:id/feature", controllers.AdminFeatureHotel)

			admin.GET("/bookings", controllers.AdminGetBookings)
			admin.GET("/payments", controllers.AdminGetPayments)
			admin.GET("/reviews", controllers.AdminGetReviews)
			admin.PUT("/reviews/:id/hide", controllers.AdminHideReview)
			admin.DELETE("/reviews/:id", controllers.AdminDeleteReview)

			admin.GET("/statistics", controllers.AdminStatistics)

			admin.GET("/roles", controllers.AdminGetRoles)
			admin.POST("/roles", controllers.AdminCreateRole)
			admin.PUT("/roles/:id", controllers.AdminUpdateRole)
			admin.DELETE("/roles/:id", controllers.AdminDeleteRole)

			admin.GET("/reports/export", controllers.AdminExportBookings)
		}
	}

	return r
}
