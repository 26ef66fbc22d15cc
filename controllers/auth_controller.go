package controllers

import (
	"log"
	"net/http"

	"hotel-booking/config"
	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"

	"github.com/gin-gonic/gin"
)

type registerPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
}

type loginPayload struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshPayload struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type forgotPasswordPayload struct {
	Email string `json:"email" binding:"required"`
}

type resetPasswordPayload struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

func Register(c *gin.Context) {
	var payload registerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewAuthService(config.DB)
	user, err := svc.Register(payload.Email, payload.Password, payload.FullName, payload.Phone)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{
		"user":    user,
		"message": "registration successful, please verify your email",
	})
}

func Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewAuthService(config.DB)
	user, err := svc.Authenticate(payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Role.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"user":          user,
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// Logout revokes the submitted refresh token. Access tokens simply expire.
func Logout(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	utils.RevokeRefreshToken(payload.RefreshToken)
	utils.JSONMessage(c, http.StatusOK, "logged out")
}

// RefreshToken exchanges a single-use refresh token for a fresh pair.
func RefreshToken(c *gin.Context) {
	var payload refreshPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, err := utils.RotateRefreshToken(payload.RefreshToken)
	if err != nil {
		utils.JSONError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Preload("Role").First(&user, userID).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "account no longer exists")
		return
	}
	if !user.IsActive {
		utils.JSONError(c, http.StatusForbidden, "account is deactivated")
		return
	}

	pair, err := utils.CreateTokenPair(user.ID, user.Role.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

// VerifyToken reports the identity behind a valid access token.
func VerifyToken(c *gin.Context) {
	caller := callerFrom(c)
	var user models.User
	if err := config.DB.Preload("Role").First(&user, caller.UserID).Error; err != nil {
		utils.JSONError(c, http.StatusUnauthorized, "account no longer exists")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"valid": true, "user": user})
}

func ForgotPassword(c *gin.Context) {
	var payload forgotPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewAuthService(config.DB)
	if err := svc.RequestPasswordReset(payload.Email); err != nil {
		respondServiceError(c, err)
		return
	}
	// Same response whether or not the address exists.
	utils.JSONMessage(c, http.StatusOK, "if the email is registered, a reset link has been sent")
}

func ResetPassword(c *gin.Context) {
	var payload resetPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	svc := services.NewAuthService(config.DB)
	if err := svc.ResetPassword(payload.Token, payload.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONMessage(c, http.StatusOK, "password has been reset")
}

func VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.JSONError(c, http.StatusBadRequest, "token is required")
		return
	}

	svc := services.NewAuthService(config.DB)
	user, err := svc.VerifyEmail(token)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"user": user, "message": "email verified"})
}

func ResendVerification(c *gin.Context) {
	var payload forgotPasswordPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", payload.Email).First(&user).Error; err != nil {
		utils.JSONMessage(c, http.StatusOK, "if the email is registered, a verification link has been sent")
		return
	}
	if user.EmailVerified {
		utils.JSONMessage(c, http.StatusOK, "email is already verified")
		return
	}

	svc := services.NewAuthService(config.DB)
	token, err := svc.CreateVerificationToken(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	go func() {
		if err := utils.SendVerificationEmail(user.Email, user.FullName, token); err != nil {
			log.Printf("warning: verification email failed for %s: %v", user.Email, err)
		}
	}()
	utils.JSONMessage(c, http.StatusOK, "if the email is registered, a verification link has been sent")
}
