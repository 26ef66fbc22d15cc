package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-booking/models"
	"hotel-booking/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	verificationTokenTTL = 24 * time.Hour
	resetTokenTTL        = 1 * time.Hour
)

type AuthService struct {
	DB *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{DB: db}
}

// Register creates a customer account and mails a verification link.
// Email delivery is fire-and-forget; registration succeeds either way.
func (s *AuthService) Register(email, password, fullName, phone string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || strings.TrimSpace(fullName) == "" {
		return nil, Invalid("email, password and full_name are required")
	}
	if len(password) < 6 {
		return nil, Invalid("password must be at least 6 characters")
	}

	var existing models.User
	if err := s.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, Invalid("email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	var role models.Role
	if err := s.DB.Where("name = ?", models.RoleCustomer).First(&role).Error; err != nil {
		return nil, fmt.Errorf("customer role missing, is the database seeded? %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Email:    email,
		Password: string(hash),
		FullName: strings.TrimSpace(fullName),
		Phone:    strings.TrimSpace(phone),
		RoleID:   role.ID,
		IsActive: true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.Role = role

	if token, err := s.CreateVerificationToken(user.ID); err != nil {
		log.Printf("warning: failed to create verification token for %s: %v", email, err)
	} else {
		go func() {
			if err := utils.SendVerificationEmail(user.Email, user.FullName, token); err != nil {
				log.Printf("warning: verification email failed for %s: %v", user.Email, err)
			}
		}()
	}

	return &user, nil
}

// Authenticate checks credentials and account state. The same message is
// returned for a missing user and a wrong password.
func (s *AuthService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Preload("Role").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Invalid("invalid email or password")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, Invalid("invalid email or password")
	}
	if !user.IsActive {
		return nil, ErrForbidden
	}
	if !user.EmailVerified {
		return nil, Invalid("please verify your email before logging in")
	}
	return &user, nil
}

func (s *AuthService) CreateVerificationToken(userID uint) (string, error) {
	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	row := models.EmailVerification{
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(verificationTokenTTL),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return "", fmt.Errorf("failed to store verification token: %w", err)
	}
	return token, nil
}

// VerifyEmail consumes a verification token and flags the account verified.
func (s *AuthService) VerifyEmail(token string) (*models.User, error) {
	var row models.EmailVerification
	err := s.DB.Where("token = ? AND is_used = ?", token, false).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, Invalid("invalid or expired token")
		}
		return nil, fmt.Errorf("failed to load verification token: %w", err)
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return nil, Invalid("token has expired")
	}

	var user models.User
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, row.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if err := tx.Model(&user).Update("email_verified", true).Error; err != nil {
			return err
		}
		return tx.Model(&row).Update("is_used", true).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	user.EmailVerified = true
	return &user, nil
}

// RequestPasswordReset issues a reset token and mails it. Silently does
// nothing when the email is unknown so account existence doesn't leak.
func (s *AuthService) RequestPasswordReset(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	token, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	row := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().UTC().Add(resetTokenTTL),
	}
	if err := s.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	go func() {
		if err := utils.SendPasswordResetEmail(user.Email, user.FullName, token); err != nil {
			log.Printf("warning: reset email failed for %s: %v", user.Email, err)
		}
	}()
	return nil
}

// ResetPassword consumes a reset token and replaces the password hash.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	if len(newPassword) < 6 {
		return Invalid("password must be at least 6 characters")
	}

	var row models.PasswordReset
	err := s.DB.Where("token = ? AND is_used = ?", token, false).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Invalid("invalid or expired token")
		}
		return fmt.Errorf("failed to load reset token: %w", err)
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return Invalid("token has expired")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", row.UserID).
			Update("password", string(hash)).Error; err != nil {
			return err
		}
		return tx.Model(&row).Update("is_used", true).Error
	})
}

// ChangePassword verifies the old password before replacing it.
func (s *AuthService) ChangePassword(userID uint, oldPassword, newPassword string) error {
	if len(newPassword) < 6 {
		return Invalid("password must be at least 6 characters")
	}

	var user models.User
	if err := s.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return Invalid("current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.DB.Model(&user).Update("password", string(hash)).Error
}
