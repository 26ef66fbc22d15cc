package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Email    string `gorm:"uniqueIndex;size:150" json:"email"`
	Password string `gorm:"size:255" json:"-"` // bcrypt hash, never returned in JSON
	FullName string `gorm:"size:255" json:"full_name"`
	Phone    string `gorm:"size:30" json:"phone,omitempty"`
	Address  string `gorm:"size:255" json:"address,omitempty"`
	IDCard   string `gorm:"column:id_card;size:30" json:"id_card,omitempty"`
	Avatar   string `gorm:"size:255" json:"avatar,omitempty"`

	RoleID        uint `gorm:"index" json:"role_id"`
	IsActive      bool `gorm:"default:true" json:"is_active"`
	EmailVerified bool `gorm:"default:false" json:"email_verified"`

	Role Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// EmailVerification is a single-use token mailed out after registration.
type EmailVerification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:128" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}

// PasswordReset mirrors EmailVerification but with a shorter lifetime.
type PasswordReset struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;size:128" json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	IsUsed    bool      `gorm:"default:false" json:"is_used"`
	CreatedAt time.Time `json:"created_at"`
}
