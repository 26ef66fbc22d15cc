package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-booking/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "password")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_booking")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.EmailVerification{},
		&models.PasswordReset{},
		&models.Hotel{},
		&models.RoomType{},
		&models.Room{},
		&models.Booking{},
		&models.BookingDetail{},
		&models.Payment{},
		&models.Review{},
		&models.Promotion{},
		&models.DiscountCode{},
		&models.Notification{},
		&models.SearchHistory{},
		&models.Favorite{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase ensures the role table and a default admin exist. Safe to
// run on every boot.
func SeedDatabase() {
	desiredRoles := []models.Role{
		{Name: models.RoleCustomer, Description: "Books and reviews hotels"},
		{Name: models.RoleHotelOwner, Description: "Manages owned hotels, rooms and bookings"},
		{Name: models.RoleAdmin, Description: "Full system access"},
	}

	for i := range desiredRoles {
		role := desiredRoles[i]
		var existing models.Role
		err := DB.Where("name = ?", role.Name).First(&existing).Error
		if err == nil && existing.ID != 0 {
			continue
		}
		if err := DB.Create(&role).Error; err != nil {
			log.Printf("warning: failed to create role %s: %v", role.Name, err)
		}
	}
	log.Println("Roles ensured")

	var rtCount int64
	DB.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Standard", Description: "Standard Room", MaxGuests: 2},
			{Name: "Superior", Description: "Superior Room", MaxGuests: 3},
			{Name: "Deluxe", Description: "Deluxe Room", MaxGuests: 4},
			{Name: "Family", Description: "Family Room", MaxGuests: 5},
		}
		DB.Create(&roomTypes)
		log.Println("RoomTypes seeded")
	}

	var adminCount int64
	DB.Model(&models.User{}).
		Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", models.RoleAdmin).
		Count(&adminCount)
	if adminCount > 0 {
		return
	}

	var adminRole models.Role
	if err := DB.Where("name = ?", models.RoleAdmin).First(&adminRole).Error; err != nil {
		log.Printf("warning: admin role missing, skipping default admin seed: %v", err)
		return
	}

	password := envOrDefault("ADMIN_PASSWORD", "admin123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash default admin password: %v", err)
		return
	}

	admin := models.User{
		Email:         envOrDefault("ADMIN_EMAIL", "admin@hotel.local"),
		Password:      string(hash),
		FullName:      "Admin User",
		RoleID:        adminRole.ID,
		IsActive:      true,
		EmailVerified: true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		log.Printf("warning: failed to create default admin: %v", err)
		return
	}
	log.Println("Default admin seeded")
}
