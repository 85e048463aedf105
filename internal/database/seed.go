package database

import (
	"log"
	"time"

	"github.com/jinzhu/gorm"

	"lunchlink/internal/models"
)

// Seed ensures essential data exists: the default company every user
// without a tenant falls back to, the singleton app config row, and a
// bootstrap admin account so a fresh install can be managed at all.
func Seed() {
	seedDefaultCompany(db)
	seedAppConfig(db)
	seedAdminUser(db)
}

func seedDefaultCompany(db *gorm.DB) {
	var count int64
	db.Model(&models.Company{}).Where("id = ?", models.DefaultCompanyID).Count(&count)
	if count == 0 {
		company := models.Company{
			ID:      models.DefaultCompanyID,
			Name:    "LunchLink",
			Tagline: "Lunch, sorted.",
		}
		if err := db.Create(&company).Error; err != nil {
			log.Printf("seed default company: %v", err)
		}
	}
}

func seedAppConfig(db *gorm.DB) {
	var count int64
	db.Model(&models.AppConfig{}).Count(&count)
	if count == 0 {
		config := models.AppConfig{
			ID:              models.AppConfigID,
			CompanyName:     "LunchLink",
			OrderCutoffTime: "10:30",
			GuestAccessMode: models.GuestAccessOpen,
			GuestPasscode:   "GUEST-0000",
		}
		if err := db.Create(&config).Error; err != nil {
			log.Printf("seed app config: %v", err)
		}
	}
}

func seedAdminUser(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count)
	if count == 0 {
		admin := models.User{
			ID:        "user-admin",
			Name:      "Administrator",
			Username:  "admin",
			Email:     "admin@lunchlink.local",
			Role:      models.RoleAdmin,
			CompanyID: models.DefaultCompanyID,
			CreatedAt: time.Now(),
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("seed admin user: %v", err)
		}
	}
}
