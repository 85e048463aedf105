package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL dialect
	_ "github.com/jinzhu/gorm/dialects/sqlite"   // SQLite dialect

	"lunchlink/internal/models"
)

var db *gorm.DB

// InitDB opens the database connection. Dialect is "sqlite3" (default)
// or "postgres"; dsn is the file path or connection string.
func InitDB(dialect, dsn string) error {
	var err error
	db, err = gorm.Open(dialect, dsn)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.DB().SetMaxIdleConns(10)
	db.DB().SetMaxOpenConns(100)
	db.DB().SetConnMaxLifetime(time.Hour)

	return nil
}

// GetDB returns the database instance
func GetDB() *gorm.DB {
	return db
}

// CloseDB closes the database connection
func CloseDB() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// Migrate creates and updates all required tables
func Migrate() error {
	return db.AutoMigrate(
		&models.User{},
		&models.Company{},
		&models.Department{},
		&models.MasterFoodItem{},
		&models.DailyMenu{},
		&models.MenuTemplate{},
		&models.Order{},
		&models.MenuIssue{},
		&models.Comment{},
		&models.AppConfig{},
	).Error
}
