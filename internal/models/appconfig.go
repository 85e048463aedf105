package models

import "time"

// GuestAccessMode controls whether the guest portal accepts orders
type GuestAccessMode string

const (
	GuestAccessOpen     GuestAccessMode = "open"     // passcode required
	GuestAccessDisabled GuestAccessMode = "disabled" // portal closed
)

// AppConfigID is the primary key of the singleton settings row
const AppConfigID = "app-config"

// AppConfig holds tenant-wide settings as a singleton row
type AppConfig struct {
	ID              string          `gorm:"primary_key" json:"id"`
	CompanyName     string          `json:"companyName"`
	Tagline         string          `json:"tagline,omitempty"`
	LogoURL         string          `json:"logoUrl,omitempty"`
	OrderCutoffTime string          `json:"orderCutoffTime"` // HH:MM, 24h
	GuestAccessMode GuestAccessMode `json:"guestAccessMode"`
	GuestPasscode   string          `json:"guestPasscode"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TableName sets the table name for AppConfig
func (AppConfig) TableName() string {
	return "app_config"
}
