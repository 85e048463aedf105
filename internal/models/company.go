package models

import "time"

// DefaultCompanyID is the tenant users fall back to when they carry no
// company association of their own
const DefaultCompanyID = "company-default"

// Company represents a tenant whose users, menus, and orders are scoped
// together
type Company struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `json:"name"`
	Tagline   string    `json:"tagline,omitempty"`
	LogoURL   string    `json:"logoUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Company
func (Company) TableName() string {
	return "companies"
}
