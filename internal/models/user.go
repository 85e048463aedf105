package models

import (
	"strings"
	"time"
)

// Role represents a user's role in the application
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleKitchen   Role = "kitchen"
	RoleAdmin     Role = "admin"
	RoleReception Role = "reception"
	RoleDelivery  Role = "delivery"
	RoleGuest     Role = "guest"
)

// ValidRoles lists every role the application dispatches on
var ValidRoles = []Role{
	RoleEmployee,
	RoleKitchen,
	RoleAdmin,
	RoleReception,
	RoleDelivery,
	RoleGuest,
}

// IsValid reports whether the role is one of the known roles
func (r Role) IsValid() bool {
	for _, role := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents an account that can log in and place orders
type User struct {
	ID           string `gorm:"primary_key" json:"id"`
	Name         string `json:"name"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	DepartmentID string `json:"departmentId,omitempty"`
	CompanyID    string `json:"companyId,omitempty"`
	IsLocked     bool   `json:"isLocked"`
	// Guest-only fields, populated for the ephemeral users the guest
	// portal synthesizes
	GuestName   string    `json:"guestName,omitempty"`
	HostContact string    `json:"hostContact,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TableName sets the table name for User
func (User) TableName() string {
	return "users"
}

// MatchesIdentifier reports whether the identifier matches the user's
// username or email, case-insensitively after trimming whitespace
func (u *User) MatchesIdentifier(identifier string) bool {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return false
	}
	return strings.ToLower(u.Username) == id || strings.ToLower(u.Email) == id
}

// IsGuest reports whether the user is an ephemeral guest
func (u *User) IsGuest() bool {
	return u.Role == RoleGuest
}

// Department is a simple name record used for scoping menus and users
type Department struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Name      string    `json:"name"`
	CompanyID string    `json:"companyId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName sets the table name for Department
func (Department) TableName() string {
	return "departments"
}
