package store

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"lunchlink/internal/models"
)

// Users returns every cached user
func (s *Store) Users() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	return users
}

// SaveUser upserts a user record
func (s *Store) SaveUser(ctx context.Context, user models.User) models.User {
	s.mu.Lock()
	if user.ID == "" {
		user.ID = newID("user")
		user.CreatedAt = time.Now()
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = user
	s.mu.Unlock()

	logWriteErr("user", user.ID, s.backend.SaveUser(ctx, &user))
	return user
}

// DeleteUser removes a user record
func (s *Store) DeleteUser(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.users, id)
	s.mu.Unlock()

	logWriteErr("user", id, s.backend.DeleteUser(ctx, id))
}

// Companies returns every cached company
func (s *Store) Companies() []models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	companies := make([]models.Company, 0, len(s.companies))
	for _, c := range s.companies {
		companies = append(companies, c)
	}
	return companies
}

// CompanyByID returns a company by id
func (s *Store) CompanyByID(id string) (models.Company, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.companies[id]
	return c, ok
}

// SaveCompany upserts a tenant record
func (s *Store) SaveCompany(ctx context.Context, company models.Company) models.Company {
	s.mu.Lock()
	if company.ID == "" {
		company.ID = newID("company")
		company.CreatedAt = time.Now()
	}
	company.UpdatedAt = time.Now()
	s.companies[company.ID] = company
	s.mu.Unlock()

	logWriteErr("company", company.ID, s.backend.SaveCompany(ctx, &company))
	return company
}

// DeleteCompany removes a tenant record
func (s *Store) DeleteCompany(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.companies, id)
	s.mu.Unlock()

	logWriteErr("company", id, s.backend.DeleteCompany(ctx, id))
}

// Departments returns every cached department
func (s *Store) Departments() []models.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	departments := make([]models.Department, 0, len(s.departments))
	for _, d := range s.departments {
		departments = append(departments, d)
	}
	return departments
}

// DepartmentByID returns a department by id
func (s *Store) DepartmentByID(id string) (models.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.departments[id]
	return d, ok
}

// SaveDepartment upserts a department record
func (s *Store) SaveDepartment(ctx context.Context, department models.Department) models.Department {
	s.mu.Lock()
	if department.ID == "" {
		department.ID = newID("department")
		department.CreatedAt = time.Now()
	}
	department.UpdatedAt = time.Now()
	s.departments[department.ID] = department
	s.mu.Unlock()

	logWriteErr("department", department.ID, s.backend.SaveDepartment(ctx, &department))
	return department
}

// DeleteDepartment removes a department record
func (s *Store) DeleteDepartment(ctx context.Context, id string) {
	s.mu.Lock()
	delete(s.departments, id)
	s.mu.Unlock()

	logWriteErr("department", id, s.backend.DeleteDepartment(ctx, id))
}

// AppConfig returns the tenant-wide settings
func (s *Store) AppConfig() models.AppConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appConfig
}

// SaveAppConfig replaces the singleton settings row
func (s *Store) SaveAppConfig(ctx context.Context, config models.AppConfig) models.AppConfig {
	s.mu.Lock()
	config.ID = models.AppConfigID
	config.UpdatedAt = time.Now()
	s.appConfig = config
	s.mu.Unlock()

	logWriteErr("app config", config.ID, s.backend.SaveAppConfig(ctx, &config))
	return config
}

// GenerateNewGuestCode produces a new guest passcode in the form
// GUEST-<4 digits> and overwrites the active code immediately; any code
// distributed earlier stops working. The code is not a cryptographic
// secret, it only gates the guest portal.
func (s *Store) GenerateNewGuestCode(ctx context.Context) string {
	code := fmt.Sprintf("GUEST-%04d", rand.Intn(10000))

	s.mu.Lock()
	s.appConfig.GuestPasscode = code
	s.appConfig.UpdatedAt = time.Now()
	config := s.appConfig
	s.mu.Unlock()

	logWriteErr("app config", config.ID, s.backend.SaveAppConfig(ctx, &config))
	return code
}

// GuestPasscodeMatches reports whether the presented passcode exactly
// equals the tenant's current code
func (s *Store) GuestPasscodeMatches(passcode string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.appConfig.GuestPasscode != "" && s.appConfig.GuestPasscode == passcode
}
