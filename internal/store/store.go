package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"lunchlink/internal/models"
)

// Backend persists entity writes to the durable owner of record. The
// store treats every write as fire-and-forget: failures are logged and
// local state is not reverted, so the local view may diverge from the
// backend until the next full load reconciles it.
type Backend interface {
	FetchUsers(ctx context.Context) ([]models.User, error)
	FetchCompanies(ctx context.Context) ([]models.Company, error)
	FetchDepartments(ctx context.Context) ([]models.Department, error)
	FetchMasterItems(ctx context.Context) ([]models.MasterFoodItem, error)
	FetchMenus(ctx context.Context) ([]models.DailyMenu, error)
	FetchTemplates(ctx context.Context) ([]models.MenuTemplate, error)
	FetchOrders(ctx context.Context) ([]models.Order, error)
	FetchIssues(ctx context.Context) ([]models.MenuIssue, error)
	FetchComments(ctx context.Context) ([]models.Comment, error)
	FetchAppConfig(ctx context.Context) (*models.AppConfig, error)

	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	SaveCompany(ctx context.Context, company *models.Company) error
	DeleteCompany(ctx context.Context, id string) error
	SaveDepartment(ctx context.Context, department *models.Department) error
	DeleteDepartment(ctx context.Context, id string) error
	SaveMasterItem(ctx context.Context, item *models.MasterFoodItem) error
	DeleteMasterItem(ctx context.Context, id string) error
	SaveMenu(ctx context.Context, menu *models.DailyMenu) error
	DeleteMenu(ctx context.Context, id string) error
	SaveTemplate(ctx context.Context, template *models.MenuTemplate) error
	DeleteTemplate(ctx context.Context, id string) error
	SaveOrder(ctx context.Context, order *models.Order) error
	SaveIssue(ctx context.Context, issue *models.MenuIssue) error
	SaveComment(ctx context.Context, comment *models.Comment) error
	SaveAppConfig(ctx context.Context, config *models.AppConfig) error
}

// Store is the single source of truth for all entity collections and the
// logged-in session. Every state change goes through its mutators: each
// applies an optimistic local update, then writes through to the backend.
type Store struct {
	mu      sync.RWMutex
	backend Backend

	users       map[string]models.User
	companies   map[string]models.Company
	departments map[string]models.Department
	masterItems map[string]models.MasterFoodItem
	menus       map[string]models.DailyMenu
	templates   map[string]models.MenuTemplate
	orders      map[string]models.Order
	issues      map[string]models.MenuIssue
	comments    map[string]models.Comment
	appConfig   models.AppConfig

	currentUser    *models.User
	currentCompany *models.Company

	loading bool
}

// New creates an empty store bound to a backend. Call Load to populate it.
func New(backend Backend) *Store {
	return &Store{
		backend:     backend,
		users:       make(map[string]models.User),
		companies:   make(map[string]models.Company),
		departments: make(map[string]models.Department),
		masterItems: make(map[string]models.MasterFoodItem),
		menus:       make(map[string]models.DailyMenu),
		templates:   make(map[string]models.MenuTemplate),
		orders:      make(map[string]models.Order),
		issues:      make(map[string]models.MenuIssue),
		comments:    make(map[string]models.Comment),
		appConfig:   models.AppConfig{ID: models.AppConfigID},
	}
}

// Load fetches every collection from the backend. Fetches are issued in
// parallel and awaited independently; a failed fetch is logged and leaves
// that collection empty. There is no retry.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	var wg sync.WaitGroup
	fetch := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				log.Printf("store: load %s: %v", name, err)
			}
		}()
	}

	fetch("users", func() error {
		users, err := s.backend.FetchUsers(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, u := range users {
			s.users[u.ID] = u
		}
		return nil
	})
	fetch("companies", func() error {
		companies, err := s.backend.FetchCompanies(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range companies {
			s.companies[c.ID] = c
		}
		return nil
	})
	fetch("departments", func() error {
		departments, err := s.backend.FetchDepartments(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, d := range departments {
			s.departments[d.ID] = d
		}
		return nil
	})
	fetch("master items", func() error {
		items, err := s.backend.FetchMasterItems(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, item := range items {
			s.masterItems[item.ID] = item
		}
		return nil
	})
	fetch("menus", func() error {
		menus, err := s.backend.FetchMenus(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, m := range menus {
			s.menus[m.ID] = m
		}
		return nil
	})
	fetch("templates", func() error {
		templates, err := s.backend.FetchTemplates(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, t := range templates {
			s.templates[t.ID] = t
		}
		return nil
	})
	fetch("orders", func() error {
		orders, err := s.backend.FetchOrders(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, o := range orders {
			s.orders[o.ID] = o
		}
		return nil
	})
	fetch("issues", func() error {
		issues, err := s.backend.FetchIssues(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, i := range issues {
			s.issues[i.ID] = i
		}
		return nil
	})
	fetch("comments", func() error {
		comments, err := s.backend.FetchComments(ctx)
		if err != nil {
			return err
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		for _, c := range comments {
			s.comments[c.ID] = c
		}
		return nil
	})
	fetch("app config", func() error {
		config, err := s.backend.FetchAppConfig(ctx)
		if err != nil {
			return err
		}
		if config == nil {
			return nil
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		s.appConfig = *config
		return nil
	})

	wg.Wait()

	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Loading reports whether the initial load is still in flight
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Login looks up a user by username or email, case-insensitively after
// trimming. It fails when no user matches or the account is locked. On
// success the user's company is resolved (falling back to the default
// company when the user has none) and the session user is set. The
// identifier alone authenticates; concurrent calls are last-write-wins.
func (s *Store) Login(identifier string) (*models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if !u.MatchesIdentifier(identifier) {
			continue
		}
		if u.IsLocked {
			return nil, false
		}
		user := u
		companyID := user.CompanyID
		if companyID == "" {
			companyID = models.DefaultCompanyID
		}
		company, ok := s.companies[companyID]
		if !ok {
			company = s.companies[models.DefaultCompanyID]
		}
		s.currentUser = &user
		s.currentCompany = &company
		return &user, true
	}
	return nil, false
}

// Logout clears the session user and company, and drops the locally
// cached menus and orders. The cache is shared by the whole process, so
// one logout blanks menus and orders for every request until the next
// Load. Other collections survive.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentUser = nil
	s.currentCompany = nil
	s.menus = make(map[string]models.DailyMenu)
	s.orders = make(map[string]models.Order)
}

// LoginAsGuest synthesizes an ephemeral guest user bound to the chosen
// company, bypassing the login lookup entirely. The guest is never
// persisted.
func (s *Store) LoginAsGuest(companyID, guestName, hostContact string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	guest := models.User{
		ID:          newID("guest"),
		Name:        guestName,
		Role:        models.RoleGuest,
		CompanyID:   companyID,
		GuestName:   guestName,
		HostContact: hostContact,
		CreatedAt:   time.Now(),
	}
	company := s.companies[companyID]
	s.currentUser = &guest
	s.currentCompany = &company
	return &guest
}

// CurrentUser returns the session user, if any
func (s *Store) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentUser == nil {
		return nil
	}
	user := *s.currentUser
	return &user
}

// CurrentCompany returns the session company, if any
func (s *Store) CurrentCompany() *models.Company {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentCompany == nil {
		return nil
	}
	company := *s.currentCompany
	return &company
}

// UserByID returns a user by id
func (s *Store) UserByID(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

// CollectionSizes reports how many records each cached collection holds
func (s *Store) CollectionSizes() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]int{
		"users":        len(s.users),
		"companies":    len(s.companies),
		"departments":  len(s.departments),
		"master_items": len(s.masterItems),
		"menus":        len(s.menus),
		"templates":    len(s.templates),
		"orders":       len(s.orders),
		"issues":       len(s.issues),
		"comments":     len(s.comments),
	}
}

// newID derives an identifier from the current time, matching how the
// original data layer assigned ids to copied menus
func newID(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// logWriteErr records a failed write-through. Callers never see the
// error; the optimistic local update stands.
func logWriteErr(entity, id string, err error) {
	if err != nil {
		log.Printf("store: persist %s %s: %v", entity, id, err)
	}
}
