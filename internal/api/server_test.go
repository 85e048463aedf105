package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunchlink/internal/live"
	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
	"lunchlink/internal/store"
	"lunchlink/internal/suggest"
)

// nullBackend satisfies the store backend with no-op persistence so
// handler tests exercise the HTTP surface against in-memory state only
type nullBackend struct{}

func (nullBackend) FetchUsers(context.Context) ([]models.User, error)         { return nil, nil }
func (nullBackend) FetchCompanies(context.Context) ([]models.Company, error)  { return nil, nil }
func (nullBackend) FetchDepartments(context.Context) ([]models.Department, error) {
	return nil, nil
}
func (nullBackend) FetchMasterItems(context.Context) ([]models.MasterFoodItem, error) {
	return nil, nil
}
func (nullBackend) FetchMenus(context.Context) ([]models.DailyMenu, error)       { return nil, nil }
func (nullBackend) FetchTemplates(context.Context) ([]models.MenuTemplate, error) { return nil, nil }
func (nullBackend) FetchOrders(context.Context) ([]models.Order, error)          { return nil, nil }
func (nullBackend) FetchIssues(context.Context) ([]models.MenuIssue, error)      { return nil, nil }
func (nullBackend) FetchComments(context.Context) ([]models.Comment, error)      { return nil, nil }
func (nullBackend) FetchAppConfig(context.Context) (*models.AppConfig, error)    { return nil, nil }

func (nullBackend) SaveUser(context.Context, *models.User) error                { return nil }
func (nullBackend) DeleteUser(context.Context, string) error                    { return nil }
func (nullBackend) SaveCompany(context.Context, *models.Company) error          { return nil }
func (nullBackend) DeleteCompany(context.Context, string) error                 { return nil }
func (nullBackend) SaveDepartment(context.Context, *models.Department) error    { return nil }
func (nullBackend) DeleteDepartment(context.Context, string) error              { return nil }
func (nullBackend) SaveMasterItem(context.Context, *models.MasterFoodItem) error { return nil }
func (nullBackend) DeleteMasterItem(context.Context, string) error              { return nil }
func (nullBackend) SaveMenu(context.Context, *models.DailyMenu) error           { return nil }
func (nullBackend) DeleteMenu(context.Context, string) error                    { return nil }
func (nullBackend) SaveTemplate(context.Context, *models.MenuTemplate) error    { return nil }
func (nullBackend) DeleteTemplate(context.Context, string) error                { return nil }
func (nullBackend) SaveOrder(context.Context, *models.Order) error              { return nil }
func (nullBackend) SaveIssue(context.Context, *models.MenuIssue) error          { return nil }
func (nullBackend) SaveComment(context.Context, *models.Comment) error          { return nil }
func (nullBackend) SaveAppConfig(context.Context, *models.AppConfig) error      { return nil }

// newTestAPI builds a server over a seeded in-memory store:
// one company, one employee, one admin, one locked account, and a guest
// passcode. Ordering stays open via a 23:59 cutoff.
func newTestAPI(t *testing.T) *API {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.New(nullBackend{})
	ctx := context.Background()

	s.SaveCompany(ctx, models.Company{ID: models.DefaultCompanyID, Name: "LunchLink"})
	s.SaveUser(ctx, models.User{
		ID: "user-jordan", Name: "Jordan Lee", Username: "jordan",
		Email: "jordan@example.com", Role: models.RoleEmployee,
		CompanyID: models.DefaultCompanyID,
	})
	s.SaveUser(ctx, models.User{
		ID: "user-admin", Name: "Admin", Username: "admin",
		Role: models.RoleAdmin, CompanyID: models.DefaultCompanyID,
	})
	s.SaveUser(ctx, models.User{
		ID: "user-casey", Name: "Casey", Username: "casey",
		Role: models.RoleEmployee, IsLocked: true,
		CompanyID: models.DefaultCompanyID,
	})
	s.SaveAppConfig(ctx, models.AppConfig{
		OrderCutoffTime: "23:59",
		GuestAccessMode: models.GuestAccessOpen,
		GuestPasscode:   "GUEST-1234",
	})

	sg, err := suggest.New(suggest.Options{})
	require.NoError(t, err)

	hub := live.NewHub()
	go hub.Run()

	return New(Options{
		Store:     s,
		Suggest:   sg,
		Hub:       hub,
		Monitor:   monitoring.NewMonitor(),
		JWTSecret: "test-secret",
	})
}

func seedTodayMenu(t *testing.T, a *API) models.DailyMenu {
	t.Helper()
	m := models.DailyMenu{
		Date:      time.Now().Format(models.MenuDateFormat),
		CompanyID: models.DefaultCompanyID,
	}
	err := m.SetItems([]models.MenuItem{
		{ID: "item-1", Name: "Lentil Soup", Category: models.CategorySoup, Calories: 300, DietaryTags: []string{"vegan"}},
		{ID: "item-2", Name: "Chicken Bowl", Category: models.CategoryMain, Calories: 650, DietaryTags: []string{"gluten-free"}},
	})
	require.NoError(t, err)
	return a.Store.SaveMenu(context.Background(), m)
}

func doJSON(a *API, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)
	return w
}

func loginAs(t *testing.T, a *API, identifier string) string {
	t.Helper()
	w := doJSON(a, "POST", "/api/v1/auth/login", "", gin.H{"identifier": identifier})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestLoginByIdentifier(t *testing.T) {
	a := newTestAPI(t)

	// username, email, and padded mixed-case forms all resolve
	for _, identifier := range []string{"jordan", "jordan@example.com", "  JORDAN  "} {
		w := doJSON(a, "POST", "/api/v1/auth/login", "", gin.H{"identifier": identifier})
		assert.Equal(t, http.StatusOK, w.Code, identifier)
	}

	w := doJSON(a, "POST", "/api/v1/auth/login", "", gin.H{"identifier": "nobody"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// locked accounts are rejected even with a matching identifier
	w = doJSON(a, "POST", "/api/v1/auth/login", "", gin.H{"identifier": "casey"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoleGating(t *testing.T) {
	a := newTestAPI(t)
	employee := loginAs(t, a, "jordan")
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "GET", "/api/v1/admin/users", employee, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(a, "GET", "/api/v1/admin/users", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(a, "GET", "/api/v1/week", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrder(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)
	token := loginAs(t, a, "jordan")
	today := time.Now().Format(models.MenuDateFormat)

	w := doJSON(a, "POST", "/api/v1/orders", token, gin.H{
		"menuDate": today,
		"itemIds":  []string{"item-1", "item-2", "missing"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order   models.Order `json:"order"`
		Summary struct {
			ItemCount     int      `json:"itemCount"`
			TotalCalories int      `json:"totalCalories"`
			DietaryTags   []string `json:"dietaryTags"`
		} `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.OrderStatusPending, resp.Order.Status)
	// unknown ids are skipped from the summary but kept on the order
	assert.Equal(t, 2, resp.Summary.ItemCount)
	assert.Equal(t, 950, resp.Summary.TotalCalories)
	assert.Equal(t, []string{"vegan", "gluten-free"}, resp.Summary.DietaryTags)

	w = doJSON(a, "POST", "/api/v1/orders", token, gin.H{
		"menuDate": "2099-01-01",
		"itemIds":  []string{"item-1"},
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(a, "POST", "/api/v1/orders", token, gin.H{
		"menuDate": today,
		"itemIds":  []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderAfterCutoff(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)
	token := loginAs(t, a, "jordan")

	// a midnight cutoff closes today's ordering for the whole day
	config := a.Store.AppConfig()
	config.OrderCutoffTime = "00:00"
	a.Store.SaveAppConfig(context.Background(), config)

	w := doJSON(a, "POST", "/api/v1/orders", token, gin.H{
		"menuDate": time.Now().Format(models.MenuDateFormat),
		"itemIds":  []string{"item-1"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGuestPortalFlow(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)

	// wrong passcode blocks the AUTH step
	w := doJSON(a, "POST", "/api/v1/auth/guest", "", gin.H{
		"companyId":   models.DefaultCompanyID,
		"guestName":   "Visitor",
		"hostContact": "host@example.com",
		"passcode":    "GUEST-0000",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(a, "POST", "/api/v1/auth/guest", "", gin.H{
		"companyId":   models.DefaultCompanyID,
		"guestName":   "Visitor",
		"hostContact": "host@example.com",
		"passcode":    "GUEST-1234",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))

	w = doJSON(a, "GET", "/api/v1/guest/menu", auth.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(a, "POST", "/api/v1/guest/orders", auth.Token, gin.H{
		"itemIds": []string{"item-2"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Order.IsGuestOrder())
	assert.Equal(t, "Visitor", resp.Order.GuestName)

	// guest tokens stay out of the employee surface
	w = doJSON(a, "GET", "/api/v1/week", auth.Token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestGuestAuthDisabled(t *testing.T) {
	a := newTestAPI(t)

	config := a.Store.AppConfig()
	config.GuestAccessMode = models.GuestAccessDisabled
	a.Store.SaveAppConfig(context.Background(), config)

	w := doJSON(a, "POST", "/api/v1/auth/guest", "", gin.H{
		"companyId":   models.DefaultCompanyID,
		"guestName":   "Visitor",
		"hostContact": "host@example.com",
		"passcode":    "GUEST-1234",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRotateGuestCodeInvalidatesOldCode(t *testing.T) {
	a := newTestAPI(t)
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "POST", "/api/v1/reception/guest-code/rotate", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Passcode string `json:"passcode"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Regexp(t, `^GUEST-\d{4}$`, resp.Passcode)

	// the distributed code from before the rotation stops working
	w = doJSON(a, "POST", "/api/v1/auth/guest", "", gin.H{
		"companyId":   models.DefaultCompanyID,
		"guestName":   "Visitor",
		"hostContact": "host@example.com",
		"passcode":    "GUEST-1234",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOrderStatusTransitions(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)
	employee := loginAs(t, a, "jordan")
	admin := loginAs(t, a, "admin")
	today := time.Now().Format(models.MenuDateFormat)

	w := doJSON(a, "POST", "/api/v1/orders", employee, gin.H{
		"menuDate": today,
		"itemIds":  []string{"item-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var placed struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &placed))

	w = doJSON(a, "PUT", "/api/v1/kitchen/orders/"+placed.Order.ID+"/status", admin, gin.H{"status": "confirmed"})
	assert.Equal(t, http.StatusOK, w.Code)

	// backward transitions are rejected
	w = doJSON(a, "PUT", "/api/v1/kitchen/orders/"+placed.Order.ID+"/status", admin, gin.H{"status": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(a, "PUT", "/api/v1/kitchen/orders/"+placed.Order.ID+"/status", admin, gin.H{"status": "eaten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeliveryGroups(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)
	employee := loginAs(t, a, "jordan")
	admin := loginAs(t, a, "admin")
	today := time.Now().Format(models.MenuDateFormat)

	w := doJSON(a, "POST", "/api/v1/orders", employee, gin.H{
		"menuDate": today,
		"itemIds":  []string{"item-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(a, "POST", "/api/v1/auth/guest", "", gin.H{
		"companyId":   models.DefaultCompanyID,
		"guestName":   "Visitor",
		"hostContact": "host@example.com",
		"passcode":    "GUEST-1234",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var auth struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))
	w = doJSON(a, "POST", "/api/v1/guest/orders", auth.Token, gin.H{"itemIds": []string{"item-2"}})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(a, "GET", "/api/v1/delivery/groups", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Groups []struct {
			Label  string         `json:"label"`
			Orders []models.Order `json:"orders"`
		} `json:"groups"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Groups, 2)
	assert.Equal(t, "General", resp.Groups[0].Label)
	assert.Len(t, resp.Groups[0].Orders, 1)
	assert.Equal(t, "Guest: Visitor", resp.Groups[1].Label)
}

func TestComposeGuestEmail(t *testing.T) {
	a := newTestAPI(t)
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "POST", "/api/v1/reception/guest-email", admin, gin.H{
		"recipients": []string{"visitor@example.com"},
		"guestName":  "Visitor",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Mailto string `json:"mailto"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Mailto, "mailto:visitor@example.com")
	assert.Contains(t, resp.Mailto, "GUEST-1234")

	w = doJSON(a, "POST", "/api/v1/reception/guest-email", admin, gin.H{"recipients": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackFlow(t *testing.T) {
	a := newTestAPI(t)
	employee := loginAs(t, a, "jordan")
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "POST", "/api/v1/issues", employee, gin.H{
		"date": "2026-08-28",
		"text": "The soup was cold",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var issue models.MenuIssue
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &issue))
	assert.Equal(t, models.IssueStatusOpen, issue.Status)

	w = doJSON(a, "POST", "/api/v1/issues", employee, gin.H{"date": "2026-08-28", "text": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(a, "PUT", "/api/v1/kitchen/issues/"+issue.ID, admin, gin.H{
		"status":       "resolved",
		"chefResponse": "We will keep it warmer",
		"isRead":       true,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(a, "POST", "/api/v1/comments", employee, gin.H{"text": "More vegan options please"})
	require.Equal(t, http.StatusCreated, w.Code)
	var comment models.Comment
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))

	w = doJSON(a, "POST", "/api/v1/comments/"+comment.ID+"/responses", admin, gin.H{"text": "Noted"})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &comment))
	require.Len(t, comment.Responses, 1)
	assert.Equal(t, "Noted", comment.Responses[0].Text)

	// without an AI credential summarization degrades to a placeholder
	w = doJSON(a, "POST", "/api/v1/kitchen/comments/summarize", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.NotEmpty(t, summary.Summary)
}

func TestMenuReplaceInPlace(t *testing.T) {
	a := newTestAPI(t)
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "POST", "/api/v1/kitchen/menus", admin, gin.H{
		"date":  "2026-09-01",
		"items": []gin.H{{"id": "item-1", "name": "Soup", "category": "soup", "calories": 300}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var first models.DailyMenu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &first))

	w = doJSON(a, "POST", "/api/v1/kitchen/menus", admin, gin.H{
		"date":  "2026-09-01",
		"items": []gin.H{{"id": "item-2", "name": "Bowl", "category": "main", "calories": 650}},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var second models.DailyMenu
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &second))

	// the occupied date keeps one menu with the original identity
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, second.Items, 1)
	assert.Equal(t, "Bowl", second.Items[0].Name)

	w = doJSON(a, "POST", "/api/v1/kitchen/menus", admin, gin.H{"date": "not-a-date"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestItemsDegraded(t *testing.T) {
	a := newTestAPI(t)
	admin := loginAs(t, a, "admin")

	w := doJSON(a, "POST", "/api/v1/kitchen/items/suggest", admin, gin.H{"theme": "italian", "count": 3})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Items []models.MenuItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestAdminMetricsTrackOperations(t *testing.T) {
	a := newTestAPI(t)
	seedTodayMenu(t, a)

	w := doJSON(a, "POST", "/api/v1/auth/login", "", gin.H{"identifier": "nobody"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	admin := loginAs(t, a, "admin")

	w = doJSON(a, "POST", "/api/v1/orders", admin, gin.H{
		"menuDate": time.Now().Format(models.MenuDateFormat),
		"itemIds":  []string{"item-1"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(a, "GET", "/api/v1/admin/metrics", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var metrics map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	assert.EqualValues(t, 1, metrics["login_failure"])
	assert.EqualValues(t, 1, metrics["login_success"])
	assert.EqualValues(t, 1, metrics["orders_placed"])
	assert.EqualValues(t, 3, metrics["cached_users"])
	assert.EqualValues(t, 1, metrics["cached_menus"])
	assert.Contains(t, metrics, "uptime_seconds")
}

func TestHealth(t *testing.T) {
	a := newTestAPI(t)

	w := doJSON(a, "GET", "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}
