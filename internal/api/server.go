package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/live"
	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
	"lunchlink/internal/store"
	"lunchlink/internal/suggest"
)

// API represents the HTTP surface of the lunch-ordering service
type API struct {
	Router  *gin.Engine
	Store   *store.Store
	Suggest *suggest.Client
	Hub     *live.Hub
	Monitor *monitoring.Monitor

	jwtSecret []byte
	tokenTTL  int // hours
}

// Options configures the API server
type Options struct {
	Store     *store.Store
	Suggest   *suggest.Client
	Hub       *live.Hub
	Monitor   *monitoring.Monitor
	JWTSecret string
	TokenTTL  int
}

// New creates the API server and wires all routes
func New(opts Options) *API {
	api := &API{
		Router:    gin.Default(),
		Store:     opts.Store,
		Suggest:   opts.Suggest,
		Hub:       opts.Hub,
		Monitor:   opts.Monitor,
		jwtSecret: []byte(opts.JWTSecret),
		tokenTTL:  opts.TokenTTL,
	}
	if api.tokenTTL <= 0 {
		api.tokenTTL = 12
	}

	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *API) setupRoutes() {
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "loading": a.Store.Loading()})
	})
	a.Router.GET("/ws", func(c *gin.Context) {
		live.ServeWS(a.Hub, c)
	})

	v1 := a.Router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/login", a.HandleLogin)
		auth.POST("/guest", a.HandleGuestAuth)
		auth.POST("/logout", a.AuthRequired(), a.HandleLogout)
	}

	// any logged-in role, guests excluded
	employee := v1.Group("", a.AuthRequired(), a.RequireRoles(
		models.RoleEmployee, models.RoleKitchen, models.RoleAdmin,
		models.RoleReception, models.RoleDelivery,
	))
	{
		employee.GET("/week", a.HandleWeekView)
		employee.GET("/menus/:date", a.HandleGetMenu)
		employee.GET("/orders", a.HandleListOrders)
		employee.POST("/orders", a.HandlePlaceOrder)
		employee.POST("/orders/summary", a.HandleOrderSummary)
		employee.POST("/issues", a.HandleReportIssue)
		employee.GET("/comments", a.HandleListComments)
		employee.POST("/comments", a.HandleAddComment)
		employee.POST("/comments/:id/responses", a.HandleRespondToComment)
	}

	kitchen := v1.Group("/kitchen", a.AuthRequired(), a.RequireRoles(models.RoleKitchen, models.RoleAdmin))
	{
		kitchen.GET("/items", a.HandleListMasterItems)
		kitchen.POST("/items", a.HandleSaveMasterItem)
		kitchen.PUT("/items/:id", a.HandleUpdateMasterItem)
		kitchen.DELETE("/items/:id", a.HandleDeleteMasterItem)
		kitchen.POST("/items/suggest", a.HandleSuggestItems)

		kitchen.GET("/menus", a.HandleListMenus)
		kitchen.POST("/menus", a.HandleSaveMenu)
		kitchen.DELETE("/menus/:id", a.HandleDeleteMenu)
		kitchen.POST("/menus/copy", a.HandleCopyMenu)

		kitchen.GET("/templates", a.HandleListTemplates)
		kitchen.POST("/templates", a.HandleSaveTemplate)
		kitchen.DELETE("/templates/:id", a.HandleDeleteTemplate)
		kitchen.POST("/templates/:id/apply", a.HandleApplyTemplate)

		kitchen.PUT("/orders/:id/status", a.HandleUpdateOrderStatus)

		kitchen.GET("/issues", a.HandleListIssues)
		kitchen.PUT("/issues/:id", a.HandleUpdateIssue)

		kitchen.POST("/comments/summarize", a.HandleSummarizeFeedback)
	}

	admin := v1.Group("/admin", a.AuthRequired(), a.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/users", a.HandleListUsers)
		admin.POST("/users", a.HandleSaveUser)
		admin.PUT("/users/:id", a.HandleUpdateUser)
		admin.DELETE("/users/:id", a.HandleDeleteUser)

		admin.GET("/departments", a.HandleListDepartments)
		admin.POST("/departments", a.HandleSaveDepartment)
		admin.DELETE("/departments/:id", a.HandleDeleteDepartment)

		admin.GET("/companies", a.HandleListCompanies)
		admin.POST("/companies", a.HandleSaveCompany)
		admin.DELETE("/companies/:id", a.HandleDeleteCompany)

		admin.GET("/config", a.HandleGetConfig)
		admin.PUT("/config", a.HandleUpdateConfig)

		admin.GET("/metrics", a.HandleInternalMetrics)
	}

	reception := v1.Group("/reception", a.AuthRequired(), a.RequireRoles(models.RoleReception, models.RoleAdmin))
	{
		reception.GET("/guest-code", a.HandleGetGuestCode)
		reception.POST("/guest-code/rotate", a.HandleRotateGuestCode)
		reception.POST("/guest-email", a.HandleComposeGuestEmail)
	}

	delivery := v1.Group("/delivery", a.AuthRequired(), a.RequireRoles(models.RoleDelivery, models.RoleAdmin))
	{
		delivery.GET("/groups", a.HandleDeliveryGroups)
		delivery.POST("/deliver", a.HandleDeliverBatch)
	}

	guest := v1.Group("/guest", a.AuthRequired(), a.RequireRoles(models.RoleGuest))
	{
		guest.GET("/menu", a.HandleGuestMenu)
		guest.POST("/orders", a.HandleGuestOrder)
	}
}

// HandleInternalMetrics returns the in-process metrics map with the
// current cached-collection sizes folded in
func (a *API) HandleInternalMetrics(c *gin.Context) {
	for name, size := range a.Store.CollectionSizes() {
		a.Monitor.RecordMetric("cached_"+name, size)
	}
	c.JSON(http.StatusOK, a.Monitor.GetMetrics())
}
