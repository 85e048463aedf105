package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/menu"
	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

// weekDay is one slot of the navigable week strip
type weekDay struct {
	Date           string            `json:"date"`
	Menu           *models.DailyMenu `json:"menu,omitempty"`
	OrderingClosed bool              `json:"orderingClosed"`
}

// HandleWeekView returns the week strip for the caller's company, offset
// by the signed ?offset= week index. The strip spans Monday..Friday
// unless weekend menus exist for that week.
func (a *API) HandleWeekView(c *gin.Context) {
	id := a.identity(c)
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	now := time.Now()
	menus := a.Store.Menus(id.CompanyID)
	cutoff := a.Store.AppConfig().OrderCutoffTime

	dates := menu.WeekDates(now, offset, menus)
	days := make([]weekDay, 0, len(dates))
	for _, date := range dates {
		day := weekDay{
			Date:           date,
			OrderingClosed: menu.OrderingClosed(now, date, cutoff),
		}
		if m, ok := a.Store.MenuForDate(date, id.CompanyID); ok {
			day.Menu = &m
		}
		days = append(days, day)
	}

	c.JSON(http.StatusOK, gin.H{"offset": offset, "days": days})
}

// HandleGetMenu returns the published menu for a date
func (a *API) HandleGetMenu(c *gin.Context) {
	id := a.identity(c)
	m, ok := a.Store.MenuForDate(c.Param("date"), id.CompanyID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no menu for that date"})
		return
	}
	c.JSON(http.StatusOK, m)
}

// HandleListMenus returns every menu for the caller's company
func (a *API) HandleListMenus(c *gin.Context) {
	id := a.identity(c)
	c.JSON(http.StatusOK, a.Store.Menus(id.CompanyID))
}

// HandleSaveMenu creates or replaces the menu for a date
func (a *API) HandleSaveMenu(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		ID           string            `json:"id"`
		Date         string            `json:"date"`
		Items        []models.MenuItem `json:"items"`
		Notes        string            `json:"notes"`
		DepartmentID string            `json:"departmentId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse(models.MenuDateFormat, req.Date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	m := models.DailyMenu{
		ID:           req.ID,
		Date:         req.Date,
		Notes:        req.Notes,
		DepartmentID: req.DepartmentID,
		CompanyID:    id.CompanyID,
	}
	if err := m.SetItems(req.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved := a.Store.SaveMenu(c.Request.Context(), m)
	monitoring.MenusPublished.Inc()
	a.Monitor.IncrCounter("menus_published")
	a.Hub.Publish("menu_published", saved)
	c.JSON(http.StatusOK, saved)
}

// HandleDeleteMenu removes a menu
func (a *API) HandleDeleteMenu(c *gin.Context) {
	a.Store.DeleteMenu(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "menu deleted"})
}

// HandleCopyMenu duplicates one date's menu onto another
func (a *API) HandleCopyMenu(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		SourceDate string `json:"sourceDate"`
		TargetDate string `json:"targetDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	copied, err := a.Store.CopyMenuFromDate(c.Request.Context(), req.SourceDate, req.TargetDate, id.CompanyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	monitoring.MenusPublished.Inc()
	a.Monitor.IncrCounter("menus_published")
	a.Hub.Publish("menu_published", copied)
	c.JSON(http.StatusOK, copied)
}

// HandleListTemplates returns the caller's templates plus shared ones
func (a *API) HandleListTemplates(c *gin.Context) {
	id := a.identity(c)
	c.JSON(http.StatusOK, a.Store.Templates(id.UserID))
}

// HandleSaveTemplate creates or updates a reusable template
func (a *API) HandleSaveTemplate(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		ID       string            `json:"id"`
		Name     string            `json:"name"`
		Items    []models.MenuItem `json:"items"`
		Notes    string            `json:"notes"`
		IsShared bool              `json:"isShared"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "template name is required"})
		return
	}

	tpl := models.MenuTemplate{
		ID:        req.ID,
		Name:      req.Name,
		Notes:     req.Notes,
		IsShared:  req.IsShared,
		CreatedBy: id.UserID,
		CompanyID: id.CompanyID,
	}
	if err := tpl.SetItems(req.Items); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a.Store.SaveTemplate(c.Request.Context(), tpl))
}

// HandleDeleteTemplate removes a template
func (a *API) HandleDeleteTemplate(c *gin.Context) {
	a.Store.DeleteTemplate(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

// HandleApplyTemplate loads a template onto a target date
func (a *API) HandleApplyTemplate(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		TargetDate string `json:"targetDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	applied, err := a.Store.ApplyTemplate(c.Request.Context(), c.Param("id"), req.TargetDate, id.CompanyID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	monitoring.MenusPublished.Inc()
	a.Monitor.IncrCounter("menus_published")
	a.Hub.Publish("menu_published", applied)
	c.JSON(http.StatusOK, applied)
}
