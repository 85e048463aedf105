package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/menu"
	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

// HandleGuestMenu is the MENU step of the guest portal: today's menu for
// the company the guest is visiting
func (a *API) HandleGuestMenu(c *gin.Context) {
	id := a.identity(c)
	today := time.Now().Format(models.MenuDateFormat)

	m, ok := a.Store.MenuForDate(today, id.CompanyID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no menu published for today"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":           today,
		"menu":           m,
		"orderingClosed": menu.OrderingClosed(time.Now(), today, a.Store.AppConfig().OrderCutoffTime),
	})
}

// HandleGuestOrder places a same-day order on behalf of a visitor. The
// order carries the guest's name and host contact instead of a user id.
func (a *API) HandleGuestOrder(c *gin.Context) {
	id := a.identity(c)
	today := time.Now().Format(models.MenuDateFormat)

	var req struct {
		ItemIDs      []string `json:"itemIds"`
		Instructions string   `json:"instructions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.ItemIDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "select at least one item"})
		return
	}

	m, ok := a.Store.MenuForDate(today, id.CompanyID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no menu published for today"})
		return
	}
	if menu.OrderingClosed(time.Now(), today, a.Store.AppConfig().OrderCutoffTime) {
		c.JSON(http.StatusConflict, gin.H{"error": "ordering for today is closed"})
		return
	}

	selected := menu.SelectItems(&m, req.ItemIDs)
	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "none of the selected items are on the menu"})
		return
	}

	order := a.Store.PlaceOrder(c.Request.Context(), models.Order{
		GuestName:    id.GuestName,
		HostContact:  id.HostContact,
		MenuDate:     today,
		ItemIDs:      req.ItemIDs,
		Instructions: req.Instructions,
		CompanyID:    id.CompanyID,
	})
	monitoring.OrdersPlaced.Inc()
	a.Monitor.IncrCounter("orders_placed")
	a.Hub.Publish("order_placed", order)

	c.JSON(http.StatusCreated, gin.H{
		"order":   order,
		"summary": menu.Summarize(selected),
	})
}
