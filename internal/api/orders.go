package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/menu"
	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

// HandlePlaceOrder places an order against a published menu. Ordering
// for today is blocked past the tenant cutoff; other dates are not
// time-gated.
func (a *API) HandlePlaceOrder(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		MenuDate     string   `json:"menuDate"`
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

	m, ok := a.Store.MenuForDate(req.MenuDate, id.CompanyID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no menu for that date"})
		return
	}
	if menu.OrderingClosed(time.Now(), req.MenuDate, a.Store.AppConfig().OrderCutoffTime) {
		c.JSON(http.StatusConflict, gin.H{"error": "ordering for today is closed"})
		return
	}

	selected := menu.SelectItems(&m, req.ItemIDs)
	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "none of the selected items are on the menu"})
		return
	}

	order := a.Store.PlaceOrder(c.Request.Context(), models.Order{
		UserID:       id.UserID,
		MenuDate:     req.MenuDate,
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

// HandleListOrders returns the caller's own orders, or the whole
// company's for fulfillment roles
func (a *API) HandleListOrders(c *gin.Context) {
	id := a.identity(c)
	switch id.Role {
	case models.RoleKitchen, models.RoleAdmin, models.RoleDelivery, models.RoleReception:
		c.JSON(http.StatusOK, a.Store.Orders(id.CompanyID))
	default:
		c.JSON(http.StatusOK, a.Store.OrdersForUser(id.UserID))
	}
}

// HandleOrderSummary computes the selection summary (count, calories,
// deduplicated dietary tags) without placing an order
func (a *API) HandleOrderSummary(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		MenuDate string   `json:"menuDate"`
		ItemIDs  []string `json:"itemIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, ok := a.Store.MenuForDate(req.MenuDate, id.CompanyID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no menu for that date"})
		return
	}

	c.JSON(http.StatusOK, menu.Summarize(menu.SelectItems(&m, req.ItemIDs)))
}

// HandleUpdateOrderStatus advances an order's lifecycle; backward
// transitions are rejected by the store
func (a *API) HandleUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status models.OrderStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !req.Status.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status"})
		return
	}

	order, err := a.Store.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if order.Status == models.OrderStatusDelivered {
		monitoring.OrdersDelivered.Inc()
		a.Monitor.IncrCounter("orders_delivered")
	}
	a.Hub.Publish("order_status", order)
	c.JSON(http.StatusOK, order)
}

// HandleDeliverBatch marks a list of orders delivered. The store applies
// one local batch update and persists each order independently.
func (a *API) HandleDeliverBatch(c *gin.Context) {
	var req struct {
		OrderIDs []string `json:"orderIds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := a.Store.MarkBatchDelivered(c.Request.Context(), req.OrderIDs)
	for _, order := range updated {
		monitoring.OrdersDelivered.Inc()
		a.Monitor.IncrCounter("orders_delivered")
		a.Hub.Publish("order_status", order)
	}

	c.JSON(http.StatusOK, gin.H{"delivered": len(updated), "orders": updated})
}
