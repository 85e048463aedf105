package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/models"
)

// deliveryGroup is one drop-off bucket on the delivery run sheet
type deliveryGroup struct {
	Label  string         `json:"label"`
	Orders []models.Order `json:"orders"`
}

// HandleDeliveryGroups returns the run sheet for a date (today by
// default). Guest orders get one bucket per guest name so reception can
// hand them off individually; every employee order lands in a single
// general bucket regardless of department.
func (a *API) HandleDeliveryGroups(c *gin.Context) {
	id := a.identity(c)
	date := c.DefaultQuery("date", time.Now().Format(models.MenuDateFormat))

	general := deliveryGroup{Label: "General", Orders: []models.Order{}}
	guestGroups := make(map[string]*deliveryGroup)
	guestOrder := []string{}

	for _, order := range a.Store.OrdersForDate(date, id.CompanyID) {
		if order.Status == models.OrderStatusCancelled {
			continue
		}
		if order.IsGuestOrder() {
			g, ok := guestGroups[order.GuestName]
			if !ok {
				g = &deliveryGroup{Label: "Guest: " + order.GuestName}
				guestGroups[order.GuestName] = g
				guestOrder = append(guestOrder, order.GuestName)
			}
			g.Orders = append(g.Orders, order)
			continue
		}
		general.Orders = append(general.Orders, order)
	}

	groups := []deliveryGroup{general}
	for _, name := range guestOrder {
		groups = append(groups, *guestGroups[name])
	}

	c.JSON(http.StatusOK, gin.H{"date": date, "groups": groups})
}
