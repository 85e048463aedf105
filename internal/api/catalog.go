package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

// HandleListMasterItems returns the master food catalog for the
// caller's company
func (a *API) HandleListMasterItems(c *gin.Context) {
	id := a.identity(c)
	c.JSON(http.StatusOK, a.Store.MasterItems(id.CompanyID))
}

// HandleSaveMasterItem creates a catalog entry
func (a *API) HandleSaveMasterItem(c *gin.Context) {
	id := a.identity(c)

	var item models.MasterFoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = ""
	item.CompanyID = id.CompanyID
	if err := models.ValidateMasterFoodItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a.Store.SaveMasterItem(c.Request.Context(), item))
}

// HandleUpdateMasterItem updates a catalog entry
func (a *API) HandleUpdateMasterItem(c *gin.Context) {
	existing, ok := a.Store.MasterItemByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "food item not found"})
		return
	}

	var item models.MasterFoodItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	item.ID = existing.ID
	item.CompanyID = existing.CompanyID
	item.CreatedAt = existing.CreatedAt
	if err := models.ValidateMasterFoodItem(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a.Store.SaveMasterItem(c.Request.Context(), item))
}

// HandleDeleteMasterItem removes a catalog entry
func (a *API) HandleDeleteMasterItem(c *gin.Context) {
	a.Store.DeleteMasterItem(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "food item deleted"})
}

// HandleSuggestItems asks the generative service for menu ideas on a
// cuisine theme. Without a credential this returns an empty list.
func (a *API) HandleSuggestItems(c *gin.Context) {
	var req struct {
		Theme string `json:"theme"`
		Count int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	monitoring.SuggestionRequests.WithLabelValues("ideas").Inc()
	a.Monitor.IncrCounter("ai_requests")
	items, err := a.Suggest.MenuIdeas(c.Request.Context(), req.Theme, req.Count)
	if err != nil {
		// degraded result, never a failure surfaced to the kitchen view
		c.JSON(http.StatusOK, gin.H{"items": []models.MenuItem{}, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}
