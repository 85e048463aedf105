package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/monitoring"
)

// HandleGetGuestCode returns the active guest passcode and access mode
func (a *API) HandleGetGuestCode(c *gin.Context) {
	config := a.Store.AppConfig()
	c.JSON(http.StatusOK, gin.H{
		"passcode":   config.GuestPasscode,
		"accessMode": config.GuestAccessMode,
	})
}

// HandleRotateGuestCode replaces the active guest passcode. Codes
// distributed before the rotation stop working immediately.
func (a *API) HandleRotateGuestCode(c *gin.Context) {
	code := a.Store.GenerateNewGuestCode(c.Request.Context())
	monitoring.GuestCodeRotations.Inc()
	a.Monitor.IncrCounter("guest_code_rotations")
	a.Hub.Publish("guest_code_rotated", gin.H{"rotated": true})
	c.JSON(http.StatusOK, gin.H{"passcode": code})
}

// HandleComposeGuestEmail builds a mailto: URL that opens a prefilled
// invitation in the receptionist's mail client. Nothing is sent
// server-side.
func (a *API) HandleComposeGuestEmail(c *gin.Context) {
	var req struct {
		Recipients []string `json:"recipients"`
		GuestName  string   `json:"guestName"`
		PortalURL  string   `json:"portalUrl"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Recipients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one recipient is required"})
		return
	}

	config := a.Store.AppConfig()
	greeting := "Hello"
	if req.GuestName != "" {
		greeting = "Hello " + req.GuestName
	}
	body := fmt.Sprintf(
		"%s,\n\nYou are invited to order lunch through our guest portal.\n\nPasscode: %s\n",
		greeting, config.GuestPasscode,
	)
	if req.PortalURL != "" {
		body += fmt.Sprintf("Portal: %s\n", req.PortalURL)
	}
	body += "\nThe passcode may be rotated at any time, so please order soon.\n"

	params := url.Values{}
	params.Set("subject", "Lunch ordering guest access")
	params.Set("body", body)
	mailto := fmt.Sprintf("mailto:%s?%s",
		url.PathEscape(strings.Join(req.Recipients, ",")),
		strings.ReplaceAll(params.Encode(), "+", "%20"),
	)

	c.JSON(http.StatusOK, gin.H{"mailto": mailto})
}
