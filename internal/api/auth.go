package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"

	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

const identityKey = "identity"

// Identity is the authenticated caller extracted from the session token
type Identity struct {
	UserID      string
	Name        string
	Role        models.Role
	CompanyID   string
	GuestName   string
	HostContact string
}

// HandleLogin authenticates by identifier alone: a username or email is
// matched case-insensitively after trimming, and locked accounts are
// rejected. On success a session token carrying the user's role is
// issued for the role-gated route groups.
func (a *API) HandleLogin(c *gin.Context) {
	var req struct {
		Identifier string `json:"identifier"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := a.Store.Login(req.Identifier)
	if !ok {
		monitoring.LoginAttempts.WithLabelValues("failure").Inc()
		a.Monitor.IncrCounter("login_failure")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "login failed"})
		return
	}
	monitoring.LoginAttempts.WithLabelValues("success").Inc()
	a.Monitor.IncrCounter("login_success")

	company := a.Store.CurrentCompany()
	token, err := a.issueToken(Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Role:      user.Role,
		CompanyID: company.ID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"user":    user,
		"company": company,
	})
}

// HandleLogout clears the store session. Menus and orders drop from the
// local cache; the next load repopulates them.
func (a *API) HandleLogout(c *gin.Context) {
	a.Store.Logout()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// HandleGuestAuth is the AUTH step of the guest portal: name, host
// contact, target company, and a passcode that must exactly match the
// tenant's current code
func (a *API) HandleGuestAuth(c *gin.Context) {
	var req struct {
		CompanyID   string `json:"companyId"`
		GuestName   string `json:"guestName"`
		HostContact string `json:"hostContact"`
		Passcode    string `json:"passcode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.GuestName == "" || req.HostContact == "" || req.CompanyID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, host contact, and company are required"})
		return
	}
	if a.Store.AppConfig().GuestAccessMode == models.GuestAccessDisabled {
		c.JSON(http.StatusForbidden, gin.H{"error": "guest access is disabled"})
		return
	}
	if !a.Store.GuestPasscodeMatches(req.Passcode) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid passcode"})
		return
	}
	if _, ok := a.Store.CompanyByID(req.CompanyID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "company not found"})
		return
	}

	guest := a.Store.LoginAsGuest(req.CompanyID, req.GuestName, req.HostContact)
	token, err := a.issueToken(Identity{
		UserID:      guest.ID,
		Name:        guest.Name,
		Role:        models.RoleGuest,
		CompanyID:   req.CompanyID,
		GuestName:   req.GuestName,
		HostContact: req.HostContact,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "guest": guest})
}

// issueToken signs a session token for the identity
func (a *API) issueToken(id Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":     id.UserID,
		"name":    id.Name,
		"role":    string(id.Role),
		"company": id.CompanyID,
		"exp":     time.Now().Add(time.Duration(a.tokenTTL) * time.Hour).Unix(),
	}
	if id.GuestName != "" {
		claims["guestName"] = id.GuestName
		claims["hostContact"] = id.HostContact
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.jwtSecret)
}

// AuthRequired parses the bearer token and stores the caller identity on
// the request context
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return a.jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		id := Identity{
			UserID:      stringClaim(claims, "sub"),
			Name:        stringClaim(claims, "name"),
			Role:        models.Role(stringClaim(claims, "role")),
			CompanyID:   stringClaim(claims, "company"),
			GuestName:   stringClaim(claims, "guestName"),
			HostContact: stringClaim(claims, "hostContact"),
		}
		if !id.Role.IsValid() {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireRoles gates a route group to the listed roles
func (a *API) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(c *gin.Context) {
		id := a.identity(c)
		if !allowed[id.Role] {
			c.JSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// identity returns the caller identity set by AuthRequired
func (a *API) identity(c *gin.Context) Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(Identity); ok {
			return id
		}
	}
	return Identity{}
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
