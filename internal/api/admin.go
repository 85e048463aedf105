package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/models"
)

// HandleListUsers returns every user record
func (a *API) HandleListUsers(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Users())
}

// HandleSaveUser creates a user record
func (a *API) HandleSaveUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if user.Username == "" && user.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username or email is required"})
		return
	}
	if !user.Role.IsValid() || user.Role == models.RoleGuest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	user.ID = ""

	c.JSON(http.StatusCreated, a.Store.SaveUser(c.Request.Context(), user))
}

// HandleUpdateUser updates a user record, including the lock flag that
// gates login
func (a *API) HandleUpdateUser(c *gin.Context) {
	existing, ok := a.Store.UserByID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !user.Role.IsValid() || user.Role == models.RoleGuest {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid role"})
		return
	}
	user.ID = existing.ID
	user.CreatedAt = existing.CreatedAt

	c.JSON(http.StatusOK, a.Store.SaveUser(c.Request.Context(), user))
}

// HandleDeleteUser removes a user record
func (a *API) HandleDeleteUser(c *gin.Context) {
	a.Store.DeleteUser(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

// HandleListDepartments returns every department
func (a *API) HandleListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Departments())
}

// HandleSaveDepartment creates or updates a department
func (a *API) HandleSaveDepartment(c *gin.Context) {
	var department models.Department
	if err := c.ShouldBindJSON(&department); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if department.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "department name is required"})
		return
	}

	c.JSON(http.StatusOK, a.Store.SaveDepartment(c.Request.Context(), department))
}

// HandleDeleteDepartment removes a department
func (a *API) HandleDeleteDepartment(c *gin.Context) {
	a.Store.DeleteDepartment(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "department deleted"})
}

// HandleListCompanies returns every tenant
func (a *API) HandleListCompanies(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.Companies())
}

// HandleSaveCompany creates or updates a tenant record
func (a *API) HandleSaveCompany(c *gin.Context) {
	var company models.Company
	if err := c.ShouldBindJSON(&company); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if company.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "company name is required"})
		return
	}

	c.JSON(http.StatusOK, a.Store.SaveCompany(c.Request.Context(), company))
}

// HandleDeleteCompany removes a tenant record
func (a *API) HandleDeleteCompany(c *gin.Context) {
	if c.Param("id") == models.DefaultCompanyID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "the default company cannot be deleted"})
		return
	}
	a.Store.DeleteCompany(c.Request.Context(), c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "company deleted"})
}

// HandleGetConfig returns the tenant-wide settings
func (a *API) HandleGetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, a.Store.AppConfig())
}

// HandleUpdateConfig replaces the tenant-wide settings
func (a *API) HandleUpdateConfig(c *gin.Context) {
	var config models.AppConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, a.Store.SaveAppConfig(c.Request.Context(), config))
}
