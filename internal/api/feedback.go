package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunchlink/internal/models"
	"lunchlink/internal/monitoring"
)

// HandleReportIssue files a complaint about a day's menu
func (a *API) HandleReportIssue(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		Date string `json:"date"`
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	issue, err := a.Store.ReportIssue(c.Request.Context(), models.MenuIssue{
		UserID:    id.UserID,
		Date:      req.Date,
		Text:      req.Text,
		CompanyID: id.CompanyID,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, issue)
}

// HandleListIssues returns the company's menu issues
func (a *API) HandleListIssues(c *gin.Context) {
	id := a.identity(c)
	c.JSON(http.StatusOK, a.Store.Issues(id.CompanyID))
}

// HandleUpdateIssue lets the kitchen respond to or resolve an issue
func (a *API) HandleUpdateIssue(c *gin.Context) {
	var req struct {
		Status       models.IssueStatus `json:"status"`
		ChefResponse string             `json:"chefResponse"`
		IsRead       bool               `json:"isRead"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.IssueStatusOpen && req.Status != models.IssueStatusResolved {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown issue status"})
		return
	}

	issues := a.Store.Issues(a.identity(c).CompanyID)
	var existing *models.MenuIssue
	for i := range issues {
		if issues[i].ID == c.Param("id") {
			existing = &issues[i]
			break
		}
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "issue not found"})
		return
	}

	existing.Status = req.Status
	existing.ChefResponse = req.ChefResponse
	existing.IsRead = req.IsRead

	updated, err := a.Store.UpdateIssue(c.Request.Context(), *existing)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// HandleListComments returns the company's comment board
func (a *API) HandleListComments(c *gin.Context) {
	id := a.identity(c)
	c.JSON(http.StatusOK, a.Store.Comments(id.CompanyID))
}

// HandleAddComment posts freeform feedback
func (a *API) HandleAddComment(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "comment text is required"})
		return
	}

	comment := a.Store.AddComment(c.Request.Context(), models.Comment{
		Author:    id.Name,
		Text:      req.Text,
		CompanyID: id.CompanyID,
	})
	c.JSON(http.StatusCreated, comment)
}

// HandleRespondToComment appends a reply to a comment thread. Replies
// are append-only and never edited or removed.
func (a *API) HandleRespondToComment(c *gin.Context) {
	id := a.identity(c)

	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "response text is required"})
		return
	}

	comment, err := a.Store.RespondToComment(c.Request.Context(), c.Param("id"), models.CommentResponse{
		Author:    id.Name,
		Text:      req.Text,
		CreatedAt: time.Now(),
	})
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, comment)
}

// HandleSummarizeFeedback condenses the comment board into a short prose
// summary. Without an AI credential a fixed placeholder comes back.
func (a *API) HandleSummarizeFeedback(c *gin.Context) {
	id := a.identity(c)

	comments := a.Store.Comments(id.CompanyID)
	texts := make([]string, 0, len(comments))
	for _, comment := range comments {
		texts = append(texts, comment.Text)
	}

	monitoring.SuggestionRequests.WithLabelValues("summary").Inc()
	a.Monitor.IncrCounter("ai_requests")
	summary, err := a.Suggest.SummarizeFeedback(c.Request.Context(), texts)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary, "comments": len(comments)})
}
