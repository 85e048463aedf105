package models

import (
	"encoding/json"
	"time"
)

// IssueStatus represents the state of a menu issue
type IssueStatus string

const (
	IssueStatusOpen     IssueStatus = "open"
	IssueStatusResolved IssueStatus = "resolved"
)

// MenuIssue is a complaint about a specific day's menu
type MenuIssue struct {
	ID           string      `gorm:"primary_key" json:"id"`
	UserID       string      `json:"userId"`
	Date         string      `json:"date"` // YYYY-MM-DD
	Text         string      `json:"text"`
	Status       IssueStatus `json:"status"`
	ChefResponse string      `json:"chefResponse,omitempty"`
	IsRead       bool        `json:"isRead"`
	CompanyID    string      `json:"companyId,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// TableName sets the table name for MenuIssue
func (MenuIssue) TableName() string {
	return "menu_issues"
}

// CommentResponse is a single reply on a comment thread
type CommentResponse struct {
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is freeform feedback with an append-only list of responses
type Comment struct {
	ID            string `gorm:"primary_key" json:"id"`
	Author        string `json:"author"`
	Text          string `json:"text"`
	ResponsesJSON string `gorm:"type:text" json:"-"`
	CompanyID     string `json:"companyId,omitempty"`
	// Transient field (ignored by GORM)
	Responses []CommentResponse `gorm:"-" json:"responses"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// TableName sets the table name for Comment
func (Comment) TableName() string {
	return "comments"
}

// GetResponses returns the deserialized response list
func (c *Comment) GetResponses() ([]CommentResponse, error) {
	if len(c.Responses) > 0 {
		return c.Responses, nil
	}
	var responses []CommentResponse
	if c.ResponsesJSON == "" {
		return responses, nil
	}
	if err := json.Unmarshal([]byte(c.ResponsesJSON), &responses); err != nil {
		return nil, err
	}
	c.Responses = responses
	return responses, nil
}

// AppendResponse adds a reply to the thread; responses are never edited
// or removed
func (c *Comment) AppendResponse(response CommentResponse) error {
	responses, err := c.GetResponses()
	if err != nil {
		return err
	}
	responses = append(responses, response)
	data, err := json.Marshal(responses)
	if err != nil {
		return err
	}
	c.ResponsesJSON = string(data)
	c.Responses = responses
	return nil
}
