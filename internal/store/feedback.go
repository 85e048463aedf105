package store

import (
	"context"
	"fmt"
	"time"

	"lunchlink/internal/models"
)

// Issues returns every cached menu issue for a company
func (s *Store) Issues(companyID string) []models.MenuIssue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issues := make([]models.MenuIssue, 0, len(s.issues))
	for _, i := range s.issues {
		if i.CompanyID == companyID {
			issues = append(issues, i)
		}
	}
	return issues
}

// ReportIssue files a complaint tied to a user and date. Submission
// requires non-empty text and a known reporter.
func (s *Store) ReportIssue(ctx context.Context, issue models.MenuIssue) (models.MenuIssue, error) {
	if issue.Text == "" {
		return models.MenuIssue{}, fmt.Errorf("issue text is required")
	}
	if issue.UserID == "" {
		return models.MenuIssue{}, fmt.Errorf("issue reporter is required")
	}

	s.mu.Lock()
	issue.ID = newID("issue")
	issue.Status = models.IssueStatusOpen
	issue.CreatedAt = time.Now()
	issue.UpdatedAt = issue.CreatedAt
	s.issues[issue.ID] = issue
	s.mu.Unlock()

	logWriteErr("issue", issue.ID, s.backend.SaveIssue(ctx, &issue))
	return issue, nil
}

// UpdateIssue replaces an issue record (chef response, resolution, read flag)
func (s *Store) UpdateIssue(ctx context.Context, issue models.MenuIssue) (models.MenuIssue, error) {
	s.mu.Lock()
	if _, ok := s.issues[issue.ID]; !ok {
		s.mu.Unlock()
		return models.MenuIssue{}, fmt.Errorf("issue %s not found", issue.ID)
	}
	issue.UpdatedAt = time.Now()
	s.issues[issue.ID] = issue
	s.mu.Unlock()

	logWriteErr("issue", issue.ID, s.backend.SaveIssue(ctx, &issue))
	return issue, nil
}

// Comments returns every cached comment for a company
func (s *Store) Comments(companyID string) []models.Comment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	comments := make([]models.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		if c.CompanyID == companyID {
			comments = append(comments, c)
		}
	}
	return comments
}

// AddComment records freeform feedback
func (s *Store) AddComment(ctx context.Context, comment models.Comment) models.Comment {
	s.mu.Lock()
	if comment.ID == "" {
		comment.ID = newID("comment")
		comment.CreatedAt = time.Now()
	}
	comment.UpdatedAt = time.Now()
	s.comments[comment.ID] = comment
	s.mu.Unlock()

	logWriteErr("comment", comment.ID, s.backend.SaveComment(ctx, &comment))
	return comment
}

// RespondToComment appends a reply to a comment's response thread
func (s *Store) RespondToComment(ctx context.Context, commentID string, response models.CommentResponse) (models.Comment, error) {
	s.mu.Lock()
	comment, ok := s.comments[commentID]
	if !ok {
		s.mu.Unlock()
		return models.Comment{}, fmt.Errorf("comment %s not found", commentID)
	}
	response.CreatedAt = time.Now()
	if err := comment.AppendResponse(response); err != nil {
		s.mu.Unlock()
		return models.Comment{}, err
	}
	comment.UpdatedAt = time.Now()
	s.comments[commentID] = comment
	s.mu.Unlock()

	logWriteErr("comment", commentID, s.backend.SaveComment(ctx, &comment))
	return comment, nil
}
