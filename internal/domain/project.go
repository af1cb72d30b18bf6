package domain

import (
	"strings"
	"time"
)

// ProjectStatus represents project status.
type ProjectStatus string

const (
	ProjectStatusOpen   ProjectStatus = "open"
	ProjectStatusClosed ProjectStatus = "closed"
)

// ApplicationStatus represents a membership application's status.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Project represents a project listing.
type Project struct {
	ID            string        `json:"id"`
	OwnerID       string        `json:"owner_id"`
	OwnerUsername string        `json:"owner_username"`
	Title         string        `json:"title"`
	Description   string        `json:"description,omitempty"`
	TechStack     []string      `json:"tech_stack,omitempty"`
	Status        ProjectStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// SearchableText is the text that gets embedded for project search.
func (p *Project) SearchableText() string {
	parts := make([]string, 0, 3)
	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.TechStack) > 0 {
		parts = append(parts, strings.Join(p.TechStack, ", "))
	}
	return strings.Join(parts, "\n")
}

// ProjectApplication represents a user's application to join a project.
type ProjectApplication struct {
	ID        string            `json:"id"`
	ProjectID string            `json:"project_id"`
	UserID    string            `json:"user_id"`
	Username  string            `json:"username"`
	Message   string            `json:"message,omitempty"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// CreateProjectRequest represents a create project request.
type CreateProjectRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
}

// UpdateProjectRequest represents an update project request.
type UpdateProjectRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	TechStack   []string `json:"tech_stack"`
}

// ListProjectsRequest represents a list projects request.
type ListProjectsRequest struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// ApplyRequest represents a project application request.
type ApplyRequest struct {
	Message string `json:"message" binding:"max=2000"`
}

// DecideApplicationRequest accepts or rejects a pending application.
type DecideApplicationRequest struct {
	Accept bool `json:"accept"`
}

// ListProjectsResponse represents a paginated list response.
type ListProjectsResponse struct {
	Projects   []Project `json:"projects"`
	Total      int       `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
