package domain

import "time"

// MemberRole represents a community member's role.
type MemberRole string

const (
	MemberRoleAdmin  MemberRole = "admin"
	MemberRoleMember MemberRole = "member"
)

// MemberStatus represents a community membership's status.
type MemberStatus string

const (
	MemberStatusActive MemberStatus = "active"
	MemberStatusLeft   MemberStatus = "left"
)

// Community represents a group chat space.
type Community struct {
	ID            string    `json:"id"`
	AdminID       string    `json:"admin_id"`
	AdminUsername string    `json:"admin_username"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	IsPrivate     bool      `json:"is_private"`
	MemberCount   int       `json:"member_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Membership relates a user to a community. An active membership is the
// sole gate for receiving room broadcasts.
type Membership struct {
	UserID      string       `json:"user_id"`
	CommunityID string       `json:"community_id"`
	Role        MemberRole   `json:"role"`
	Status      MemberStatus `json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
}

// CreateCommunityRequest represents a create community request.
type CreateCommunityRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
}

// ExploreCommunitiesRequest represents an explore/list request.
type ExploreCommunitiesRequest struct {
	Query    string `form:"q"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// ListCommunitiesResponse represents a paginated list response.
type ListCommunitiesResponse struct {
	Communities []Community `json:"communities"`
	Total       int         `json:"total"`
	Page        int         `json:"page"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
}
