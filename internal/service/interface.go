package service

import (
	"context"
	"errors"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/hub"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotOwner           = errors.New("not the project owner")
	ErrProjectClosed      = errors.New("project is closed")
	ErrOwnProject         = errors.New("cannot apply to own project")
	ErrAlreadyDecided     = errors.New("application already decided")
	ErrNotAdmin           = errors.New("not the community admin")
	ErrPrivateCommunity   = errors.New("community is private")
	ErrNotAMember         = errors.New("not a community member")
	ErrAlreadyMember      = errors.New("already a member")
)

// UserService handles registration, login and profile management.
type UserService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResponse, error)
	GetProfile(ctx context.Context, userID string) (*domain.UserResponse, error)
	GetPublicProfile(ctx context.Context, username string) (*domain.UserResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *domain.ChangePasswordRequest) error
	PresignAvatarUpload(ctx context.Context, userID string, req *domain.AvatarPresignRequest) (*domain.AvatarPresignResponse, error)
}

// ProjectService handles project listings and applications.
type ProjectService interface {
	Create(ctx context.Context, ownerID, ownerUsername string, req *domain.CreateProjectRequest) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, req *domain.ListProjectsRequest) (*domain.ListProjectsResponse, error)
	Update(ctx context.Context, id, userID string, req *domain.UpdateProjectRequest) (*domain.Project, error)
	Close(ctx context.Context, id, userID string) error
	Delete(ctx context.Context, id, userID string) error
	Apply(ctx context.Context, projectID, userID, username string, req *domain.ApplyRequest) (*domain.ProjectApplication, error)
	ListApplications(ctx context.Context, projectID, userID string) ([]domain.ProjectApplication, error)
	MyApplications(ctx context.Context, userID string) ([]domain.ProjectApplication, error)
	DecideApplication(ctx context.Context, applicationID, userID string, accept bool) (*domain.ProjectApplication, error)
}

// CommunityService handles communities and memberships.
type CommunityService interface {
	Create(ctx context.Context, adminID, adminUsername string, req *domain.CreateCommunityRequest) (*domain.Community, error)
	Get(ctx context.Context, id string) (*domain.Community, error)
	Explore(ctx context.Context, req *domain.ExploreCommunitiesRequest) (*domain.ListCommunitiesResponse, error)
	Join(ctx context.Context, communityID, userID string) error
	Leave(ctx context.Context, communityID, userID string) error
	MyCommunities(ctx context.Context, userID string) ([]domain.Community, error)
	HostedCommunities(ctx context.Context, userID string) ([]domain.Community, error)
	IsActiveMember(ctx context.Context, userID, communityID string) (bool, error)
}

// ChatRoomService handles websocket frames for community chat rooms.
type ChatRoomService interface {
	HandleAuth(ctx context.Context, client *hub.Client, token string) error
	HandleJoinRoom(ctx context.Context, client *hub.Client, communityID string) error
	HandleChatMessage(ctx context.Context, client *hub.Client, content string) error
	HandleLeaveRoom(ctx context.Context, client *hub.Client) error
	HandleDisconnect(ctx context.Context, client *hub.Client) error
}

// HistoryService serves paginated chat history.
type HistoryService interface {
	GetChatHistory(ctx context.Context, userID, communityID, cursor string, limit int) (*domain.ChatHistoryResponse, error)
}

// SemanticSearchService ranks developers and projects against a text query.
type SemanticSearchService interface {
	SearchDevelopers(ctx context.Context, query string, limit int) ([]domain.DeveloperResult, error)
	SearchProjects(ctx context.Context, query string, limit int) ([]domain.ProjectResult, error)
}

// KeywordSearchService serves keyword search over the index.
type KeywordSearchService interface {
	Search(ctx context.Context, req *domain.KeywordSearchRequest) (*domain.KeywordSearchResponse, error)
}

// AssistantService answers chatbot messages.
type AssistantService interface {
	Chat(ctx context.Context, userID string, req *domain.AssistantRequest) (*domain.AssistantReply, error)
}
