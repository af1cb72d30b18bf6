package repository

import (
	"context"
	"errors"

	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/pkg/database"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrProjectNotFound     = errors.New("project not found")
	ErrApplicationNotFound = errors.New("application not found")
	ErrAlreadyApplied      = errors.New("already applied to project")
	ErrCommunityNotFound   = errors.New("community not found")
	ErrMembershipNotFound  = errors.New("membership not found")
	ErrMessageNotFound     = errors.New("message not found")
)

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	UpdateEmbedding(ctx context.Context, id string, embedding database.Vector) error
}

// ProjectRepository defines the interface for project data persistence.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, page, pageSize int, status string) ([]domain.Project, int, error)
	GetByOwner(ctx context.Context, ownerID string) ([]domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	UpdateStatus(ctx context.Context, id string, status domain.ProjectStatus) error
	UpdateEmbedding(ctx context.Context, id string, embedding database.Vector) error
	Delete(ctx context.Context, id string) error
}

// ApplicationRepository defines the interface for project application persistence.
type ApplicationRepository interface {
	Create(ctx context.Context, app *domain.ProjectApplication) error
	GetByID(ctx context.Context, id string) (*domain.ProjectApplication, error)
	GetByProject(ctx context.Context, projectID string) ([]domain.ProjectApplication, error)
	GetByUser(ctx context.Context, userID string) ([]domain.ProjectApplication, error)
	UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error
}

// CommunityRepository defines the interface for community data persistence.
type CommunityRepository interface {
	Create(ctx context.Context, community *domain.Community) error
	GetByID(ctx context.Context, id string) (*domain.Community, error)
	Explore(ctx context.Context, query string, page, pageSize int) ([]domain.Community, int, error)
	GetByIDs(ctx context.Context, ids []string) ([]domain.Community, error)
	GetByAdmin(ctx context.Context, adminID string) ([]domain.Community, error)
	AdjustMemberCount(ctx context.Context, id string, delta int) error
}

// MembershipRepository defines the interface for community membership persistence.
type MembershipRepository interface {
	Upsert(ctx context.Context, m *domain.Membership) error
	Get(ctx context.Context, userID, communityID string) (*domain.Membership, error)
	IsActiveMember(ctx context.Context, userID, communityID string) (bool, error)
	GetUserCommunities(ctx context.Context, userID string) ([]string, error)
	SetStatus(ctx context.Context, userID, communityID string, status domain.MemberStatus) error
}

// MessageRepository defines the interface for chat message persistence.
// Messages are keyed by KSUID, so id order is creation order.
type MessageRepository interface {
	Save(ctx context.Context, msg *domain.ChatMessage) error
	// GetHistory returns up to limit messages in communityID older than
	// cursor (exclusive), newest first. An empty cursor means start from
	// the latest message.
	GetHistory(ctx context.Context, communityID, cursor string, limit int) ([]domain.ChatMessage, error)
}

// VectorSearchRepository defines the interface for embedding similarity search.
type VectorSearchRepository interface {
	SearchDevelopers(ctx context.Context, embedding database.Vector, limit int) ([]domain.DeveloperResult, error)
	SearchProjects(ctx context.Context, embedding database.Vector, limit int) ([]domain.ProjectResult, error)
}

// SearchIndexRepository defines the interface for the keyword search index.
type SearchIndexRepository interface {
	IndexDeveloper(ctx context.Context, doc *domain.DeveloperDoc) error
	IndexProject(ctx context.Context, doc *domain.ProjectDoc) error
	DeleteProject(ctx context.Context, id string) error
	SearchDevelopers(ctx context.Context, query string, offset, limit int) ([]domain.DeveloperDoc, int, error)
	SearchProjects(ctx context.Context, query string, offset, limit int) ([]domain.ProjectDoc, int, error)
}
