package domain

import (
	"time"

	"github.com/devconnect/devconnect-backend/pkg/database"
)

// UserModel is the users table.
type UserModel struct {
	ID           string               `gorm:"type:varchar(36);primaryKey"`
	Email        string               `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string               `gorm:"type:varchar(50);uniqueIndex;not null"`
	DisplayName  string               `gorm:"type:varchar(100)"`
	PasswordHash string               `gorm:"type:varchar(255);not null"`
	Bio          string               `gorm:"type:text"`
	Skills       database.StringArray `gorm:"type:text"`
	AvatarKey    string               `gorm:"type:varchar(255)"`
	Embedding    database.Vector      `gorm:"type:vector(1024)"`
	CreatedAt    time.Time            `gorm:"autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

func (m *UserModel) ToDomain() *User {
	return &User{
		ID:           m.ID,
		Email:        m.Email,
		Username:     m.Username,
		DisplayName:  m.DisplayName,
		PasswordHash: m.PasswordHash,
		Bio:          m.Bio,
		Skills:       m.Skills,
		AvatarKey:    m.AvatarKey,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func UserModelFromDomain(u *User) *UserModel {
	return &UserModel{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		DisplayName:  u.DisplayName,
		PasswordHash: u.PasswordHash,
		Bio:          u.Bio,
		Skills:       u.Skills,
		AvatarKey:    u.AvatarKey,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

// ProjectModel is the projects table.
type ProjectModel struct {
	ID            string               `gorm:"type:varchar(36);primaryKey"`
	OwnerID       string               `gorm:"type:varchar(36);index;not null"`
	OwnerUsername string               `gorm:"type:varchar(50);not null"`
	Title         string               `gorm:"type:varchar(200);not null"`
	Description   string               `gorm:"type:text"`
	TechStack     database.StringArray `gorm:"type:text"`
	Status        string               `gorm:"type:varchar(20);index;default:'open'"`
	Embedding     database.Vector      `gorm:"type:vector(1024)"`
	CreatedAt     time.Time            `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time            `gorm:"autoUpdateTime"`
}

func (ProjectModel) TableName() string { return "projects" }

func (m *ProjectModel) ToDomain() *Project {
	return &Project{
		ID:            m.ID,
		OwnerID:       m.OwnerID,
		OwnerUsername: m.OwnerUsername,
		Title:         m.Title,
		Description:   m.Description,
		TechStack:     m.TechStack,
		Status:        ProjectStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func ProjectModelFromDomain(p *Project) *ProjectModel {
	return &ProjectModel{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		OwnerUsername: p.OwnerUsername,
		Title:         p.Title,
		Description:   p.Description,
		TechStack:     p.TechStack,
		Status:        string(p.Status),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ApplicationModel is the project_applications table. One row per
// (project, applicant) pair.
type ApplicationModel struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	ProjectID string    `gorm:"type:varchar(36);uniqueIndex:idx_project_applicant;not null"`
	UserID    string    `gorm:"type:varchar(36);uniqueIndex:idx_project_applicant;not null"`
	Username  string    `gorm:"type:varchar(50);not null"`
	Message   string    `gorm:"type:text"`
	Status    string    `gorm:"type:varchar(20);default:'pending'"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (ApplicationModel) TableName() string { return "project_applications" }

func (m *ApplicationModel) ToDomain() *ProjectApplication {
	return &ProjectApplication{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Username:  m.Username,
		Message:   m.Message,
		Status:    ApplicationStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ApplicationModelFromDomain(a *ProjectApplication) *ApplicationModel {
	return &ApplicationModel{
		ID:        a.ID,
		ProjectID: a.ProjectID,
		UserID:    a.UserID,
		Username:  a.Username,
		Message:   a.Message,
		Status:    string(a.Status),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// CommunityModel is the communities table.
type CommunityModel struct {
	ID            string    `gorm:"type:varchar(36);primaryKey"`
	AdminID       string    `gorm:"type:varchar(36);index;not null"`
	AdminUsername string    `gorm:"type:varchar(50);not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Description   string    `gorm:"type:text"`
	IsPrivate     bool      `gorm:"default:false"`
	MemberCount   int       `gorm:"default:0"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (CommunityModel) TableName() string { return "communities" }

func (m *CommunityModel) ToDomain() *Community {
	return &Community{
		ID:            m.ID,
		AdminID:       m.AdminID,
		AdminUsername: m.AdminUsername,
		Name:          m.Name,
		Description:   m.Description,
		IsPrivate:     m.IsPrivate,
		MemberCount:   m.MemberCount,
		CreatedAt:     m.CreatedAt,
	}
}

func CommunityModelFromDomain(c *Community) *CommunityModel {
	return &CommunityModel{
		ID:            c.ID,
		AdminID:       c.AdminID,
		AdminUsername: c.AdminUsername,
		Name:          c.Name,
		Description:   c.Description,
		IsPrivate:     c.IsPrivate,
		MemberCount:   c.MemberCount,
		CreatedAt:     c.CreatedAt,
	}
}

// MembershipModel is the community_memberships table.
type MembershipModel struct {
	UserID      string    `gorm:"type:varchar(36);primaryKey"`
	CommunityID string    `gorm:"type:varchar(36);primaryKey;index"`
	Role        string    `gorm:"type:varchar(20);default:'member'"`
	Status      string    `gorm:"type:varchar(20);default:'active'"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (MembershipModel) TableName() string { return "community_memberships" }

func (m *MembershipModel) ToDomain() *Membership {
	return &Membership{
		UserID:      m.UserID,
		CommunityID: m.CommunityID,
		Role:        MemberRole(m.Role),
		Status:      MemberStatus(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

func MembershipModelFromDomain(m *Membership) *MembershipModel {
	return &MembershipModel{
		UserID:      m.UserID,
		CommunityID: m.CommunityID,
		Role:        string(m.Role),
		Status:      string(m.Status),
		CreatedAt:   m.CreatedAt,
	}
}

// MessageModel is the chat_messages table. The primary key is a KSUID,
// so lexicographic order matches creation order and serves as the
// pagination cursor.
type MessageModel struct {
	MessageID      string    `gorm:"type:varchar(27);primaryKey"`
	CommunityID    string    `gorm:"type:varchar(36);index:idx_community_message,sort:desc;not null"`
	SenderID       string    `gorm:"type:varchar(36);not null"`
	SenderUsername string    `gorm:"type:varchar(50);not null"`
	Content        string    `gorm:"type:text;not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
}

func (MessageModel) TableName() string { return "chat_messages" }

func (m *MessageModel) ToDomain() ChatMessage {
	return ChatMessage{
		MessageID:      m.MessageID,
		CommunityID:    m.CommunityID,
		SenderID:       m.SenderID,
		SenderUsername: m.SenderUsername,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}

func MessageModelFromDomain(msg *ChatMessage) *MessageModel {
	return &MessageModel{
		MessageID:      msg.MessageID,
		CommunityID:    msg.CommunityID,
		SenderID:       msg.SenderID,
		SenderUsername: msg.SenderUsername,
		Content:        msg.Content,
		CreatedAt:      msg.CreatedAt,
	}
}
