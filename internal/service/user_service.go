package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnect/devconnect-backend/internal/audit"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/events"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/jwt"
	"github.com/devconnect/devconnect-backend/pkg/log"
	"github.com/devconnect/devconnect-backend/pkg/storage"
)

var allowedAvatarTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

type userServiceImpl struct {
	users         repository.UserRepository
	tokens        *jwt.Manager
	store         storage.Storage
	producer      events.RefreshProducer
	presignExpiry time.Duration
}

func NewUserService(
	users repository.UserRepository,
	tokens *jwt.Manager,
	store storage.Storage,
	producer events.RefreshProducer,
	presignExpiry time.Duration,
) UserService {
	return &userServiceImpl{
		users:         users,
		tokens:        tokens,
		store:         store,
		producer:      producer,
		presignExpiry: presignExpiry,
	}
}

func (s *userServiceImpl) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	l := log.Ctx(ctx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(req.Email),
		Username:     req.Username,
		DisplayName:  req.DisplayName,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionRegister, user.ID, "user registered")
	l.Info().Str(log.FieldUserID, user.ID).Str(log.FieldUsername, user.Username).Msg("user registered")

	return s.buildAuthResponse(ctx, user)
}

func (s *userServiceImpl) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		audit.Log(ctx, audit.ActionLoginFailed, user.ID, "login failed")
		return nil, ErrInvalidCredentials
	}

	audit.Log(ctx, audit.ActionLogin, user.ID, "user logged in")
	return s.buildAuthResponse(ctx, user)
}

func (s *userServiceImpl) RefreshTokens(ctx context.Context, refreshToken string) (*domain.AuthResponse, error) {
	claims, err := s.tokens.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != jwt.TokenTypeRefresh {
		return nil, jwt.ErrInvalidToken
	}

	// Re-read the user so the new claims carry current identity fields.
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.buildAuthResponse(ctx, user)
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	resp.AvatarURL = s.avatarURL(ctx, user.AvatarKey)
	return &resp, nil
}

func (s *userServiceImpl) GetPublicProfile(ctx context.Context, username string) (*domain.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	resp := user.PublicResponse()
	resp.AvatarURL = s.avatarURL(ctx, user.AvatarKey)
	return &resp, nil
}

func (s *userServiceImpl) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	audit.Log(ctx, audit.ActionUpdateProfile, userID, "profile updated")

	// The embedding and search index catch up in the background.
	if err := s.producer.Publish(ctx, &events.RefreshEvent{
		EntityType: events.EntityUser,
		EntityID:   userID,
	}); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Msg("failed to publish profile refresh event")
	}

	resp := user.ToResponse()
	resp.AvatarURL = s.avatarURL(ctx, user.AvatarKey)
	return &resp, nil
}

func (s *userServiceImpl) ChangePassword(ctx context.Context, userID string, req *domain.ChangePasswordRequest) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	audit.Log(ctx, audit.ActionChangePassword, userID, "password changed")
	return nil
}

func (s *userServiceImpl) PresignAvatarUpload(ctx context.Context, userID string, req *domain.AvatarPresignRequest) (*domain.AvatarPresignResponse, error) {
	ext, ok := allowedAvatarTypes[req.ContentType]
	if !ok {
		return nil, fmt.Errorf("unsupported content type %q", req.ContentType)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), ext)
	uploadURL, err := s.store.GetUploadURL(ctx, key, req.ContentType, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	user.AvatarKey = key
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	return &domain.AvatarPresignResponse{
		UploadURL: uploadURL,
		Key:       key,
		ExpiresIn: int(s.presignExpiry.Seconds()),
	}, nil
}

func (s *userServiceImpl) buildAuthResponse(ctx context.Context, user *domain.User) (*domain.AuthResponse, error) {
	accessToken, refreshToken, accessExp, _, err := s.tokens.GenerateTokenPair(user.ID, user.Email, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	resp := user.ToResponse()
	resp.AvatarURL = s.avatarURL(ctx, user.AvatarKey)

	return &domain.AuthResponse{
		User:         resp,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    accessExp,
	}, nil
}

func (s *userServiceImpl) avatarURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	url, err := s.store.GetURL(ctx, key, s.presignExpiry)
	if err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str("key", key).Msg("failed to presign avatar url")
		return ""
	}
	return url
}
