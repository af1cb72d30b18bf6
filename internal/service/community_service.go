package service

import (
	"context"
	"errors"

	"github.com/devconnect/devconnect-backend/internal/audit"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type communityServiceImpl struct {
	communities repository.CommunityRepository
	memberships repository.MembershipRepository
}

func NewCommunityService(
	communities repository.CommunityRepository,
	memberships repository.MembershipRepository,
) CommunityService {
	return &communityServiceImpl{
		communities: communities,
		memberships: memberships,
	}
}

func (s *communityServiceImpl) Create(ctx context.Context, adminID, adminUsername string, req *domain.CreateCommunityRequest) (*domain.Community, error) {
	community := &domain.Community{
		AdminID:       adminID,
		AdminUsername: adminUsername,
		Name:          req.Name,
		Description:   req.Description,
		IsPrivate:     req.IsPrivate,
	}

	if err := s.communities.Create(ctx, community); err != nil {
		return nil, err
	}

	// The creator is the first active member.
	membership := &domain.Membership{
		UserID:      adminID,
		CommunityID: community.ID,
		Role:        domain.MemberRoleAdmin,
		Status:      domain.MemberStatusActive,
	}
	if err := s.memberships.Upsert(ctx, membership); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionCreateCommunity, adminID, community.ID, "community created")
	return community, nil
}

func (s *communityServiceImpl) Get(ctx context.Context, id string) (*domain.Community, error) {
	return s.communities.GetByID(ctx, id)
}

func (s *communityServiceImpl) Explore(ctx context.Context, req *domain.ExploreCommunitiesRequest) (*domain.ListCommunitiesResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	communities, total, err := s.communities.Explore(ctx, req.Query, page, pageSize)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &domain.ListCommunitiesResponse{
		Communities: communities,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		TotalPages:  totalPages,
	}, nil
}

func (s *communityServiceImpl) Join(ctx context.Context, communityID, userID string) error {
	community, err := s.communities.GetByID(ctx, communityID)
	if err != nil {
		return err
	}
	if community.IsPrivate && community.AdminID != userID {
		return ErrPrivateCommunity
	}

	existing, err := s.memberships.Get(ctx, userID, communityID)
	if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
		return err
	}
	if existing != nil && existing.Status == domain.MemberStatusActive {
		return ErrAlreadyMember
	}

	membership := &domain.Membership{
		UserID:      userID,
		CommunityID: communityID,
		Role:        domain.MemberRoleMember,
		Status:      domain.MemberStatusActive,
	}
	if existing != nil {
		membership.Role = existing.Role
	}
	if err := s.memberships.Upsert(ctx, membership); err != nil {
		return err
	}

	if err := s.communities.AdjustMemberCount(ctx, communityID, 1); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to bump member count")
	}

	audit.LogWithDetail(ctx, audit.ActionJoinCommunity, userID, communityID, "joined community")
	return nil
}

func (s *communityServiceImpl) Leave(ctx context.Context, communityID, userID string) error {
	membership, err := s.memberships.Get(ctx, userID, communityID)
	if err != nil {
		return err
	}
	if membership.Status != domain.MemberStatusActive {
		return ErrNotAMember
	}

	if err := s.memberships.SetStatus(ctx, userID, communityID, domain.MemberStatusLeft); err != nil {
		return err
	}

	if err := s.communities.AdjustMemberCount(ctx, communityID, -1); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldCommunityID, communityID).Msg("failed to drop member count")
	}

	audit.LogWithDetail(ctx, audit.ActionLeaveCommunity, userID, communityID, "left community")
	return nil
}

func (s *communityServiceImpl) MyCommunities(ctx context.Context, userID string) ([]domain.Community, error) {
	ids, err := s.memberships.GetUserCommunities(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.communities.GetByIDs(ctx, ids)
}

func (s *communityServiceImpl) HostedCommunities(ctx context.Context, userID string) ([]domain.Community, error) {
	return s.communities.GetByAdmin(ctx, userID)
}

func (s *communityServiceImpl) IsActiveMember(ctx context.Context, userID, communityID string) (bool, error) {
	return s.memberships.IsActiveMember(ctx, userID, communityID)
}
