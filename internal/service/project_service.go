package service

import (
	"context"

	"github.com/devconnect/devconnect-backend/internal/audit"
	"github.com/devconnect/devconnect-backend/internal/domain"
	"github.com/devconnect/devconnect-backend/internal/events"
	"github.com/devconnect/devconnect-backend/internal/repository"
	"github.com/devconnect/devconnect-backend/pkg/log"
)

type projectServiceImpl struct {
	projects     repository.ProjectRepository
	applications repository.ApplicationRepository
	producer     events.RefreshProducer
}

func NewProjectService(
	projects repository.ProjectRepository,
	applications repository.ApplicationRepository,
	producer events.RefreshProducer,
) ProjectService {
	return &projectServiceImpl{
		projects:     projects,
		applications: applications,
		producer:     producer,
	}
}

func (s *projectServiceImpl) Create(ctx context.Context, ownerID, ownerUsername string, req *domain.CreateProjectRequest) (*domain.Project, error) {
	project := &domain.Project{
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
		Title:         req.Title,
		Description:   req.Description,
		TechStack:     req.TechStack,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionCreateProject, ownerID, project.ID, "project created")
	s.publishRefresh(ctx, project.ID, false)

	return project, nil
}

func (s *projectServiceImpl) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectServiceImpl) List(ctx context.Context, req *domain.ListProjectsRequest) (*domain.ListProjectsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	projects, total, err := s.projects.List(ctx, page, pageSize, req.Status)
	if err != nil {
		return nil, err
	}

	totalPages := (total + pageSize - 1) / pageSize
	return &domain.ListProjectsResponse{
		Projects:   projects,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

func (s *projectServiceImpl) Update(ctx context.Context, id, userID string, req *domain.UpdateProjectRequest) (*domain.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrNotOwner
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.TechStack != nil {
		project.TechStack = req.TechStack
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionUpdateProject, userID, id, "project updated")
	s.publishRefresh(ctx, id, false)

	return project, nil
}

func (s *projectServiceImpl) Close(ctx context.Context, id, userID string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotOwner
	}

	if err := s.projects.UpdateStatus(ctx, id, domain.ProjectStatusClosed); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionCloseProject, userID, id, "project closed")
	// Closed projects drop out of similarity search, keep the index in step.
	s.publishRefresh(ctx, id, true)
	return nil
}

func (s *projectServiceImpl) Delete(ctx context.Context, id, userID string) error {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if project.OwnerID != userID {
		return ErrNotOwner
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	audit.LogWithDetail(ctx, audit.ActionDeleteProject, userID, id, "project deleted")
	s.publishRefresh(ctx, id, true)
	return nil
}

func (s *projectServiceImpl) Apply(ctx context.Context, projectID, userID, username string, req *domain.ApplyRequest) (*domain.ProjectApplication, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID == userID {
		return nil, ErrOwnProject
	}
	if project.Status != domain.ProjectStatusOpen {
		return nil, ErrProjectClosed
	}

	app := &domain.ProjectApplication{
		ProjectID: projectID,
		UserID:    userID,
		Username:  username,
		Message:   req.Message,
	}

	if err := s.applications.Create(ctx, app); err != nil {
		return nil, err
	}

	audit.LogWithDetail(ctx, audit.ActionApplyProject, userID, projectID, "applied to project")
	return app, nil
}

func (s *projectServiceImpl) ListApplications(ctx context.Context, projectID, userID string) ([]domain.ProjectApplication, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrNotOwner
	}

	return s.applications.GetByProject(ctx, projectID)
}

func (s *projectServiceImpl) MyApplications(ctx context.Context, userID string) ([]domain.ProjectApplication, error) {
	return s.applications.GetByUser(ctx, userID)
}

func (s *projectServiceImpl) DecideApplication(ctx context.Context, applicationID, userID string, accept bool) (*domain.ProjectApplication, error) {
	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return nil, ErrAlreadyDecided
	}

	project, err := s.projects.GetByID(ctx, app.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != userID {
		return nil, ErrNotOwner
	}

	status := domain.ApplicationStatusRejected
	if accept {
		status = domain.ApplicationStatusAccepted
	}

	if err := s.applications.UpdateStatus(ctx, applicationID, status); err != nil {
		return nil, err
	}

	app.Status = status
	audit.LogWithDetail(ctx, audit.ActionDecideApplication, userID, applicationID, string(status))
	return app, nil
}

func (s *projectServiceImpl) publishRefresh(ctx context.Context, projectID string, deleted bool) {
	if err := s.producer.Publish(ctx, &events.RefreshEvent{
		EntityType: events.EntityProject,
		EntityID:   projectID,
		Deleted:    deleted,
	}); err != nil {
		l := log.Ctx(ctx)
		l.Warn().Err(err).Str(log.FieldProjectID, projectID).Msg("failed to publish project refresh event")
	}
}
