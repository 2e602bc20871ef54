package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/monocle-dev/planboard/internal/access"
	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"gorm.io/gorm/clause"
)

func (s *Service) CreateProject(ctx context.Context, principal auth.Principal, req types.CreateProjectRequest) (types.ProjectResponse, error) {
	var project *models.Project

	err := s.inTx(ctx, func(r *store.Resolver) error {
		creator, err := actor(ctx, r, principal)
		if err != nil {
			return err
		}

		created := models.Project{
			Name:           strings.TrimSpace(req.Name),
			Description:    strings.TrimSpace(req.Description),
			CreatorID:      creator.ID,
			DiscordWebhook: strings.TrimSpace(req.DiscordWebhook),
			SlackWebhook:   strings.TrimSpace(req.SlackWebhook),
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&created).Error; err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		project, err = r.GetProject(ctx, created.ID)
		return err
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	return types.NewProjectResponse(*project), nil
}

func (s *Service) GetProject(ctx context.Context, principal auth.Principal, projectID string) (types.ProjectResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return types.ProjectResponse{}, err
	}

	return types.NewProjectResponse(*project), nil
}

// ListProjects returns every project the principal created or collaborates on.
func (s *Service) ListProjects(ctx context.Context, principal auth.Principal) ([]types.ProjectResponse, error) {
	user, err := actor(ctx, s.resolver, principal)
	if err != nil {
		return nil, err
	}

	db := s.resolver.DB(ctx)
	memberships := db.Model(&models.ProjectCollaborator{}).Select("project_id").Where("user_id = ?", user.ID)

	var projects []models.Project

	if err := db.Preload("Creator").Preload("Collaborators.User").
		Where("creator_id = ?", user.ID).
		Or("id IN (?)", memberships).
		Order("created_at, id").
		Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}

	response := make([]types.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		response = append(response, types.NewProjectResponse(project))
	}

	return response, nil
}

// UpdateProject is restricted to the project creator.
func (s *Service) UpdateProject(ctx context.Context, principal auth.Principal, projectID string, req types.UpdateProjectRequest) (types.ProjectResponse, error) {
	var project *models.Project

	err := s.inTx(ctx, func(r *store.Resolver) error {
		var err error

		project, err = r.GetProject(ctx, projectID)
		if err != nil {
			return err
		}

		if err := access.RequireCreator(project, principal); err != nil {
			return err
		}

		if name := trimmed(req.Name); name != nil {
			if *name == "" {
				return apperr.Invalid("name", "must not be blank")
			}
			project.Name = *name
		}
		if description := trimmed(req.Description); description != nil {
			project.Description = *description
		}
		if webhook := trimmed(req.DiscordWebhook); webhook != nil {
			project.DiscordWebhook = *webhook
		}
		if webhook := trimmed(req.SlackWebhook); webhook != nil {
			project.SlackWebhook = *webhook
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(project).Error; err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	s.publish(project.ID, types.EntityProject)

	return types.NewProjectResponse(*project), nil
}

func (s *Service) AddCollaborator(ctx context.Context, principal auth.Principal, projectID string, req types.AddCollaboratorRequest) (types.ProjectResponse, error) {
	var project *models.Project

	err := s.inTx(ctx, func(r *store.Resolver) error {
		var err error

		project, err = r.GetProjectForUpdate(ctx, projectID)
		if err != nil {
			return err
		}

		if err := access.RequireCreator(project, principal); err != nil {
			return err
		}

		user, err := r.GetUserByEmail(ctx, normalizeEmail(req.Email))
		if err != nil {
			return err
		}

		if user.ID == project.CreatorID {
			return apperr.Conflict("user is the project creator")
		}

		for _, collaborator := range project.Collaborators {
			if collaborator.UserID == user.ID {
				return apperr.Conflict("user is already a collaborator")
			}
		}

		membership := models.ProjectCollaborator{ProjectID: project.ID, UserID: user.ID}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&membership).Error; err != nil {
			if store.IsUniqueViolation(err) {
				return apperr.Conflict("user is already a collaborator")
			}
			return fmt.Errorf("add collaborator: %w", err)
		}

		project, err = r.GetProject(ctx, project.ID)
		return err
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	s.publish(project.ID, types.EntityProject)

	return types.NewProjectResponse(*project), nil
}

func (s *Service) RemoveCollaborator(ctx context.Context, principal auth.Principal, projectID, userID string) (types.ProjectResponse, error) {
	var project *models.Project

	err := s.inTx(ctx, func(r *store.Resolver) error {
		var err error

		project, err = r.GetProjectForUpdate(ctx, projectID)
		if err != nil {
			return err
		}

		if err := access.RequireCreator(project, principal); err != nil {
			return err
		}

		var membership *models.ProjectCollaborator
		for i := range project.Collaborators {
			if project.Collaborators[i].UserID == userID {
				membership = &project.Collaborators[i]
				break
			}
		}

		if membership == nil {
			return apperr.NotFound(apperr.KindUser, userID)
		}

		if err := r.DB(ctx).Delete(&models.ProjectCollaborator{}, "id = ?", membership.ID).Error; err != nil {
			return fmt.Errorf("remove collaborator: %w", err)
		}

		project, err = r.GetProject(ctx, project.ID)
		return err
	})

	if err != nil {
		return types.ProjectResponse{}, err
	}

	s.publish(project.ID, types.EntityProject)

	return types.NewProjectResponse(*project), nil
}
