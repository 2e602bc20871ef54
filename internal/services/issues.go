package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"gorm.io/gorm/clause"
)

func parsePriority(value string) (models.Priority, error) {
	priority := models.Priority(strings.ToUpper(strings.TrimSpace(value)))
	if !priority.Valid() {
		return "", apperr.Invalid("priority", "must be one of LOW, MEDIUM, HIGH")
	}
	return priority, nil
}

func parseIssueStatus(value string) (models.IssueStatus, error) {
	status := models.IssueStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", apperr.Invalid("status", "must be one of TODO, IN_PROGRESS, CLOSED")
	}
	return status, nil
}

func (s *Service) CreateIssue(ctx context.Context, principal auth.Principal, projectID string, req types.CreateIssueRequest) (types.IssueResponse, error) {
	priority, err := parsePriority(req.Priority)
	if err != nil {
		return types.IssueResponse{}, err
	}

	status := models.IssueTodo
	if req.Status != "" {
		if status, err = parseIssueStatus(req.Status); err != nil {
			return types.IssueResponse{}, err
		}
	}

	if req.StoryPoints < 0 {
		return types.IssueResponse{}, apperr.Invalid("story_points", "must not be negative")
	}

	var issue models.Issue

	err = s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		creator, err := actor(ctx, r, principal)
		if err != nil {
			return err
		}

		assigneeID, err := resolveAssignee(ctx, r, req.AssigneeID)
		if err != nil {
			return err
		}

		issue = models.Issue{
			ProjectID:   project.ID,
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Priority:    priority,
			Status:      status,
			StoryPoints: req.StoryPoints,
			CreatorID:   creator.ID,
			AssigneeID:  assigneeID,
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&issue).Error; err != nil {
			return fmt.Errorf("create issue: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.IssueResponse{}, err
	}

	s.publish(issue.ProjectID, types.EntityIssue)

	return types.NewIssueResponse(issue), nil
}

func (s *Service) ListIssues(ctx context.Context, principal auth.Principal, projectID string) ([]types.IssueResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return nil, err
	}

	var issues []models.Issue

	if err := s.resolver.DB(ctx).Where("project_id = ?", project.ID).Order("created_at, id").Find(&issues).Error; err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	return types.NewIssueResponses(issues), nil
}

func (s *Service) GetIssue(ctx context.Context, principal auth.Principal, projectID, issueID string) (types.IssueResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return types.IssueResponse{}, err
	}

	issue, err := s.resolver.GetIssueInProject(ctx, project.ID, issueID)
	if err != nil {
		return types.IssueResponse{}, err
	}

	return types.NewIssueResponse(*issue), nil
}

// UpdateIssue applies only the fields present in req.
func (s *Service) UpdateIssue(ctx context.Context, principal auth.Principal, projectID, issueID string, req types.UpdateIssueRequest) (types.IssueResponse, error) {
	var issue *models.Issue

	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		issue, err = r.GetIssueInProject(ctx, project.ID, issueID)
		if err != nil {
			return err
		}

		if title := trimmed(req.Title); title != nil {
			issue.Title = *title
		}
		if description := trimmed(req.Description); description != nil {
			issue.Description = *description
		}
		if req.Priority != nil {
			if issue.Priority, err = parsePriority(*req.Priority); err != nil {
				return err
			}
		}
		if req.Status != nil {
			if issue.Status, err = parseIssueStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.StoryPoints != nil {
			if *req.StoryPoints < 0 {
				return apperr.Invalid("story_points", "must not be negative")
			}
			issue.StoryPoints = *req.StoryPoints
		}
		if req.AssigneeID != nil {
			if issue.AssigneeID, err = resolveAssignee(ctx, r, req.AssigneeID); err != nil {
				return err
			}
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(issue).Error; err != nil {
			return fmt.Errorf("update issue: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.IssueResponse{}, err
	}

	s.publish(issue.ProjectID, types.EntityIssue)

	return types.NewIssueResponse(*issue), nil
}

// DeleteIssue removes the issue together with its tasks, tests, documentation
// links and release memberships.
func (s *Service) DeleteIssue(ctx context.Context, principal auth.Principal, projectID, issueID string) error {
	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		issue, err := r.GetIssueInProject(ctx, project.ID, issueID)
		if err != nil {
			return err
		}

		db := r.DB(ctx)

		dependents := []interface{}{
			&models.Task{},
			&models.TestCase{},
			&models.DocumentationIssue{},
		}

		for _, dependent := range dependents {
			if err := db.Where("issue_id = ?", issue.ID).Delete(dependent).Error; err != nil {
				return fmt.Errorf("delete issue dependents: %w", err)
			}
		}

		if err := db.Exec("DELETE FROM release_issues WHERE issue_id = ?", issue.ID).Error; err != nil {
			return fmt.Errorf("delete release memberships: %w", err)
		}

		if err := db.Delete(&models.Issue{}, "id = ?", issue.ID).Error; err != nil {
			return fmt.Errorf("delete issue: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntityIssue)

	return nil
}
