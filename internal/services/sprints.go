package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"gorm.io/gorm/clause"
)

func validateSprintWindow(start, end time.Time) error {
	if end.Before(start) {
		return apperr.Invalid("end_date", "must not be before start_date")
	}
	return nil
}

// sprintMemberProject locks the project row so concurrent issue-set changes
// within one project are applied one at a time.
func sprintMemberProject(ctx context.Context, r *store.Resolver, projectID string, principal auth.Principal) (*models.Project, error) {
	project, err := r.GetProjectForUpdate(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := requireMember(project, principal); err != nil {
		return nil, err
	}

	return project, nil
}

// assignIssues links each issue, in order, to the sprint. An issue from
// another project fails the whole assignment with a NotAuthorized error.
func assignIssues(ctx context.Context, r *store.Resolver, sprint *models.Sprint, issueIDs []string) error {
	seen := make(map[string]bool, len(issueIDs))

	for _, id := range issueIDs {
		id = strings.TrimSpace(id)
		if seen[id] {
			continue
		}
		seen[id] = true

		issue, err := r.GetIssue(ctx, id)
		if err != nil {
			return err
		}

		if issue.ProjectID != sprint.ProjectID {
			return apperr.NotAuthorized(fmt.Sprintf("issue %s does not belong to project %s", issue.ID, sprint.ProjectID))
		}

		if err := r.DB(ctx).Model(&models.Issue{}).Where("id = ?", issue.ID).Update("sprint_id", sprint.ID).Error; err != nil {
			return fmt.Errorf("assign issue %s: %w", issue.ID, err)
		}

		issue.SprintID = &sprint.ID
		sprint.Issues = append(sprint.Issues, *issue)
	}

	return nil
}

func detachIssues(ctx context.Context, r *store.Resolver, sprint *models.Sprint) error {
	if err := r.DB(ctx).Model(&models.Issue{}).Where("sprint_id = ?", sprint.ID).Update("sprint_id", nil).Error; err != nil {
		return fmt.Errorf("detach sprint issues: %w", err)
	}

	sprint.Issues = nil
	return nil
}

func (s *Service) CreateSprint(ctx context.Context, principal auth.Principal, projectID string, req types.CreateSprintRequest) (types.SprintResponse, error) {
	if err := validateSprintWindow(req.StartDate, req.EndDate); err != nil {
		return types.SprintResponse{}, err
	}

	var sprint models.Sprint

	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := sprintMemberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		sprint = models.Sprint{
			ProjectID: project.ID,
			Name:      strings.TrimSpace(req.Name),
			StartDate: req.StartDate.UTC(),
			EndDate:   req.EndDate.UTC(),
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&sprint).Error; err != nil {
			return fmt.Errorf("create sprint: %w", err)
		}

		return assignIssues(ctx, r, &sprint, req.IssueIDs)
	})

	if err != nil {
		return types.SprintResponse{}, err
	}

	s.publish(sprint.ProjectID, types.EntitySprint)

	return types.NewSprintResponse(sprint), nil
}

func (s *Service) ListSprints(ctx context.Context, principal auth.Principal, projectID string) ([]types.SprintResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return nil, err
	}

	var sprints []models.Sprint

	if err := s.resolver.DB(ctx).
		Preload("Issues", orderByCreation).
		Where("project_id = ?", project.ID).
		Order("start_date, created_at").
		Find(&sprints).Error; err != nil {
		return nil, fmt.Errorf("list sprints: %w", err)
	}

	response := make([]types.SprintResponse, 0, len(sprints))
	for _, sprint := range sprints {
		response = append(response, types.NewSprintResponse(sprint))
	}

	return response, nil
}

func (s *Service) GetSprint(ctx context.Context, principal auth.Principal, projectID, sprintID string) (types.SprintResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return types.SprintResponse{}, err
	}

	sprint, err := s.resolver.GetSprintInProject(ctx, project.ID, sprintID)
	if err != nil {
		return types.SprintResponse{}, err
	}

	return types.NewSprintResponse(*sprint), nil
}

func (s *Service) ListSprintIssues(ctx context.Context, principal auth.Principal, projectID, sprintID string) ([]types.IssueResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return nil, err
	}

	sprint, err := s.resolver.GetSprintInProject(ctx, project.ID, sprintID)
	if err != nil {
		return nil, err
	}

	return types.NewIssueResponses(sprint.Issues), nil
}

// UpdateSprint applies present fields. A present issue list replaces the
// sprint's issue set: current members are detached before the new set is
// assigned.
func (s *Service) UpdateSprint(ctx context.Context, principal auth.Principal, projectID, sprintID string, req types.UpdateSprintRequest) (types.SprintResponse, error) {
	var sprint *models.Sprint

	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := sprintMemberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		sprint, err = r.GetSprintInProject(ctx, project.ID, sprintID)
		if err != nil {
			return err
		}

		if name := trimmed(req.Name); name != nil {
			sprint.Name = *name
		}
		if req.StartDate != nil {
			sprint.StartDate = req.StartDate.UTC()
		}
		if req.EndDate != nil {
			sprint.EndDate = req.EndDate.UTC()
		}

		if err := validateSprintWindow(sprint.StartDate, sprint.EndDate); err != nil {
			return err
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(sprint).Error; err != nil {
			return fmt.Errorf("update sprint: %w", err)
		}

		if req.IssueIDs == nil {
			return nil
		}

		if err := detachIssues(ctx, r, sprint); err != nil {
			return err
		}

		return assignIssues(ctx, r, sprint, *req.IssueIDs)
	})

	if err != nil {
		return types.SprintResponse{}, err
	}

	s.publish(sprint.ProjectID, types.EntitySprint)

	return types.NewSprintResponse(*sprint), nil
}

// DeleteSprint detaches member issues before removing the sprint.
func (s *Service) DeleteSprint(ctx context.Context, principal auth.Principal, projectID, sprintID string) error {
	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := sprintMemberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		sprint, err := r.GetSprintInProject(ctx, project.ID, sprintID)
		if err != nil {
			return err
		}

		if err := detachIssues(ctx, r, sprint); err != nil {
			return err
		}

		if err := r.DB(ctx).Delete(&models.Sprint{}, "id = ?", sprint.ID).Error; err != nil {
			return fmt.Errorf("delete sprint: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntitySprint)

	return nil
}
