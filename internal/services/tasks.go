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

func parseTaskStatus(value string) (models.TaskStatus, error) {
	status := models.TaskStatus(strings.ToUpper(strings.TrimSpace(value)))
	if !status.Valid() {
		return "", apperr.Invalid("status", "must be one of TODO, IN_PROGRESS, DONE")
	}
	return status, nil
}

// memberIssue authorizes the principal against the project and resolves an
// issue scoped to it.
func memberIssue(ctx context.Context, r *store.Resolver, projectID, issueID string, principal auth.Principal) (*models.Issue, error) {
	project, err := memberProject(ctx, r, projectID, principal)
	if err != nil {
		return nil, err
	}

	return r.GetIssueInProject(ctx, project.ID, issueID)
}

func (s *Service) CreateTask(ctx context.Context, principal auth.Principal, projectID, issueID string, req types.CreateTaskRequest) (types.TaskResponse, error) {
	status := models.TaskTodo
	if req.Status != "" {
		var err error
		if status, err = parseTaskStatus(req.Status); err != nil {
			return types.TaskResponse{}, err
		}
	}

	var task models.Task

	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
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

		task = models.Task{
			ProjectID:   issue.ProjectID,
			IssueID:     issue.ID,
			Title:       strings.TrimSpace(req.Title),
			Description: strings.TrimSpace(req.Description),
			Status:      status,
			CreatorID:   creator.ID,
			AssigneeID:  assigneeID,
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&task).Error; err != nil {
			return fmt.Errorf("create task: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.TaskResponse{}, err
	}

	s.publish(task.ProjectID, types.EntityTask)

	return types.NewTaskResponse(task), nil
}

func (s *Service) ListTasks(ctx context.Context, principal auth.Principal, projectID, issueID string) ([]types.TaskResponse, error) {
	issue, err := memberIssue(ctx, s.resolver, projectID, issueID, principal)
	if err != nil {
		return nil, err
	}

	var tasks []models.Task

	if err := s.resolver.DB(ctx).Where("issue_id = ?", issue.ID).Order("created_at, id").Find(&tasks).Error; err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	response := make([]types.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		response = append(response, types.NewTaskResponse(task))
	}

	return response, nil
}

// UpdateTask applies every present field after trimming, blank values included.
func (s *Service) UpdateTask(ctx context.Context, principal auth.Principal, projectID, issueID, taskID string, req types.UpdateTaskRequest) (types.TaskResponse, error) {
	var task *models.Task

	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
		if err != nil {
			return err
		}

		task, err = r.GetTaskInIssue(ctx, issue.ID, taskID)
		if err != nil {
			return err
		}

		if title := trimmed(req.Title); title != nil {
			task.Title = *title
		}
		if description := trimmed(req.Description); description != nil {
			task.Description = *description
		}
		if req.Status != nil {
			if task.Status, err = parseTaskStatus(*req.Status); err != nil {
				return err
			}
		}
		if req.AssigneeID != nil {
			if task.AssigneeID, err = resolveAssignee(ctx, r, req.AssigneeID); err != nil {
				return err
			}
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(task).Error; err != nil {
			return fmt.Errorf("update task: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.TaskResponse{}, err
	}

	s.publish(task.ProjectID, types.EntityTask)

	return types.NewTaskResponse(*task), nil
}

func (s *Service) DeleteTask(ctx context.Context, principal auth.Principal, projectID, issueID, taskID string) error {
	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
		if err != nil {
			return err
		}

		task, err := r.GetTaskInIssue(ctx, issue.ID, taskID)
		if err != nil {
			return err
		}

		if err := r.DB(ctx).Delete(&models.Task{}, "id = ?", task.ID).Error; err != nil {
			return fmt.Errorf("delete task: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntityTask)

	return nil
}
