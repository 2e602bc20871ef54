package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolver loads entities by identifier and reports absent rows as typed
// NotFound errors. Bind it to a transaction with WithTx so reads that precede a
// write see the same snapshot as the write.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

func (r *Resolver) WithTx(tx *gorm.DB) *Resolver {
	return &Resolver{db: tx}
}

func (r *Resolver) DB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *Resolver) first(dest interface{}, kind apperr.Kind, id string, query *gorm.DB, conds ...interface{}) error {
	err := query.First(dest, conds...).Error

	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(kind, id)
	}

	return fmt.Errorf("load %s %s: %w", kind, id, err)
}

func (r *Resolver) projectQuery(ctx context.Context) *gorm.DB {
	return r.DB(ctx).Preload("Creator").Preload("Collaborators.User")
}

func (r *Resolver) GetProject(ctx context.Context, id string) (*models.Project, error) {
	var project models.Project

	if err := r.first(&project, apperr.KindProject, id, r.projectQuery(ctx), "id = ?", id); err != nil {
		return nil, err
	}

	return &project, nil
}

// GetProjectForUpdate is GetProject with a row lock held until the enclosing
// transaction ends. Dialects without row locks fall back to a plain read.
func (r *Resolver) GetProjectForUpdate(ctx context.Context, id string) (*models.Project, error) {
	query := r.projectQuery(ctx)

	if r.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var project models.Project

	if err := r.first(&project, apperr.KindProject, id, query, "id = ?", id); err != nil {
		return nil, err
	}

	return &project, nil
}

func (r *Resolver) GetUser(ctx context.Context, id string) (*models.User, error) {
	var user models.User

	if err := r.first(&user, apperr.KindUser, id, r.DB(ctx), "id = ?", id); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Resolver) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	if err := r.first(&user, apperr.KindUser, email, r.DB(ctx), "email = ?", email); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *Resolver) GetIssue(ctx context.Context, id string) (*models.Issue, error) {
	var issue models.Issue

	if err := r.first(&issue, apperr.KindIssue, id, r.DB(ctx), "id = ?", id); err != nil {
		return nil, err
	}

	return &issue, nil
}

// GetIssueInProject fails with IssueNotFound when the issue exists but
// belongs to another project.
func (r *Resolver) GetIssueInProject(ctx context.Context, projectID, id string) (*models.Issue, error) {
	var issue models.Issue

	if err := r.first(&issue, apperr.KindIssue, id, r.DB(ctx), "id = ? AND project_id = ?", id, projectID); err != nil {
		return nil, err
	}

	return &issue, nil
}

func (r *Resolver) GetSprintInProject(ctx context.Context, projectID, id string) (*models.Sprint, error) {
	var sprint models.Sprint

	query := r.DB(ctx).Preload("Issues", func(db *gorm.DB) *gorm.DB {
		return db.Order("issues.created_at, issues.id")
	})

	if err := r.first(&sprint, apperr.KindSprint, id, query, "id = ? AND project_id = ?", id, projectID); err != nil {
		return nil, err
	}

	return &sprint, nil
}

func (r *Resolver) GetReleaseInProject(ctx context.Context, projectID, id string) (*models.Release, error) {
	var release models.Release

	query := r.DB(ctx).Preload("Issues", func(db *gorm.DB) *gorm.DB {
		return db.Order("issues.created_at, issues.id")
	})

	if err := r.first(&release, apperr.KindRelease, id, query, "id = ? AND project_id = ?", id, projectID); err != nil {
		return nil, err
	}

	return &release, nil
}

func (r *Resolver) GetTaskInIssue(ctx context.Context, issueID, id string) (*models.Task, error) {
	var task models.Task

	if err := r.first(&task, apperr.KindTask, id, r.DB(ctx), "id = ? AND issue_id = ?", id, issueID); err != nil {
		return nil, err
	}

	return &task, nil
}

func (r *Resolver) GetTestInIssue(ctx context.Context, issueID, id string) (*models.TestCase, error) {
	var test models.TestCase

	if err := r.first(&test, apperr.KindTest, id, r.DB(ctx), "id = ? AND issue_id = ?", id, issueID); err != nil {
		return nil, err
	}

	return &test, nil
}

func (r *Resolver) GetDocumentation(ctx context.Context, id string) (*models.Documentation, error) {
	var doc models.Documentation

	if err := r.first(&doc, apperr.KindDocumentation, id, r.DB(ctx), "id = ?", id); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *Resolver) GetDocumentationInProject(ctx context.Context, projectID, id string) (*models.Documentation, error) {
	var doc models.Documentation

	if err := r.first(&doc, apperr.KindDocumentation, id, r.DB(ctx), "id = ? AND project_id = ?", id, projectID); err != nil {
		return nil, err
	}

	return &doc, nil
}

func (r *Resolver) GetDocumentationIssue(ctx context.Context, documentationID, issueID string) (*models.DocumentationIssue, error) {
	var link models.DocumentationIssue

	query := r.DB(ctx).Preload("Issue")
	id := documentationID + "/" + issueID

	if err := r.first(&link, apperr.KindDocumentationIssue, id, query, "documentation_id = ? AND issue_id = ?", documentationID, issueID); err != nil {
		return nil, err
	}

	return &link, nil
}
