package services

import (
	"context"
	"fmt"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"gorm.io/gorm/clause"
)

// memberDocumentation resolves a documentation page and authorizes the
// principal against the page's project.
func memberDocumentation(ctx context.Context, r *store.Resolver, documentationID string, principal auth.Principal) (*models.Documentation, error) {
	doc, err := r.GetDocumentation(ctx, documentationID)
	if err != nil {
		return nil, err
	}

	if _, err := memberProject(ctx, r, doc.ProjectID, principal); err != nil {
		return nil, err
	}

	return doc, nil
}

// LinkDocumentationIssue associates a documentation page with an issue of the
// same project. Each pair may be linked once.
func (s *Service) LinkDocumentationIssue(ctx context.Context, principal auth.Principal, req types.LinkDocumentationIssueRequest) (types.DocumentationIssueResponse, error) {
	var link models.DocumentationIssue

	err := s.inTx(ctx, func(r *store.Resolver) error {
		doc, err := memberDocumentation(ctx, r, req.DocumentationID, principal)
		if err != nil {
			return err
		}

		issue, err := r.GetIssue(ctx, req.IssueID)
		if err != nil {
			return err
		}

		if issue.ProjectID != doc.ProjectID {
			return apperr.IssueDoesntBelongToProject(doc.ProjectID, issue.ID)
		}

		_, err = r.GetDocumentationIssue(ctx, doc.ID, issue.ID)
		if err == nil {
			return apperr.Conflict("documentation is already linked to this issue")
		}
		if !apperr.IsNotFound(err, apperr.KindDocumentationIssue) {
			return err
		}

		link = models.DocumentationIssue{
			DocumentationID: doc.ID,
			IssueID:         issue.ID,
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&link).Error; err != nil {
			if store.IsUniqueViolation(err) {
				return apperr.Conflict("documentation is already linked to this issue")
			}
			return fmt.Errorf("link documentation issue: %w", err)
		}

		link.Issue = *issue
		return nil
	})

	if err != nil {
		return types.DocumentationIssueResponse{}, err
	}

	s.publish(link.Issue.ProjectID, types.EntityDocumentationIssue)

	return types.NewDocumentationIssueResponse(link), nil
}

func (s *Service) UnlinkDocumentationIssue(ctx context.Context, principal auth.Principal, documentationID, issueID string) error {
	var projectID string

	err := s.inTx(ctx, func(r *store.Resolver) error {
		doc, err := memberDocumentation(ctx, r, documentationID, principal)
		if err != nil {
			return err
		}

		link, err := r.GetDocumentationIssue(ctx, doc.ID, issueID)
		if err != nil {
			return err
		}

		if err := r.DB(ctx).Delete(&models.DocumentationIssue{}, "id = ?", link.ID).Error; err != nil {
			return fmt.Errorf("unlink documentation issue: %w", err)
		}

		projectID = doc.ProjectID
		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntityDocumentationIssue)

	return nil
}

func (s *Service) ListIssuesForDocumentation(ctx context.Context, principal auth.Principal, documentationID string) ([]types.DocumentationIssueResponse, error) {
	doc, err := memberDocumentation(ctx, s.resolver, documentationID, principal)
	if err != nil {
		return nil, err
	}

	return s.listLinks(ctx, "documentation_issues.documentation_id = ?", doc.ID)
}

func (s *Service) ListDocumentationForIssue(ctx context.Context, principal auth.Principal, issueID string) ([]types.DocumentationIssueResponse, error) {
	issue, err := s.resolver.GetIssue(ctx, issueID)
	if err != nil {
		return nil, err
	}

	if _, err := memberProject(ctx, s.resolver, issue.ProjectID, principal); err != nil {
		return nil, err
	}

	return s.listLinks(ctx, "documentation_issues.issue_id = ?", issue.ID)
}

func (s *Service) listLinks(ctx context.Context, query string, id string) ([]types.DocumentationIssueResponse, error) {
	var links []models.DocumentationIssue

	if err := s.resolver.DB(ctx).Preload("Issue").
		Where(query, id).
		Order("documentation_issues.created_at, documentation_issues.id").
		Find(&links).Error; err != nil {
		return nil, fmt.Errorf("list documentation links: %w", err)
	}

	response := make([]types.DocumentationIssueResponse, 0, len(links))
	for _, link := range links {
		response = append(response, types.NewDocumentationIssueResponse(link))
	}

	return response, nil
}
