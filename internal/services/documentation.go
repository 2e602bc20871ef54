package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"gorm.io/gorm/clause"
)

func (s *Service) CreateDocumentation(ctx context.Context, principal auth.Principal, projectID string, req types.CreateDocumentationRequest) (types.DocumentationResponse, error) {
	var doc models.Documentation

	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		doc = models.Documentation{
			ProjectID: project.ID,
			Title:     strings.TrimSpace(req.Title),
			Content:   req.Content,
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&doc).Error; err != nil {
			return fmt.Errorf("create documentation: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.DocumentationResponse{}, err
	}

	s.publish(doc.ProjectID, types.EntityDocumentation)

	return types.NewDocumentationResponse(doc), nil
}

func (s *Service) ListDocumentation(ctx context.Context, principal auth.Principal, projectID string) ([]types.DocumentationResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return nil, err
	}

	var docs []models.Documentation

	if err := s.resolver.DB(ctx).Where("project_id = ?", project.ID).Order("created_at, id").Find(&docs).Error; err != nil {
		return nil, fmt.Errorf("list documentation: %w", err)
	}

	response := make([]types.DocumentationResponse, 0, len(docs))
	for _, doc := range docs {
		response = append(response, types.NewDocumentationResponse(doc))
	}

	return response, nil
}

func (s *Service) UpdateDocumentation(ctx context.Context, principal auth.Principal, projectID, documentationID string, req types.UpdateDocumentationRequest) (types.DocumentationResponse, error) {
	var doc *models.Documentation

	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		doc, err = r.GetDocumentationInProject(ctx, project.ID, documentationID)
		if err != nil {
			return err
		}

		if title := trimmed(req.Title); title != nil {
			doc.Title = *title
		}
		if req.Content != nil {
			doc.Content = *req.Content
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(doc).Error; err != nil {
			return fmt.Errorf("update documentation: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.DocumentationResponse{}, err
	}

	s.publish(doc.ProjectID, types.EntityDocumentation)

	return types.NewDocumentationResponse(*doc), nil
}

// DeleteDocumentation also removes the documentation's issue links.
func (s *Service) DeleteDocumentation(ctx context.Context, principal auth.Principal, projectID, documentationID string) error {
	err := s.inTx(ctx, func(r *store.Resolver) error {
		project, err := memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		doc, err := r.GetDocumentationInProject(ctx, project.ID, documentationID)
		if err != nil {
			return err
		}

		db := r.DB(ctx)

		if err := db.Where("documentation_id = ?", doc.ID).Delete(&models.DocumentationIssue{}).Error; err != nil {
			return fmt.Errorf("delete documentation links: %w", err)
		}

		if err := db.Delete(&models.Documentation{}, "id = ?", doc.ID).Error; err != nil {
			return fmt.Errorf("delete documentation: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntityDocumentation)

	return nil
}
