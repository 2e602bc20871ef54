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

func (s *Service) CreateTest(ctx context.Context, principal auth.Principal, projectID, issueID string, req types.CreateTestRequest) (types.TestResponse, error) {
	var test models.TestCase

	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
		if err != nil {
			return err
		}

		creator, err := actor(ctx, r, principal)
		if err != nil {
			return err
		}

		test = models.TestCase{
			IssueID:     issue.ID,
			Name:        strings.TrimSpace(req.Name),
			ProgramCode: strings.TrimSpace(req.ProgramCode),
			TestCode:    strings.TrimSpace(req.TestCode),
			CreatorID:   creator.ID,
		}

		if err := r.DB(ctx).Omit(clause.Associations).Create(&test).Error; err != nil {
			return fmt.Errorf("create test: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.TestResponse{}, err
	}

	s.publish(projectID, types.EntityTest)

	return types.NewTestResponse(test), nil
}

func (s *Service) ListTests(ctx context.Context, principal auth.Principal, projectID, issueID string) ([]types.TestResponse, error) {
	issue, err := memberIssue(ctx, s.resolver, projectID, issueID, principal)
	if err != nil {
		return nil, err
	}

	var tests []models.TestCase

	if err := s.resolver.DB(ctx).Where("issue_id = ?", issue.ID).Order("created_at, id").Find(&tests).Error; err != nil {
		return nil, fmt.Errorf("list tests: %w", err)
	}

	response := make([]types.TestResponse, 0, len(tests))
	for _, test := range tests {
		response = append(response, types.NewTestResponse(test))
	}

	return response, nil
}

// UpdateTest overwrites present code fields even when they trim to blank.
func (s *Service) UpdateTest(ctx context.Context, principal auth.Principal, projectID, issueID, testID string, req types.UpdateTestRequest) (types.TestResponse, error) {
	var test *models.TestCase

	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
		if err != nil {
			return err
		}

		test, err = r.GetTestInIssue(ctx, issue.ID, testID)
		if err != nil {
			return err
		}

		if name := trimmed(req.Name); name != nil {
			test.Name = *name
		}
		if programCode := trimmed(req.ProgramCode); programCode != nil {
			test.ProgramCode = *programCode
		}
		if testCode := trimmed(req.TestCode); testCode != nil {
			test.TestCode = *testCode
		}

		if err := r.DB(ctx).Omit(clause.Associations).Save(test).Error; err != nil {
			return fmt.Errorf("update test: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.TestResponse{}, err
	}

	s.publish(projectID, types.EntityTest)

	return types.NewTestResponse(*test), nil
}

func (s *Service) DeleteTest(ctx context.Context, principal auth.Principal, projectID, issueID, testID string) error {
	err := s.inTx(ctx, func(r *store.Resolver) error {
		issue, err := memberIssue(ctx, r, projectID, issueID, principal)
		if err != nil {
			return err
		}

		test, err := r.GetTestInIssue(ctx, issue.ID, testID)
		if err != nil {
			return err
		}

		if err := r.DB(ctx).Delete(&models.TestCase{}, "id = ?", test.ID).Error; err != nil {
			return fmt.Errorf("delete test: %w", err)
		}

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(projectID, types.EntityTest)

	return nil
}
