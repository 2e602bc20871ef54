package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/monocle-dev/planboard/internal/types"
	"golang.org/x/mod/semver"
)

type version struct {
	major, minor, patch int
}

func (v version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.major, v.minor, v.patch)
}

// parseVersion accepts MAJOR.MINOR.PATCH with an optional leading "v".
// Pre-release and build suffixes are rejected.
func parseVersion(raw string) (version, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	canonical := "v" + value

	if !semver.IsValid(canonical) || semver.Canonical(canonical) != canonical || semver.Prerelease(canonical) != "" {
		return version{}, apperr.Invalid("version", "must be MAJOR.MINOR.PATCH")
	}

	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return version{}, apperr.Invalid("version", "must be MAJOR.MINOR.PATCH")
	}

	var numbers [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return version{}, apperr.Invalid("version", "must be MAJOR.MINOR.PATCH")
		}
		numbers[i] = n
	}

	return version{major: numbers[0], minor: numbers[1], patch: numbers[2]}, nil
}

// uniqueIDs collapses the requested ids into a set. Order is not preserved.
func uniqueIDs(ids []string) []string {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[strings.TrimSpace(id)] = struct{}{}
	}

	unique := make([]string, 0, len(set))
	for id := range set {
		unique = append(unique, id)
	}
	sort.Strings(unique)

	return unique
}

// CreateRelease resolves every referenced issue first, then checks as one
// batch that all of them belong to the project.
func (s *Service) CreateRelease(ctx context.Context, principal auth.Principal, projectID string, req types.CreateReleaseRequest) (types.ReleaseResponse, error) {
	v, err := parseVersion(req.Version)
	if err != nil {
		return types.ReleaseResponse{}, err
	}

	var (
		release models.Release
		project *models.Project
	)

	err = s.inTx(ctx, func(r *store.Resolver) error {
		var err error

		project, err = memberProject(ctx, r, projectID, principal)
		if err != nil {
			return err
		}

		creator, err := actor(ctx, r, principal)
		if err != nil {
			return err
		}

		var existing int64
		if err := r.DB(ctx).Model(&models.Release{}).
			Where("project_id = ? AND version = ?", project.ID, v.String()).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("check release version: %w", err)
		}
		if existing > 0 {
			return apperr.Conflict(fmt.Sprintf("release %s already exists", v))
		}

		ids := uniqueIDs(req.IssueIDs)
		issues := make([]models.Issue, 0, len(ids))

		for _, id := range ids {
			issue, err := r.GetIssue(ctx, id)
			if err != nil {
				return err
			}
			issues = append(issues, *issue)
		}

		var foreign []string
		for _, issue := range issues {
			if issue.ProjectID != project.ID {
				foreign = append(foreign, issue.ID)
			}
		}
		if len(foreign) > 0 {
			return apperr.IssueDoesntBelongToProject(project.ID, foreign...)
		}

		release = models.Release{
			ProjectID: project.ID,
			Version:   v.String(),
			Major:     v.major,
			Minor:     v.minor,
			Patch:     v.patch,
			Notes:     strings.TrimSpace(req.Notes),
			CreatorID: creator.ID,
			Issues:    issues,
		}

		// Link existing issues without upserting them.
		if err := r.DB(ctx).Omit("Issues.*").Create(&release).Error; err != nil {
			if store.IsUniqueViolation(err) {
				return apperr.Conflict(fmt.Sprintf("release %s already exists", v))
			}
			return fmt.Errorf("create release: %w", err)
		}

		return nil
	})

	if err != nil {
		return types.ReleaseResponse{}, err
	}

	s.publish(release.ProjectID, types.EntityRelease)

	if s.announcer != nil {
		if err := s.announcer.AnnounceRelease(ctx, *project, release); err != nil {
			s.log.WithError(err).WithField("release_id", release.ID).Warn("release announcement failed")
		}
	}

	return types.NewReleaseResponse(release), nil
}

// ListReleases returns releases newest version first.
func (s *Service) ListReleases(ctx context.Context, principal auth.Principal, projectID string) ([]types.ReleaseResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return nil, err
	}

	var releases []models.Release

	if err := s.resolver.DB(ctx).
		Preload("Issues", orderByIssueCreation).
		Where("project_id = ?", project.ID).
		Order("major DESC, minor DESC, patch DESC").
		Find(&releases).Error; err != nil {
		return nil, fmt.Errorf("list releases: %w", err)
	}

	response := make([]types.ReleaseResponse, 0, len(releases))
	for _, release := range releases {
		response = append(response, types.NewReleaseResponse(release))
	}

	return response, nil
}

func (s *Service) GetRelease(ctx context.Context, principal auth.Principal, projectID, releaseID string) (types.ReleaseResponse, error) {
	project, err := memberProject(ctx, s.resolver, projectID, principal)
	if err != nil {
		return types.ReleaseResponse{}, err
	}

	release, err := s.resolver.GetReleaseInProject(ctx, project.ID, releaseID)
	if err != nil {
		return types.ReleaseResponse{}, err
	}

	return types.NewReleaseResponse(*release), nil
}
