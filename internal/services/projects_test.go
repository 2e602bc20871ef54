package services

import (
	"errors"
	"testing"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/types"
)

func TestCreateProjectRecordsCreator(t *testing.T) {
	f := newFixture(t)
	alice, user := f.register(t, "Alice", "alice@example.com")

	project := f.project(t, alice, "Apollo")

	if project.Creator.ID != user.ID {
		t.Errorf("expected creator %s, got %s", user.ID, project.Creator.ID)
	}
	if len(project.Collaborators) != 0 {
		t.Errorf("expected no collaborators, got %v", project.Collaborators)
	}
}

func TestProjectMembership(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, bobUser := f.register(t, "Bob", "bob@example.com")
	carol, _ := f.register(t, "Carol", "carol@example.com")

	project := f.project(t, alice, "Apollo")
	f.project(t, carol, "Gemini")

	if _, err := f.svc.GetProject(f.ctx, bob, project.ID); !isNotAuthorized(err) {
		t.Fatalf("expected outsider to be rejected, got %v", err)
	}

	f.collaborate(t, alice, project.ID, "BOB@example.com")

	got, err := f.svc.GetProject(f.ctx, bob, project.ID)
	if err != nil {
		t.Fatalf("collaborator GetProject: %v", err)
	}
	if len(got.Collaborators) != 1 || got.Collaborators[0].ID != bobUser.ID {
		t.Fatalf("unexpected collaborators: %+v", got.Collaborators)
	}

	projects, err := f.svc.ListProjects(f.ctx, bob)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) != 1 || projects[0].ID != project.ID {
		t.Fatalf("expected only Apollo, got %+v", projects)
	}

	t.Run("collaborator cannot manage the project", func(t *testing.T) {
		name := "Renamed"
		if _, err := f.svc.UpdateProject(f.ctx, bob, project.ID, types.UpdateProjectRequest{Name: &name}); !isNotAuthorized(err) {
			t.Fatalf("expected not authorized, got %v", err)
		}
		if _, err := f.svc.AddCollaborator(f.ctx, bob, project.ID, types.AddCollaboratorRequest{Email: "carol@example.com"}); !isNotAuthorized(err) {
			t.Fatalf("expected not authorized, got %v", err)
		}
	})

	t.Run("duplicate and creator memberships conflict", func(t *testing.T) {
		var conflict *apperr.ConflictError
		if _, err := f.svc.AddCollaborator(f.ctx, alice, project.ID, types.AddCollaboratorRequest{Email: "bob@example.com"}); !errors.As(err, &conflict) {
			t.Fatalf("expected conflict for existing collaborator, got %v", err)
		}
		if _, err := f.svc.AddCollaborator(f.ctx, alice, project.ID, types.AddCollaboratorRequest{Email: "alice@example.com"}); !errors.As(err, &conflict) {
			t.Fatalf("expected conflict for creator, got %v", err)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.AddCollaborator(f.ctx, alice, project.ID, types.AddCollaboratorRequest{Email: "nobody@example.com"})
		if !apperr.IsNotFound(err, apperr.KindUser) {
			t.Fatalf("expected user not found, got %v", err)
		}
	})

	t.Run("remove", func(t *testing.T) {
		got, err := f.svc.RemoveCollaborator(f.ctx, alice, project.ID, bobUser.ID)
		if err != nil {
			t.Fatalf("RemoveCollaborator: %v", err)
		}
		if len(got.Collaborators) != 0 {
			t.Fatalf("expected no collaborators, got %+v", got.Collaborators)
		}
		if _, err := f.svc.GetProject(f.ctx, bob, project.ID); !isNotAuthorized(err) {
			t.Fatalf("expected removed collaborator to be rejected, got %v", err)
		}
		if _, err := f.svc.RemoveCollaborator(f.ctx, alice, project.ID, bobUser.ID); !apperr.IsNotFound(err, apperr.KindUser) {
			t.Fatalf("expected user not found, got %v", err)
		}
	})
}

func TestUpdateProjectPartial(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")

	project, err := f.svc.CreateProject(f.ctx, alice, types.CreateProjectRequest{Name: "Apollo", Description: "Moon"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	description := "Moon landing"
	updated, err := f.svc.UpdateProject(f.ctx, alice, project.ID, types.UpdateProjectRequest{Description: &description})
	if err != nil {
		t.Fatalf("UpdateProject: %v", err)
	}

	if updated.Name != "Apollo" || updated.Description != description {
		t.Fatalf("unexpected project after partial update: %+v", updated)
	}

	blank := "   "
	var invalid *apperr.ValidationError
	if _, err := f.svc.UpdateProject(f.ctx, alice, project.ID, types.UpdateProjectRequest{Name: &blank}); !errors.As(err, &invalid) {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestProjectNotFound(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")

	_, err := f.svc.GetProject(f.ctx, alice, "3f1c9f3e-5d2a-4b8e-9a77-0c2d0b7e1a11")
	if !apperr.IsNotFound(err, apperr.KindProject) {
		t.Fatalf("expected project not found, got %v", err)
	}
}

func isNotAuthorized(err error) bool {
	var forbidden *apperr.NotAuthorizedError
	return errors.As(err, &forbidden)
}
