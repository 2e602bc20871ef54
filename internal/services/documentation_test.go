package services

import (
	"errors"
	"testing"
	"time"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/types"
)

func TestDocumentationCRUD(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, _ := f.register(t, "Bob", "bob@example.com")
	project := f.project(t, alice, "Apollo")

	doc, err := f.svc.CreateDocumentation(f.ctx, alice, project.ID, types.CreateDocumentationRequest{Title: "Manual", Content: "# Launch"})
	if err != nil {
		t.Fatalf("CreateDocumentation: %v", err)
	}

	content := "# Launch procedure"
	updated, err := f.svc.UpdateDocumentation(f.ctx, alice, project.ID, doc.ID, types.UpdateDocumentationRequest{Content: &content})
	if err != nil {
		t.Fatalf("UpdateDocumentation: %v", err)
	}
	if updated.Title != "Manual" || updated.Content != content {
		t.Fatalf("unexpected documentation: %+v", updated)
	}

	if _, err := f.svc.ListDocumentation(f.ctx, bob, project.ID); !isNotAuthorized(err) {
		t.Fatalf("expected not authorized, got %v", err)
	}

	docs, err := f.svc.ListDocumentation(f.ctx, alice, project.ID)
	if err != nil {
		t.Fatalf("ListDocumentation: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != doc.ID {
		t.Fatalf("unexpected documentation list: %+v", docs)
	}

	if err := f.svc.DeleteDocumentation(f.ctx, alice, project.ID, doc.ID); err != nil {
		t.Fatalf("DeleteDocumentation: %v", err)
	}
	if _, err := f.svc.ListIssuesForDocumentation(f.ctx, alice, doc.ID); !apperr.IsNotFound(err, apperr.KindDocumentation) {
		t.Fatalf("expected documentation not found, got %v", err)
	}
}

func TestLinkDocumentationIssue(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	project := f.project(t, alice, "Apollo")
	issue, err := f.svc.CreateIssue(f.ctx, alice, project.ID, types.CreateIssueRequest{Title: "Launch", Priority: "HIGH"})
	if err != nil {
		t.Fatalf("CreateIssue: %v", err)
	}
	doc, err := f.svc.CreateDocumentation(f.ctx, alice, project.ID, types.CreateDocumentationRequest{Title: "Manual"})
	if err != nil {
		t.Fatalf("CreateDocumentation: %v", err)
	}

	req := types.LinkDocumentationIssueRequest{DocumentationID: doc.ID, IssueID: issue.ID}

	link, err := f.svc.LinkDocumentationIssue(f.ctx, alice, req)
	if err != nil {
		t.Fatalf("LinkDocumentationIssue: %v", err)
	}

	if link.DocumentationID != doc.ID || link.IssueID != issue.ID {
		t.Fatalf("unexpected link ids: %+v", link)
	}
	if link.IssueTitle != "Launch" || link.IssuePriority != "HIGH" || link.IssueStatus != "TODO" {
		t.Fatalf("expected denormalized issue fields: %+v", link)
	}
	if _, err := time.Parse(types.LinkTimeLayout, link.CreatedAt); err != nil {
		t.Fatalf("unexpected created_at format %q: %v", link.CreatedAt, err)
	}

	var conflict *apperr.ConflictError
	if _, err := f.svc.LinkDocumentationIssue(f.ctx, alice, req); !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on duplicate link, got %v", err)
	}

	var count int64
	f.db.Model(&models.DocumentationIssue{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one link, got %d", count)
	}

	byDoc, err := f.svc.ListIssuesForDocumentation(f.ctx, alice, doc.ID)
	if err != nil {
		t.Fatalf("ListIssuesForDocumentation: %v", err)
	}
	byIssue, err := f.svc.ListDocumentationForIssue(f.ctx, alice, issue.ID)
	if err != nil {
		t.Fatalf("ListDocumentationForIssue: %v", err)
	}
	if len(byDoc) != 1 || len(byIssue) != 1 || byDoc[0].ID != link.ID || byIssue[0].IssueTitle != "Launch" {
		t.Fatalf("unexpected link listings: %+v %+v", byDoc, byIssue)
	}

	if err := f.svc.UnlinkDocumentationIssue(f.ctx, alice, doc.ID, issue.ID); err != nil {
		t.Fatalf("UnlinkDocumentationIssue: %v", err)
	}
	if err := f.svc.UnlinkDocumentationIssue(f.ctx, alice, doc.ID, issue.ID); !apperr.IsNotFound(err, apperr.KindDocumentationIssue) {
		t.Fatalf("expected link not found, got %v", err)
	}
}

func TestLinkDocumentationIssueAcrossProjects(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, _ := f.register(t, "Bob", "bob@example.com")
	apollo := f.project(t, alice, "Apollo")
	gemini := f.project(t, alice, "Gemini")
	issue := f.issue(t, alice, gemini.ID, "Foreign")

	doc, err := f.svc.CreateDocumentation(f.ctx, alice, apollo.ID, types.CreateDocumentationRequest{Title: "Manual"})
	if err != nil {
		t.Fatalf("CreateDocumentation: %v", err)
	}

	_, err = f.svc.LinkDocumentationIssue(f.ctx, alice, types.LinkDocumentationIssueRequest{DocumentationID: doc.ID, IssueID: issue.ID})
	var foreign *apperr.IssueDoesntBelongToProjectError
	if !errors.As(err, &foreign) {
		t.Fatalf("expected IssueDoesntBelongToProject, got %v", err)
	}

	local := f.issue(t, alice, apollo.ID, "Local")
	if _, err := f.svc.LinkDocumentationIssue(f.ctx, bob, types.LinkDocumentationIssueRequest{DocumentationID: doc.ID, IssueID: local.ID}); !isNotAuthorized(err) {
		t.Fatalf("expected outsider to be rejected, got %v", err)
	}

	missing := "6a0e9f1b-47c2-4d8b-8b39-8f3c0f2d5e77"
	if _, err := f.svc.LinkDocumentationIssue(f.ctx, alice, types.LinkDocumentationIssueRequest{DocumentationID: doc.ID, IssueID: missing}); !apperr.IsNotFound(err, apperr.KindIssue) {
		t.Fatalf("expected issue not found, got %v", err)
	}
	if _, err := f.svc.LinkDocumentationIssue(f.ctx, alice, types.LinkDocumentationIssueRequest{DocumentationID: missing, IssueID: local.ID}); !apperr.IsNotFound(err, apperr.KindDocumentation) {
		t.Fatalf("expected documentation not found, got %v", err)
	}
}

func TestDeleteDocumentationRemovesLinks(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	project := f.project(t, alice, "Apollo")
	issue := f.issue(t, alice, project.ID, "Launch")

	doc, err := f.svc.CreateDocumentation(f.ctx, alice, project.ID, types.CreateDocumentationRequest{Title: "Manual"})
	if err != nil {
		t.Fatalf("CreateDocumentation: %v", err)
	}
	if _, err := f.svc.LinkDocumentationIssue(f.ctx, alice, types.LinkDocumentationIssueRequest{DocumentationID: doc.ID, IssueID: issue.ID}); err != nil {
		t.Fatalf("LinkDocumentationIssue: %v", err)
	}

	if err := f.svc.DeleteDocumentation(f.ctx, alice, project.ID, doc.ID); err != nil {
		t.Fatalf("DeleteDocumentation: %v", err)
	}

	links, err := f.svc.ListDocumentationForIssue(f.ctx, alice, issue.ID)
	if err != nil {
		t.Fatalf("ListDocumentationForIssue: %v", err)
	}
	if len(links) != 0 {
		t.Fatalf("expected links to be removed, got %+v", links)
	}
}
