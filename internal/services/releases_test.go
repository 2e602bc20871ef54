package services

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/types"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		raw   string
		want  string
		valid bool
	}{
		{raw: "1.2.3", want: "1.2.3", valid: true},
		{raw: "v0.10.0", want: "0.10.0", valid: true},
		{raw: " 2.0.1 ", want: "2.0.1", valid: true},
		{raw: "1.2", valid: false},
		{raw: "1", valid: false},
		{raw: "1.2.3-beta.1", valid: false},
		{raw: "1.2.3+build", valid: false},
		{raw: "01.2.3", valid: false},
		{raw: "one.two.three", valid: false},
		{raw: "", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseVersion(tt.raw)
			if !tt.valid {
				if !isValidation(err) {
					t.Fatalf("expected validation error, got %v (%v)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseVersion: %v", err)
			}
			if got.String() != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestCreateReleaseLinksIssues(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	project := f.project(t, alice, "Apollo")
	a := f.issue(t, alice, project.ID, "A")
	b := f.issue(t, alice, project.ID, "B")

	release, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{
		Version:  "v1.4.0",
		Notes:    "First flight",
		IssueIDs: []string{a.ID, b.ID, a.ID},
	})
	if err != nil {
		t.Fatalf("CreateRelease: %v", err)
	}

	if release.Version != "1.4.0" || release.Major != 1 || release.Minor != 4 || release.Patch != 0 {
		t.Fatalf("unexpected version fields: %+v", release)
	}
	if !sameIDs(release.IssueIDs, []string{a.ID, b.ID}) {
		t.Fatalf("expected issue set {A, B}, got %v", release.IssueIDs)
	}

	got, err := f.svc.GetRelease(f.ctx, alice, project.ID, release.ID)
	if err != nil {
		t.Fatalf("GetRelease: %v", err)
	}
	if !sameIDs(got.IssueIDs, []string{a.ID, b.ID}) {
		t.Fatalf("stored issue set mismatch: %v", got.IssueIDs)
	}

	var issueCount int64
	f.db.Model(&models.Issue{}).Count(&issueCount)
	if issueCount != 2 {
		t.Fatalf("linking must not create issues, found %d", issueCount)
	}
}

func TestCreateReleaseRejectsForeignIssuesAsBatch(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	apollo := f.project(t, alice, "Apollo")
	gemini := f.project(t, alice, "Gemini")
	local := f.issue(t, alice, apollo.ID, "Local")
	x := f.issue(t, alice, gemini.ID, "X")
	y := f.issue(t, alice, gemini.ID, "Y")

	_, err := f.svc.CreateRelease(f.ctx, alice, apollo.ID, types.CreateReleaseRequest{
		Version:  "1.0.0",
		IssueIDs: []string{local.ID, x.ID, y.ID},
	})

	var foreign *apperr.IssueDoesntBelongToProjectError
	if !errors.As(err, &foreign) {
		t.Fatalf("expected IssueDoesntBelongToProject, got %v", err)
	}
	if foreign.ProjectID != apollo.ID || !sameIDs(foreign.IssueIDs, []string{x.ID, y.ID}) {
		t.Fatalf("unexpected error detail: %+v", foreign)
	}

	releases, err := f.svc.ListReleases(f.ctx, alice, apollo.ID)
	if err != nil {
		t.Fatalf("ListReleases: %v", err)
	}
	if len(releases) != 0 {
		t.Fatalf("expected no release to be persisted, got %+v", releases)
	}
}

func TestCreateReleaseMissingIssue(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	project := f.project(t, alice, "Apollo")

	_, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{
		Version:  "1.0.0",
		IssueIDs: []string{"c7a3f6f0-0d55-4f3b-8a7e-2b3a51d4e9f1"},
	})
	if !apperr.IsNotFound(err, apperr.KindIssue) {
		t.Fatalf("expected issue not found, got %v", err)
	}
}

func TestReleaseVersionsAreUniqueAndOrdered(t *testing.T) {
	f := newFixture(t)
	alice, _ := f.register(t, "Alice", "alice@example.com")
	bob, _ := f.register(t, "Bob", "bob@example.com")
	project := f.project(t, alice, "Apollo")
	other := f.project(t, bob, "Gemini")

	for _, v := range []string{"1.2.0", "1.10.0", "0.9.5"} {
		if _, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{Version: v}); err != nil {
			t.Fatalf("CreateRelease %s: %v", v, err)
		}
	}

	var conflict *apperr.ConflictError
	if _, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{Version: "v1.2.0"}); !errors.As(err, &conflict) {
		t.Fatalf("expected duplicate version conflict, got %v", err)
	}

	if _, err := f.svc.CreateRelease(f.ctx, bob, other.ID, types.CreateReleaseRequest{Version: "1.2.0"}); err != nil {
		t.Fatalf("same version in another project: %v", err)
	}

	releases, err := f.svc.ListReleases(f.ctx, alice, project.ID)
	if err != nil {
		t.Fatalf("ListReleases: %v", err)
	}

	var got []string
	for _, release := range releases {
		got = append(got, release.Version)
	}
	want := []string{"1.10.0", "1.2.0", "0.9.5"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCreateReleaseAnnouncesToWebhooks(t *testing.T) {
	var (
		mu       sync.Mutex
		discord  DiscordWebhookRequest
		slack    SlackWebhookRequest
		requests int
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		requests++

		var err error
		switch r.URL.Path {
		case "/discord":
			err = json.NewDecoder(r.Body).Decode(&discord)
		case "/slack":
			err = json.NewDecoder(r.Body).Decode(&slack)
		default:
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	f := newFixture(t, WithAnnouncer(NewWebhookAnnouncer(server.Client())))
	alice, _ := f.register(t, "Alice", "alice@example.com")

	project, err := f.svc.CreateProject(f.ctx, alice, types.CreateProjectRequest{
		Name:           "Apollo",
		DiscordWebhook: server.URL + "/discord",
		SlackWebhook:   server.URL + "/slack",
	})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	issue := f.issue(t, alice, project.ID, "Launch")

	if _, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{Version: "2.0.0", IssueIDs: []string{issue.ID}}); err != nil {
		t.Fatalf("CreateRelease: %v", err)
	}

	mu.Lock()
	defer mu.Unlock()

	if requests != 2 {
		t.Fatalf("expected 2 webhook calls, got %d", requests)
	}
	if len(discord.Embeds) != 1 || discord.Embeds[0].Fields[0].Value != "2.0.0" {
		t.Fatalf("unexpected discord payload: %+v", discord)
	}
	if len(slack.Attachments) != 1 || slack.Attachments[0].Title != "Release 2.0.0" {
		t.Fatalf("unexpected slack payload: %+v", slack)
	}
}

func TestFailedAnnouncementDoesNotFailRelease(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := newFixture(t, WithAnnouncer(NewWebhookAnnouncer(server.Client())))
	alice, _ := f.register(t, "Alice", "alice@example.com")

	project, err := f.svc.CreateProject(f.ctx, alice, types.CreateProjectRequest{Name: "Apollo", SlackWebhook: server.URL})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := f.svc.CreateRelease(f.ctx, alice, project.ID, types.CreateReleaseRequest{Version: "1.0.0"}); err != nil {
		t.Fatalf("CreateRelease must succeed when the webhook fails: %v", err)
	}
}
