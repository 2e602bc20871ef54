package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"testing"

	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/testutil"
	"github.com/monocle-dev/planboard/internal/types"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type published struct {
	projectID string
	entity    string
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []published
}

func (p *recordingPublisher) Publish(projectID, entity string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, published{projectID, entity})
}

func (p *recordingPublisher) count(entity string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.entity == entity {
			n++
		}
	}
	return n
}

type fixture struct {
	svc    *Service
	db     *gorm.DB
	events *recordingPublisher
	ctx    context.Context
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	database := testutil.NewDB(t)
	events := &recordingPublisher{}

	opts = append([]Option{
		WithPublisher(events),
		WithLogger(log),
		WithPasswords(auth.Passwords{Cost: bcrypt.MinCost}),
	}, opts...)

	return &fixture{
		svc:    New(database, testutil.NewTokens(t), opts...),
		db:     database,
		events: events,
		ctx:    context.Background(),
	}
}

func (f *fixture) register(t *testing.T, name, email string) (auth.Principal, types.UserResponse) {
	t.Helper()

	resp, err := f.svc.Register(f.ctx, types.RegisterRequest{Name: name, Email: email, Password: "correct-horse"})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}

	return auth.Principal{Email: resp.User.Email}, resp.User
}

func (f *fixture) project(t *testing.T, owner auth.Principal, name string) types.ProjectResponse {
	t.Helper()

	project, err := f.svc.CreateProject(f.ctx, owner, types.CreateProjectRequest{Name: name})
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}

	return project
}

func (f *fixture) issue(t *testing.T, principal auth.Principal, projectID, title string) types.IssueResponse {
	t.Helper()

	issue, err := f.svc.CreateIssue(f.ctx, principal, projectID, types.CreateIssueRequest{
		Title:       title,
		Priority:    "MEDIUM",
		StoryPoints: 3,
	})
	if err != nil {
		t.Fatalf("create issue %s: %v", title, err)
	}

	return issue
}

func (f *fixture) collaborate(t *testing.T, owner auth.Principal, projectID, email string) {
	t.Helper()

	if _, err := f.svc.AddCollaborator(f.ctx, owner, projectID, types.AddCollaboratorRequest{Email: email}); err != nil {
		t.Fatalf("add collaborator %s: %v", email, err)
	}
}

func sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

func sameIDs(a, b []string) bool {
	a, b = sorted(a), sorted(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
