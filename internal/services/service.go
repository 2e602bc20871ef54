package services

import (
	"context"
	"strings"
	"sync"

	"github.com/monocle-dev/planboard/internal/access"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
	"github.com/monocle-dev/planboard/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Publisher receives a notification after a mutation on a project commits.
type Publisher interface {
	Publish(projectID, entity string)
}

// Service mediates every domain read and mutation. Each mutation resolves the
// project, authorizes the principal, validates referenced entities and
// persists inside a single transaction.
type Service struct {
	db        *gorm.DB
	resolver  *store.Resolver
	tokens    *auth.TokenService
	passwords auth.Passwords
	events    Publisher
	announcer *WebhookAnnouncer
	log       *logrus.Logger

	dummyOnce sync.Once
	dummyHash string
}

type Option func(*Service)

func WithPublisher(publisher Publisher) Option {
	return func(s *Service) {
		s.events = publisher
	}
}

func WithAnnouncer(announcer *WebhookAnnouncer) Option {
	return func(s *Service) {
		s.announcer = announcer
	}
}

func WithLogger(log *logrus.Logger) Option {
	return func(s *Service) {
		s.log = log
	}
}

func WithPasswords(passwords auth.Passwords) Option {
	return func(s *Service) {
		s.passwords = passwords
	}
}

func New(db *gorm.DB, tokens *auth.TokenService, opts ...Option) *Service {
	s := &Service{
		db:       db,
		resolver: store.NewResolver(db),
		tokens:   tokens,
		log:      logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) inTx(ctx context.Context, fn func(r *store.Resolver) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(s.resolver.WithTx(tx))
	})
}

func (s *Service) publish(projectID, entity string) {
	if s.events != nil {
		s.events.Publish(projectID, entity)
	}
}

// memberProject resolves a project and requires the principal to be its
// creator or a collaborator.
func memberProject(ctx context.Context, r *store.Resolver, projectID string, principal auth.Principal) (*models.Project, error) {
	project, err := r.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if err := requireMember(project, principal); err != nil {
		return nil, err
	}

	return project, nil
}

func requireMember(project *models.Project, principal auth.Principal) error {
	return access.RequireCreatorOrCollaborator(project, principal)
}

func orderByCreation(db *gorm.DB) *gorm.DB {
	return db.Order("created_at, id")
}

// actor resolves the user behind the principal.
func actor(ctx context.Context, r *store.Resolver, principal auth.Principal) (*models.User, error) {
	return r.GetUserByEmail(ctx, normalizeEmail(principal.Email))
}

// resolveAssignee verifies the referenced user exists and returns its id.
func resolveAssignee(ctx context.Context, r *store.Resolver, assigneeID *string) (*string, error) {
	if assigneeID == nil {
		return nil, nil
	}

	user, err := r.GetUser(ctx, strings.TrimSpace(*assigneeID))
	if err != nil {
		return nil, err
	}

	return &user.ID, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	return &v
}

func orderByIssueCreation(db *gorm.DB) *gorm.DB {
	return db.Order("issues.created_at, issues.id")
}
