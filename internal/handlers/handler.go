package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/events"
	"github.com/monocle-dev/planboard/internal/services"
	"github.com/monocle-dev/planboard/internal/utils"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	svc     *services.Service
	hub     *events.Hub
	tokens  *auth.TokenService
	log     *logrus.Logger
	origins []string

	// CookieDomain scopes the session cookie set on register and login.
	CookieDomain string
}

func New(svc *services.Service, hub *events.Hub, tokens *auth.TokenService, log *logrus.Logger, origins []string) *Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Handler{
		svc:     svc,
		hub:     hub,
		tokens:  tokens,
		log:     log,
		origins: origins,
	}
}

func (h *Handler) bind(ctx *gin.Context, body any) bool {
	if err := ctx.ShouldBindJSON(body); err != nil {
		h.log.WithError(err).Debug("failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

func (h *Handler) principal(ctx *gin.Context) (auth.Principal, bool) {
	principal, err := utils.GetPrincipal(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return auth.Principal{}, false
	}
	return principal, true
}

// ids reads the named uuid path parameters in order.
func (h *Handler) ids(ctx *gin.Context, params ...idParam) ([]string, bool) {
	values := make([]string, 0, len(params))
	for _, p := range params {
		id, err := utils.PathID(ctx, p.name, p.label)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil, false
		}
		values = append(values, id)
	}
	return values, true
}

type idParam struct {
	name  string
	label string
}

var (
	projectParam       = idParam{"project_id", "Project"}
	issueParam         = idParam{"issue_id", "Issue"}
	sprintParam        = idParam{"sprint_id", "Sprint"}
	releaseParam       = idParam{"release_id", "Release"}
	taskParam          = idParam{"task_id", "Task"}
	testParam          = idParam{"test_id", "Test"}
	documentationParam = idParam{"documentation_id", "Documentation"}
	userParam          = idParam{"user_id", "User"}
)
