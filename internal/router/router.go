package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/handlers"
	"github.com/monocle-dev/planboard/internal/middleware"
	"github.com/sirupsen/logrus"
)

func NewRouter(h *handlers.Handler, tokens *auth.TokenService, origins []string, log *logrus.Logger) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	requireAuth := middleware.AuthMiddleware(tokens)

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)

		account := api.Group("/auth")
		{
			account.POST("/register", h.Register)
			account.POST("/login", h.Login)
			account.GET("/me", requireAuth, h.Me)
			account.PATCH("/me", requireAuth, h.UpdateMe)
		}

		projects := api.Group("/projects", requireAuth)
		{
			projects.POST("", h.CreateProject)
			projects.GET("", h.ListProjects)
			projects.GET("/:project_id", h.GetProject)
			projects.PATCH("/:project_id", h.UpdateProject)

			projects.POST("/:project_id/collaborators", h.AddCollaborator)
			projects.DELETE("/:project_id/collaborators/:user_id", h.RemoveCollaborator)

			projects.GET("/:project_id/events", h.ProjectEvents)

			projects.POST("/:project_id/issues", h.CreateIssue)
			projects.GET("/:project_id/issues", h.ListIssues)
			projects.GET("/:project_id/issues/:issue_id", h.GetIssue)
			projects.PATCH("/:project_id/issues/:issue_id", h.UpdateIssue)
			projects.DELETE("/:project_id/issues/:issue_id", h.DeleteIssue)

			projects.POST("/:project_id/issues/:issue_id/tasks", h.CreateTask)
			projects.GET("/:project_id/issues/:issue_id/tasks", h.ListTasks)
			projects.PATCH("/:project_id/issues/:issue_id/tasks/:task_id", h.UpdateTask)
			projects.DELETE("/:project_id/issues/:issue_id/tasks/:task_id", h.DeleteTask)

			projects.POST("/:project_id/issues/:issue_id/tests", h.CreateTest)
			projects.GET("/:project_id/issues/:issue_id/tests", h.ListTests)
			projects.PATCH("/:project_id/issues/:issue_id/tests/:test_id", h.UpdateTest)
			projects.DELETE("/:project_id/issues/:issue_id/tests/:test_id", h.DeleteTest)

			projects.POST("/:project_id/sprints", h.CreateSprint)
			projects.GET("/:project_id/sprints", h.ListSprints)
			projects.GET("/:project_id/sprints/:sprint_id", h.GetSprint)
			projects.GET("/:project_id/sprints/:sprint_id/issues", h.ListSprintIssues)
			projects.PATCH("/:project_id/sprints/:sprint_id", h.UpdateSprint)
			projects.DELETE("/:project_id/sprints/:sprint_id", h.DeleteSprint)

			projects.POST("/:project_id/releases", h.CreateRelease)
			projects.GET("/:project_id/releases", h.ListReleases)
			projects.GET("/:project_id/releases/:release_id", h.GetRelease)

			projects.POST("/:project_id/documentation", h.CreateDocumentation)
			projects.GET("/:project_id/documentation", h.ListDocumentation)
			projects.PATCH("/:project_id/documentation/:documentation_id", h.UpdateDocumentation)
			projects.DELETE("/:project_id/documentation/:documentation_id", h.DeleteDocumentation)
		}

		links := api.Group("", requireAuth)
		{
			links.POST("/documentation-issues", h.LinkDocumentationIssue)
			links.DELETE("/documentation-issues/:documentation_id/:issue_id", h.UnlinkDocumentationIssue)
			links.GET("/documentation/:documentation_id/issues", h.ListIssuesForDocumentation)
			links.GET("/issues/:issue_id/documentation", h.ListDocumentationForIssue)
		}
	}

	return r
}
