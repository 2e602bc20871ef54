package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateProject(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	var body types.CreateProjectRequest

	if !h.bind(ctx, &body) {
		return
	}

	project, err := h.svc.CreateProject(ctx.Request.Context(), principal, body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *Handler) ListProjects(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	projects, err := h.svc.ListProjects(ctx.Request.Context(), principal)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	project, err := h.svc.GetProject(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) UpdateProject(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.UpdateProjectRequest

	if !h.bind(ctx, &body) {
		return
	}

	project, err := h.svc.UpdateProject(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}

func (h *Handler) AddCollaborator(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.AddCollaboratorRequest

	if !h.bind(ctx, &body) {
		return
	}

	project, err := h.svc.AddCollaborator(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

func (h *Handler) RemoveCollaborator(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, userParam)
	if !ok {
		return
	}

	project, err := h.svc.RemoveCollaborator(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, project)
}
