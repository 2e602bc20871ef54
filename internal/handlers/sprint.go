package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateSprint(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.CreateSprintRequest

	if !h.bind(ctx, &body) {
		return
	}

	sprint, err := h.svc.CreateSprint(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, sprint)
}

func (h *Handler) ListSprints(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	sprints, err := h.svc.ListSprints(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprints)
}

func (h *Handler) GetSprint(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, sprintParam)
	if !ok {
		return
	}

	sprint, err := h.svc.GetSprint(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

func (h *Handler) ListSprintIssues(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, sprintParam)
	if !ok {
		return
	}

	issues, err := h.svc.ListSprintIssues(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, issues)
}

func (h *Handler) UpdateSprint(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, sprintParam)
	if !ok {
		return
	}

	var body types.UpdateSprintRequest

	if !h.bind(ctx, &body) {
		return
	}

	sprint, err := h.svc.UpdateSprint(ctx.Request.Context(), principal, ids[0], ids[1], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, sprint)
}

func (h *Handler) DeleteSprint(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, sprintParam)
	if !ok {
		return
	}

	if err := h.svc.DeleteSprint(ctx.Request.Context(), principal, ids[0], ids[1]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Sprint deleted successfully"})
}
