package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.CreateIssueRequest

	if !h.bind(ctx, &body) {
		return
	}

	issue, err := h.svc.CreateIssue(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, issue)
}

func (h *Handler) ListIssues(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	issues, err := h.svc.ListIssues(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, issues)
}

func (h *Handler) GetIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	issue, err := h.svc.GetIssue(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, issue)
}

func (h *Handler) UpdateIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	var body types.UpdateIssueRequest

	if !h.bind(ctx, &body) {
		return
	}

	issue, err := h.svc.UpdateIssue(ctx.Request.Context(), principal, ids[0], ids[1], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, issue)
}

func (h *Handler) DeleteIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	if err := h.svc.DeleteIssue(ctx.Request.Context(), principal, ids[0], ids[1]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Issue deleted successfully"})
}
