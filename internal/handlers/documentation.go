package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateDocumentation(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.CreateDocumentationRequest

	if !h.bind(ctx, &body) {
		return
	}

	doc, err := h.svc.CreateDocumentation(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, doc)
}

func (h *Handler) ListDocumentation(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	docs, err := h.svc.ListDocumentation(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, docs)
}

func (h *Handler) UpdateDocumentation(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, documentationParam)
	if !ok {
		return
	}

	var body types.UpdateDocumentationRequest

	if !h.bind(ctx, &body) {
		return
	}

	doc, err := h.svc.UpdateDocumentation(ctx.Request.Context(), principal, ids[0], ids[1], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, doc)
}

func (h *Handler) DeleteDocumentation(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, documentationParam)
	if !ok {
		return
	}

	if err := h.svc.DeleteDocumentation(ctx.Request.Context(), principal, ids[0], ids[1]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Documentation deleted successfully"})
}

func (h *Handler) LinkDocumentationIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	var body types.LinkDocumentationIssueRequest

	if !h.bind(ctx, &body) {
		return
	}

	link, err := h.svc.LinkDocumentationIssue(ctx.Request.Context(), principal, body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, link)
}

func (h *Handler) UnlinkDocumentationIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, documentationParam, issueParam)
	if !ok {
		return
	}

	if err := h.svc.UnlinkDocumentationIssue(ctx.Request.Context(), principal, ids[0], ids[1]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Documentation unlinked successfully"})
}

func (h *Handler) ListIssuesForDocumentation(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, documentationParam)
	if !ok {
		return
	}

	links, err := h.svc.ListIssuesForDocumentation(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, links)
}

func (h *Handler) ListDocumentationForIssue(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, issueParam)
	if !ok {
		return
	}

	links, err := h.svc.ListDocumentationForIssue(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, links)
}
