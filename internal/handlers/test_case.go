package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateTest(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	var body types.CreateTestRequest

	if !h.bind(ctx, &body) {
		return
	}

	test, err := h.svc.CreateTest(ctx.Request.Context(), principal, ids[0], ids[1], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, test)
}

func (h *Handler) ListTests(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	tests, err := h.svc.ListTests(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tests)
}

func (h *Handler) UpdateTest(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam, testParam)
	if !ok {
		return
	}

	var body types.UpdateTestRequest

	if !h.bind(ctx, &body) {
		return
	}

	test, err := h.svc.UpdateTest(ctx.Request.Context(), principal, ids[0], ids[1], ids[2], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, test)
}

func (h *Handler) DeleteTest(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam, testParam)
	if !ok {
		return
	}

	if err := h.svc.DeleteTest(ctx.Request.Context(), principal, ids[0], ids[1], ids[2]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Test deleted successfully"})
}
