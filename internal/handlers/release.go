package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateRelease(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	var body types.CreateReleaseRequest

	if !h.bind(ctx, &body) {
		return
	}

	release, err := h.svc.CreateRelease(ctx.Request.Context(), principal, ids[0], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, release)
}

func (h *Handler) ListReleases(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam)
	if !ok {
		return
	}

	releases, err := h.svc.ListReleases(ctx.Request.Context(), principal, ids[0])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, releases)
}

func (h *Handler) GetRelease(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, releaseParam)
	if !ok {
		return
	}

	release, err := h.svc.GetRelease(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, release)
}
