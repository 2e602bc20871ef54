package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) CreateTask(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	var body types.CreateTaskRequest

	if !h.bind(ctx, &body) {
		return
	}

	task, err := h.svc.CreateTask(ctx.Request.Context(), principal, ids[0], ids[1], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, task)
}

func (h *Handler) ListTasks(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam)
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(ctx.Request.Context(), principal, ids[0], ids[1])

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, tasks)
}

func (h *Handler) UpdateTask(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam, taskParam)
	if !ok {
		return
	}

	var body types.UpdateTaskRequest

	if !h.bind(ctx, &body) {
		return
	}

	task, err := h.svc.UpdateTask(ctx.Request.Context(), principal, ids[0], ids[1], ids[2], body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	ids, ok := h.ids(ctx, projectParam, issueParam, taskParam)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(ctx.Request.Context(), principal, ids[0], ids[1], ids[2]); err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}
