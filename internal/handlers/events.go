package handlers

import (
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// ProjectEvents upgrades to a websocket streaming refresh events for a
// project the principal is a member of.
func (h *Handler) ProjectEvents(ctx *gin.Context) {
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

	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || slices.Contains(h.origins, origin)
		},
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)

	if err != nil {
		h.log.WithError(err).WithField("project_id", project.ID).Warn("websocket upgrade failed")
		return
	}

	h.hub.Serve(conn, project.ID)
}
