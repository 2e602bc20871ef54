package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/middleware"
	"github.com/monocle-dev/planboard/internal/types"
)

func (h *Handler) setSessionCookie(ctx *gin.Context, token string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Domain:   h.CookieDomain,
		MaxAge:   int(h.tokens.TTL().Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) Register(ctx *gin.Context) {
	var body types.RegisterRequest

	if !h.bind(ctx, &body) {
		return
	}

	response, err := h.svc.Register(ctx.Request.Context(), body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, response.Token)
	ctx.JSON(http.StatusCreated, response)
}

func (h *Handler) Login(ctx *gin.Context) {
	var body types.LoginRequest

	if !h.bind(ctx, &body) {
		return
	}

	response, err := h.svc.Login(ctx.Request.Context(), body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	h.setSessionCookie(ctx, response.Token)
	ctx.JSON(http.StatusOK, response)
}

func (h *Handler) Me(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	user, err := h.svc.Me(ctx.Request.Context(), principal)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateMe(ctx *gin.Context) {
	principal, ok := h.principal(ctx)
	if !ok {
		return
	}

	var body types.UpdateProfileRequest

	if !h.bind(ctx, &body) {
		return
	}

	user, err := h.svc.UpdateProfile(ctx.Request.Context(), principal, body)

	if err != nil {
		h.respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}
