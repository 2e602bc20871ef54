package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/types"
	"github.com/sirupsen/logrus"
)

// respondError maps domain failures to statuses. Anything unclassified is a
// storage or programming error and is logged before answering 500.
func (h *Handler) respondError(ctx *gin.Context, err error) {
	var (
		notFound   *apperr.NotFoundError
		forbidden  *apperr.NotAuthorizedError
		conflict   *apperr.ConflictError
		foreign    *apperr.IssueDoesntBelongToProjectError
		validation *apperr.ValidationError
	)

	switch {
	case errors.As(err, &notFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFound.Kind.Label() + " not found"})
	case errors.As(err, &forbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Not authorized: " + forbidden.Reason})
	case errors.As(err, &conflict):
		ctx.JSON(http.StatusConflict, gin.H{"error": capitalize(conflict.Reason)})
	case errors.Is(err, apperr.ErrInvalidCredentials):
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
	case errors.As(err, &foreign):
		ctx.JSON(http.StatusBadRequest, gin.H{
			"error":      "Issue doesn't belong to project",
			"project_id": foreign.ProjectID,
			"issue_ids":  foreign.IssueIDs,
		})
	case errors.As(err, &validation):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": capitalize(validation.Error())})
	default:
		h.log.WithFields(logrus.Fields{
			"request_id": ctx.GetString(types.ContextRequestIDKey),
			"path":       ctx.FullPath(),
		}).WithError(err).Error("request failed")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
