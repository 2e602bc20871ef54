// Package access decides whether a principal may act within a project. The
// decisions use only the project snapshot they are given.
package access

import (
	"strings"

	"github.com/monocle-dev/planboard/internal/apperr"
	"github.com/monocle-dev/planboard/internal/auth"
	"github.com/monocle-dev/planboard/internal/models"
)

func sameIdentity(email string, principal auth.Principal) bool {
	return email != "" && strings.EqualFold(email, principal.Email)
}

func IsCreator(project *models.Project, principal auth.Principal) bool {
	return sameIdentity(project.Creator.Email, principal)
}

func IsCollaborator(project *models.Project, principal auth.Principal) bool {
	for _, collaborator := range project.Collaborators {
		if sameIdentity(collaborator.User.Email, principal) {
			return true
		}
	}
	return false
}

func RequireCreator(project *models.Project, principal auth.Principal) error {
	if IsCreator(project, principal) {
		return nil
	}
	return apperr.NotAuthorized("only the project creator can perform this action")
}

func RequireCreatorOrCollaborator(project *models.Project, principal auth.Principal) error {
	if IsCreator(project, principal) || IsCollaborator(project, principal) {
		return nil
	}
	return apperr.NotAuthorized("you are not a member of this project")
}
