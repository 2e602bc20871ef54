package apperr

import (
	"errors"
	"fmt"
	"strings"
)

type Kind string

const (
	KindProject            Kind = "project"
	KindIssue              Kind = "issue"
	KindSprint             Kind = "sprint"
	KindRelease            Kind = "release"
	KindTask               Kind = "task"
	KindTest               Kind = "test"
	KindDocumentation      Kind = "documentation"
	KindDocumentationIssue Kind = "documentation_issue"
	KindUser               Kind = "user"
)

// Label is the human readable name used in response messages.
func (k Kind) Label() string {
	switch k {
	case KindDocumentationIssue:
		return "Documentation issue link"
	case "":
		return "Resource"
	}
	s := string(k)
	return strings.ToUpper(s[:1]) + s[1:]
}

var ErrInvalidCredentials = errors.New("invalid email or password")

type NotFoundError struct {
	Kind Kind
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

func NotFound(kind Kind, id string) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// IsNotFound reports whether err is a NotFoundError of the given kind.
// An empty kind matches any NotFoundError.
func IsNotFound(err error, kind Kind) bool {
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		return false
	}
	return kind == "" || nf.Kind == kind
}

type NotAuthorizedError struct {
	Reason string
}

func (e *NotAuthorizedError) Error() string {
	return "not authorized: " + e.Reason
}

func NotAuthorized(reason string) error {
	return &NotAuthorizedError{Reason: reason}
}

type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Reason
}

func Conflict(reason string) error {
	return &ConflictError{Reason: reason}
}

// IssueDoesntBelongToProjectError names the project the referenced issues
// were expected to belong to and every issue that did not.
type IssueDoesntBelongToProjectError struct {
	ProjectID string
	IssueIDs  []string
}

func (e *IssueDoesntBelongToProjectError) Error() string {
	return fmt.Sprintf("issues %s do not belong to project %s", strings.Join(e.IssueIDs, ", "), e.ProjectID)
}

func IssueDoesntBelongToProject(projectID string, issueIDs ...string) error {
	return &IssueDoesntBelongToProjectError{ProjectID: projectID, IssueIDs: issueIDs}
}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
