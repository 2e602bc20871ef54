package types

import "time"

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name            *string `json:"name"`
	CurrentPassword string  `json:"current_password"`
	NewPassword     *string `json:"new_password" binding:"omitempty,min=8"`
}

type CreateProjectRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	DiscordWebhook string `json:"discord_webhook" binding:"omitempty,url"`
	SlackWebhook   string `json:"slack_webhook" binding:"omitempty,url"`
}

type UpdateProjectRequest struct {
	Name           *string `json:"name" binding:"omitempty,min=1"`
	Description    *string `json:"description"`
	DiscordWebhook *string `json:"discord_webhook" binding:"omitempty,url"`
	SlackWebhook   *string `json:"slack_webhook" binding:"omitempty,url"`
}

type AddCollaboratorRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type CreateIssueRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Priority    string  `json:"priority" binding:"required,oneof=LOW MEDIUM HIGH"`
	Status      string  `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS CLOSED"`
	StoryPoints int     `json:"story_points" binding:"min=0"`
	AssigneeID  *string `json:"assignee_id"`
}

// UpdateIssueRequest is a partial update: nil fields are left untouched.
type UpdateIssueRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS CLOSED"`
	StoryPoints *int    `json:"story_points" binding:"omitempty,min=0"`
	AssigneeID  *string `json:"assignee_id"`
}

type CreateSprintRequest struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
	IssueIDs  []string  `json:"issue_ids"`
}

// UpdateSprintRequest replaces the whole issue set when IssueIDs is present,
// including with an empty list.
type UpdateSprintRequest struct {
	Name      *string    `json:"name"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	IssueIDs  *[]string  `json:"issue_ids"`
}

type CreateReleaseRequest struct {
	Version  string   `json:"version" binding:"required"`
	Notes    string   `json:"notes"`
	IssueIDs []string `json:"issue_ids"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Status      string  `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssigneeID  *string `json:"assignee_id"`
}

type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status" binding:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	AssigneeID  *string `json:"assignee_id"`
}

type CreateTestRequest struct {
	Name        string `json:"name" binding:"required"`
	ProgramCode string `json:"program_code"`
	TestCode    string `json:"test_code"`
}

type UpdateTestRequest struct {
	Name        *string `json:"name"`
	ProgramCode *string `json:"program_code"`
	TestCode    *string `json:"test_code"`
}

type CreateDocumentationRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type UpdateDocumentationRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type LinkDocumentationIssueRequest struct {
	DocumentationID string `json:"documentation_id" binding:"required,uuid"`
	IssueID         string `json:"issue_id" binding:"required,uuid"`
}
