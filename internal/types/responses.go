package types

import (
	"time"

	"github.com/monocle-dev/planboard/internal/models"
)

// Responses never embed ownership graphs; related entities appear as flat
// identifiers or small summaries.

type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

type ProjectResponse struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Creator        UserResponse   `json:"creator"`
	Collaborators  []UserResponse `json:"collaborators"`
	DiscordWebhook string         `json:"discord_webhook,omitempty"`
	SlackWebhook   string         `json:"slack_webhook,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

type IssueResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	Status      string    `json:"status"`
	StoryPoints int       `json:"story_points"`
	CreatorID   string    `json:"creator_id"`
	AssigneeID  *string   `json:"assignee_id"`
	SprintID    *string   `json:"sprint_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type SprintResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IssueIDs  []string  `json:"issue_ids"`
}

type ReleaseResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Version   string    `json:"version"`
	Major     int       `json:"major"`
	Minor     int       `json:"minor"`
	Patch     int       `json:"patch"`
	Notes     string    `json:"notes"`
	CreatorID string    `json:"creator_id"`
	IssueIDs  []string  `json:"issue_ids"`
	CreatedAt time.Time `json:"created_at"`
}

type TaskResponse struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	IssueID     string    `json:"issue_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatorID   string    `json:"creator_id"`
	AssigneeID  *string   `json:"assignee_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type TestResponse struct {
	ID          string    `json:"id"`
	IssueID     string    `json:"issue_id"`
	Name        string    `json:"name"`
	ProgramCode string    `json:"program_code"`
	TestCode    string    `json:"test_code"`
	CreatorID   string    `json:"creator_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DocumentationResponse struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DocumentationIssueResponse struct {
	ID              string `json:"id"`
	DocumentationID string `json:"documentation_id"`
	IssueID         string `json:"issue_id"`
	IssueTitle      string `json:"issue_title"`
	IssuePriority   string `json:"issue_priority"`
	IssueStatus     string `json:"issue_status"`
	CreatedAt       string `json:"created_at"`
}

const LinkTimeLayout = "2006-01-02 15:04:05"

func NewUserResponse(user models.User) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

func NewProjectResponse(project models.Project) ProjectResponse {
	collaborators := make([]UserResponse, 0, len(project.Collaborators))
	for _, collaborator := range project.Collaborators {
		collaborators = append(collaborators, NewUserResponse(collaborator.User))
	}

	return ProjectResponse{
		ID:             project.ID,
		Name:           project.Name,
		Description:    project.Description,
		Creator:        NewUserResponse(project.Creator),
		Collaborators:  collaborators,
		DiscordWebhook: project.DiscordWebhook,
		SlackWebhook:   project.SlackWebhook,
		CreatedAt:      project.CreatedAt,
	}
}

func NewIssueResponse(issue models.Issue) IssueResponse {
	return IssueResponse{
		ID:          issue.ID,
		ProjectID:   issue.ProjectID,
		Title:       issue.Title,
		Description: issue.Description,
		Priority:    string(issue.Priority),
		Status:      string(issue.Status),
		StoryPoints: issue.StoryPoints,
		CreatorID:   issue.CreatorID,
		AssigneeID:  issue.AssigneeID,
		SprintID:    issue.SprintID,
		CreatedAt:   issue.CreatedAt,
		UpdatedAt:   issue.UpdatedAt,
	}
}

func NewIssueResponses(issues []models.Issue) []IssueResponse {
	response := make([]IssueResponse, 0, len(issues))
	for _, issue := range issues {
		response = append(response, NewIssueResponse(issue))
	}
	return response
}

func issueIDs(issues []models.Issue) []string {
	ids := make([]string, 0, len(issues))
	for _, issue := range issues {
		ids = append(ids, issue.ID)
	}
	return ids
}

func NewSprintResponse(sprint models.Sprint) SprintResponse {
	return SprintResponse{
		ID:        sprint.ID,
		ProjectID: sprint.ProjectID,
		Name:      sprint.Name,
		StartDate: sprint.StartDate,
		EndDate:   sprint.EndDate,
		IssueIDs:  issueIDs(sprint.Issues),
	}
}

func NewReleaseResponse(release models.Release) ReleaseResponse {
	return ReleaseResponse{
		ID:        release.ID,
		ProjectID: release.ProjectID,
		Version:   release.Version,
		Major:     release.Major,
		Minor:     release.Minor,
		Patch:     release.Patch,
		Notes:     release.Notes,
		CreatorID: release.CreatorID,
		IssueIDs:  issueIDs(release.Issues),
		CreatedAt: release.CreatedAt,
	}
}

func NewTaskResponse(task models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		ProjectID:   task.ProjectID,
		IssueID:     task.IssueID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatorID:   task.CreatorID,
		AssigneeID:  task.AssigneeID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func NewTestResponse(test models.TestCase) TestResponse {
	return TestResponse{
		ID:          test.ID,
		IssueID:     test.IssueID,
		Name:        test.Name,
		ProgramCode: test.ProgramCode,
		TestCode:    test.TestCode,
		CreatorID:   test.CreatorID,
		CreatedAt:   test.CreatedAt,
		UpdatedAt:   test.UpdatedAt,
	}
}

func NewDocumentationResponse(doc models.Documentation) DocumentationResponse {
	return DocumentationResponse{
		ID:        doc.ID,
		ProjectID: doc.ProjectID,
		Title:     doc.Title,
		Content:   doc.Content,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func NewDocumentationIssueResponse(link models.DocumentationIssue) DocumentationIssueResponse {
	return DocumentationIssueResponse{
		ID:              link.ID,
		DocumentationID: link.DocumentationID,
		IssueID:         link.IssueID,
		IssueTitle:      link.Issue.Title,
		IssuePriority:   string(link.Issue.Priority),
		IssueStatus:     string(link.Issue.Status),
		CreatedAt:       link.CreatedAt.Format(LinkTimeLayout),
	}
}
