package models

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type IssueStatus string

const (
	IssueTodo       IssueStatus = "TODO"
	IssueInProgress IssueStatus = "IN_PROGRESS"
	IssueClosed     IssueStatus = "CLOSED"
)

func (s IssueStatus) Valid() bool {
	switch s {
	case IssueTodo, IssueInProgress, IssueClosed:
		return true
	}
	return false
}

type Issue struct {
	BaseModel

	ProjectID   string      `gorm:"type:varchar(36);not null;index"`
	Title       string      `gorm:"not null"`
	Description string
	Priority    Priority    `gorm:"type:varchar(16);not null"`
	Status      IssueStatus `gorm:"type:varchar(16);not null"`
	StoryPoints int         `gorm:"not null;default:0"`
	CreatorID   string      `gorm:"type:varchar(36);not null"`
	AssigneeID  *string     `gorm:"type:varchar(36)"`
	// SprintID is the only link from an issue back to its sprint.
	SprintID *string `gorm:"type:varchar(36);index"`

	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
