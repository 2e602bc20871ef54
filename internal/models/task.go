package models

type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskDone:
		return true
	}
	return false
}

type Task struct {
	BaseModel

	// ProjectID duplicates the issue's project for project-scoped queries.
	ProjectID   string     `gorm:"type:varchar(36);not null;index"`
	IssueID     string     `gorm:"type:varchar(36);not null;index"`
	Title       string     `gorm:"not null"`
	Description string
	Status      TaskStatus `gorm:"type:varchar(16);not null"`
	CreatorID   string     `gorm:"type:varchar(36);not null"`
	AssigneeID  *string    `gorm:"type:varchar(36)"`

	Issue Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}
