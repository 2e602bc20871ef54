package models

type Project struct {
	BaseModel

	Name           string `gorm:"not null"`
	Description    string
	CreatorID      string `gorm:"type:varchar(36);not null;index"`
	DiscordWebhook string
	SlackWebhook   string

	// Relationships
	Creator       User                  `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Collaborators []ProjectCollaborator `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// ProjectCollaborator grants a user write access to a project it did not create.
type ProjectCollaborator struct {
	BaseModel

	ProjectID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_user"`
	UserID    string `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_user"`

	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
