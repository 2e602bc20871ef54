package models

type Release struct {
	BaseModel

	ProjectID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_project_version"`
	Version   string `gorm:"type:varchar(64);not null;uniqueIndex:idx_project_version"`
	Major     int    `gorm:"not null"`
	Minor     int    `gorm:"not null"`
	Patch     int    `gorm:"not null"`
	Notes     string
	CreatorID string `gorm:"type:varchar(36);not null"`

	// Relationships
	Issues []Issue `gorm:"many2many:release_issues"`
}
