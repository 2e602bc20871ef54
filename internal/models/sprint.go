package models

import "time"

type Sprint struct {
	BaseModel

	ProjectID string    `gorm:"type:varchar(36);not null;index"`
	Name      string    `gorm:"not null"`
	StartDate time.Time `gorm:"not null"`
	EndDate   time.Time `gorm:"not null"`

	// Relationships
	Issues []Issue `gorm:"foreignKey:SprintID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
