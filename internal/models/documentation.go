package models

type Documentation struct {
	BaseModel

	ProjectID string `gorm:"type:varchar(36);not null;index"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text"`

	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (Documentation) TableName() string {
	return "documentation"
}

type DocumentationIssue struct {
	BaseModel

	DocumentationID string `gorm:"type:varchar(36);not null;uniqueIndex:idx_documentation_issue"`
	IssueID         string `gorm:"type:varchar(36);not null;uniqueIndex:idx_documentation_issue;index"`

	// Relationships
	Documentation Documentation `gorm:"foreignKey:DocumentationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Issue         Issue         `gorm:"foreignKey:IssueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
