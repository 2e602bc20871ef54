package models

// TestCase pairs the program under test with the code exercising it.
type TestCase struct {
	BaseModel

	IssueID     string `gorm:"type:varchar(36);not null;index"`
	Name        string `gorm:"not null"`
	ProgramCode string `gorm:"type:text"`
	TestCode    string `gorm:"type:text"`
	CreatorID   string `gorm:"type:varchar(36);not null"`

	Issue Issue `gorm:"foreignKey:IssueID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

func (TestCase) TableName() string {
	return "tests"
}
