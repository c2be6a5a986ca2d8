package model

type TestCaseType string

const (
	TestCaseSingleLine TestCaseType = "single-line"
	TestCaseMultiLine  TestCaseType = "multi-line"
	TestCaseEdgeCase   TestCaseType = "edge-case"
)

// 隐藏用例不会出现在学生端的题目详情里，防止针对用例硬编码。
// swagger:model TestCase
type TestCase struct {
	BaseModel
	QuestionID uint         `gorm:"index;not null;type:bigint unsigned" json:"questionId"`
	Input      string       `gorm:"type:text;not null" json:"input"`
	Output     string       `gorm:"type:text;not null" json:"output"`
	Type       TestCaseType `gorm:"size:20;default:'single-line'" json:"type"`
	IsHidden   bool         `gorm:"default:false" json:"isHidden"`
}

func (TestCase) TableName() string {
	return "test_cases"
}
