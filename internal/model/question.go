package model

// swagger:model Question
type Question struct {
	BaseModel
	Title            string      `gorm:"size:200;not null" json:"title"`
	ProblemStatement string      `gorm:"type:text;not null" json:"problemStatement"`
	InputFormat      string      `gorm:"type:text" json:"inputFormat"`
	OutputFormat     string      `gorm:"type:text" json:"outputFormat"`
	Constraints      StringSlice `gorm:"type:json" json:"constraints"`
	Hints            StringSlice `gorm:"type:json" json:"hints"`
	MaxScore         int         `gorm:"not null" json:"maxScore"`
	Difficulty       string      `gorm:"size:20" json:"difficulty"`
	TimeLimit        int         `gorm:"default:1" json:"timeLimit"`     // 秒
	MemoryLimit      int         `gorm:"default:256" json:"memoryLimit"` // MB
	LanguagesAllowed StringSlice `gorm:"type:json" json:"languagesAllowed"`
	IsActive         bool        `gorm:"default:true" json:"isActive"`
	CreatedBy        uint        `gorm:"index;type:bigint unsigned" json:"createdBy"`

	TestCases []TestCase `gorm:"foreignKey:QuestionID" json:"testCases,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
