package model

import "time"

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:100" json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Duration    int       `json:"duration"` // 分钟
	MaxAttempts int       `gorm:"default:1" json:"maxAttempts"`
	TotalMarks  int       `gorm:"default:0" json:"totalMarks"`
	CreatedBy   uint      `gorm:"index;type:bigint unsigned" json:"createdBy"`

	Questions []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
