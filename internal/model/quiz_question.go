package model

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID             uint        `gorm:"index;not null;type:bigint unsigned" json:"quizId"`
	Text               string      `gorm:"type:text;not null" json:"text"`
	Options            StringSlice `gorm:"type:json;not null" json:"options"`
	CorrectAnswerIndex int         `gorm:"not null" json:"correctAnswerIndex"`
	Marks              int         `gorm:"not null;default:1" json:"marks"`
	Difficulty         string      `gorm:"size:20;default:'medium'" json:"difficulty"`
	Explanation        string      `gorm:"type:text" json:"explanation"`
	Tags               StringSlice `gorm:"type:json" json:"tags"`
	CreatedBy          uint        `gorm:"index;type:bigint unsigned" json:"createdBy"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}
