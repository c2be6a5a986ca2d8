package model

// QuizSubmission 每个 (用户, 测验) at most 一条，重复创建会被拒绝。
// TotalScore/TotalTimeTaken 是运行聚合，必须与 Answers 保持一致：
// TotalScore 恒等于当前答对题目的分值之和。
// swagger:model QuizSubmission
type QuizSubmission struct {
	BaseModel
	UserID         uint `gorm:"uniqueIndex:idx_quiz_sub_user_quiz;not null;type:bigint unsigned" json:"userId"`
	QuizID         uint `gorm:"uniqueIndex:idx_quiz_sub_user_quiz;not null;type:bigint unsigned" json:"quizId"`
	TotalScore     int  `gorm:"default:0" json:"totalScore"`
	TotalTimeTaken int  `gorm:"default:0" json:"totalTimeTaken"` // 秒

	Answers []QuizAnswer `gorm:"foreignKey:SubmissionID" json:"answers,omitempty"`
}

func (QuizSubmission) TableName() string {
	return "quiz_submissions"
}

// QuizAnswer 每题一条，重复提交同一题时原地覆盖（last write wins）。
type QuizAnswer struct {
	BaseModel
	SubmissionID   uint `gorm:"uniqueIndex:idx_quiz_answer_sub_question;not null;type:bigint unsigned" json:"submissionId"`
	QuestionID     uint `gorm:"uniqueIndex:idx_quiz_answer_sub_question;not null;type:bigint unsigned" json:"questionId"`
	SelectedOption *int `json:"selectedOption"` // null 表示未作答
	IsCorrect      bool `gorm:"default:false" json:"isCorrect"`
	TimeTaken      int  `gorm:"default:0" json:"timeTaken"` // 秒
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
