package model

type SubmissionStatus string

const (
	SubmissionPass    SubmissionStatus = "pass"
	SubmissionFail    SubmissionStatus = "fail"
	SubmissionPending SubmissionStatus = "pending"
)

// ScoreAlreadyEarned 重复通过同一题时记录在提交历史上的得分标记
const ScoreAlreadyEarned = "Already earned"

// Submission 是只追加的提交历史，每次评测都会新建一条记录。
// Score 为字符串：数字得分或 ScoreAlreadyEarned。
// swagger:model Submission
type Submission struct {
	UUIDBase
	UserID      uint             `gorm:"index:idx_sub_user_chal_q;not null;type:bigint unsigned" json:"userId"`
	ChallengeID uint             `gorm:"index:idx_sub_user_chal_q;not null;type:bigint unsigned" json:"challengeId"`
	QuestionID  uint             `gorm:"index:idx_sub_user_chal_q;not null;type:bigint unsigned" json:"questionId"`
	Code        string           `gorm:"type:text;not null" json:"code"`
	Language    string           `gorm:"size:30;not null" json:"language"`
	Status      SubmissionStatus `gorm:"size:10;default:'pending'" json:"status"`
	Score       string           `gorm:"size:20;default:'0'" json:"score"`
}

func (Submission) TableName() string {
	return "submissions"
}
