package model

import "time"

type ProgressStatus string

const (
	ProgressInProgress ProgressStatus = "inProgress"
	ProgressCompleted  ProgressStatus = "completed"
	ProgressEnded      ProgressStatus = "ended" // 终态，结束后不可再加入或改动
)

// ChallengeProgress 每个 (用户, 挑战) at most 一条。
// swagger:model ChallengeProgress
type ChallengeProgress struct {
	BaseModel
	UserID      uint           `gorm:"uniqueIndex:idx_progress_user_challenge;not null;type:bigint unsigned" json:"userId"`
	ChallengeID uint           `gorm:"uniqueIndex:idx_progress_user_challenge;not null;type:bigint unsigned" json:"challengeId"`
	Score       int            `gorm:"default:0" json:"score"`
	Penalties   int            `gorm:"default:0" json:"penalties"`
	HintsUsed   int            `gorm:"default:0" json:"hintsUsed"`
	Status      ProgressStatus `gorm:"size:20;default:'inProgress'" json:"status"`
	StartTime   time.Time      `json:"startTime"`
	EndTime     *time.Time     `json:"endTime,omitempty"`
	TimeTaken   int64          `gorm:"default:0" json:"timeTaken"` // 秒，结束时写入
	LastUpdated time.Time      `json:"lastUpdated"`

	SolvedQuestions []ChallengeSolvedQuestion `gorm:"foreignKey:ProgressID" json:"solvedQuestions,omitempty"`
}

func (ChallengeProgress) TableName() string {
	return "challenge_progresses"
}

// ChallengeSolvedQuestion 已解题集合的一行。(progress, question) 上的唯一索引
// 让"同一题只计分一次"落在数据库层：插入不生效即不加分。
type ChallengeSolvedQuestion struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProgressID uint      `gorm:"uniqueIndex:idx_solved_progress_question;not null;type:bigint unsigned" json:"progressId"`
	QuestionID uint      `gorm:"uniqueIndex:idx_solved_progress_question;not null;type:bigint unsigned" json:"questionId"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (ChallengeSolvedQuestion) TableName() string {
	return "challenge_solved_questions"
}
