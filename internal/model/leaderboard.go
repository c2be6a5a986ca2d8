package model

import "encoding/json"

// Leaderboard 是由 ChallengeProgress 推导出的缓存视图，每次重算整体覆盖，
// 丢弃重建不影响正确性。
// swagger:model Leaderboard
type Leaderboard struct {
	BaseModel
	ChallengeID  uint            `gorm:"uniqueIndex;not null;type:bigint unsigned" json:"challengeId"`
	Participants json.RawMessage `gorm:"type:json" json:"participants"`
}

func (Leaderboard) TableName() string {
	return "leaderboards"
}

// LeaderboardEntry 排行榜中的一条快照
type LeaderboardEntry struct {
	UserID     uint   `json:"userId"`
	Username   string `json:"username"`
	TotalScore int    `json:"totalScore"`
	TimeTaken  int64  `json:"timeTaken"`
}
