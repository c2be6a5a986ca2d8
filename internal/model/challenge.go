package model

import "time"

// swagger:model Challenge
type Challenge struct {
	BaseModel
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Key         string    `gorm:"size:16;uniqueIndex;not null" json:"key"` // 参赛邀请码
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	CreatedBy   uint      `gorm:"index;type:bigint unsigned" json:"createdBy"`

	Questions []Question `gorm:"many2many:challenge_questions" json:"questions,omitempty"`
}

func (Challenge) TableName() string {
	return "challenges"
}
