package repository

import (
	"code_arena_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LeaderboardRepository struct {
	DB *gorm.DB
}

func NewLeaderboardRepository(db *gorm.DB) *LeaderboardRepository {
	return &LeaderboardRepository{DB: db}
}

// Upsert 整体覆盖该挑战的排行榜文档
func (r *LeaderboardRepository) Upsert(lb *model.Leaderboard) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "challenge_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"participants", "updated_at"}),
	}).Create(lb).Error
}

func (r *LeaderboardRepository) FindByChallenge(challengeID uint) (*model.Leaderboard, error) {
	var lb model.Leaderboard
	err := r.DB.Where("challenge_id = ?", challengeID).First(&lb).Error
	return &lb, err
}

// UsernamesByIDs 排行榜展示用的用户名映射
func (r *LeaderboardRepository) UsernamesByIDs(ids []uint) (map[uint]string, error) {
	if len(ids) == 0 {
		return map[uint]string{}, nil
	}
	var users []model.User
	if err := r.DB.Select("id", "username").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	names := make(map[uint]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}
	return names, nil
}
