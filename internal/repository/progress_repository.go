package repository

import (
	"code_arena_backend/internal/model"
	"code_arena_backend/internal/util"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUserAndChallenge(userID, challengeID uint) (*model.ChallengeProgress, error) {
	var p model.ChallengeProgress
	err := r.DB.Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) FindByUserAndChallengeWithSolved(userID, challengeID uint) (*model.ChallengeProgress, error) {
	var p model.ChallengeProgress
	err := r.DB.Preload("SolvedQuestions").
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProgressRepository) Create(p *model.ChallengeProgress) error {
	return r.DB.Create(p).Error
}

func (r *ProgressRepository) Save(p *model.ChallengeProgress) error {
	return r.DB.Save(p).Error
}

func (r *ProgressRepository) ListByChallenge(challengeID uint) ([]model.ChallengeProgress, error) {
	var ps []model.ChallengeProgress
	err := r.DB.Where("challenge_id = ?", challengeID).Find(&ps).Error
	return ps, err
}

// CreditSolvedQuestion 把题目加入已解集合并加分，整体在一个事务里完成。
// (progress_id, question_id) 上的唯一索引保证同一题的加分至多生效一次：
// 插入未生效（已存在）就不加分，并发的重复提交也不会双重计分。
// 没有进度记录时创建（upsert 语义）。返回是否真正计了分。
func (r *ProgressRepository) CreditSolvedQuestion(userID, challengeID, questionID uint, points int) (bool, error) {
	credited := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var progress model.ChallengeProgress
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ? AND challenge_id = ?", userID, challengeID).
			First(&progress).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			progress = model.ChallengeProgress{
				UserID:      userID,
				ChallengeID: challengeID,
				Status:      model.ProgressInProgress,
				StartTime:   time.Now(),
				LastUpdated: time.Now(),
			}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&progress).Error; err != nil {
				return err
			}
			if progress.ID == 0 {
				// 并发创建被唯一索引挡掉，重读对方的记录
				if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
					Where("user_id = ? AND challenge_id = ?", userID, challengeID).
					First(&progress).Error; err != nil {
					return err
				}
			}
		} else if err != nil {
			return err
		}

		if progress.Status == model.ProgressEnded {
			return util.ErrChallengeEnded
		}

		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.ChallengeSolvedQuestion{
			ProgressID: progress.ID,
			QuestionID: questionID,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		credited = true
		return tx.Model(&model.ChallengeProgress{}).Where("id = ?", progress.ID).
			Updates(map[string]interface{}{
				"score":        gorm.Expr("score + ?", points),
				"last_updated": time.Now(),
			}).Error
	})
	return credited, err
}
