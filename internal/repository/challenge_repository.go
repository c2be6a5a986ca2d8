package repository

import (
	"code_arena_backend/internal/model"

	"gorm.io/gorm"
)

type ChallengeRepository struct {
	DB *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) *ChallengeRepository {
	return &ChallengeRepository{DB: db}
}

func (r *ChallengeRepository) Create(c *model.Challenge) error {
	return r.DB.Create(c).Error
}

func (r *ChallengeRepository) FindByID(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.First(&c, id).Error
	return &c, err
}

func (r *ChallengeRepository) FindByIDWithQuestions(id uint) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.Preload("Questions").First(&c, id).Error
	return &c, err
}

func (r *ChallengeRepository) FindByKey(key string) (*model.Challenge, error) {
	var c model.Challenge
	err := r.DB.Where("`key` = ?", key).First(&c).Error
	return &c, err
}

func (r *ChallengeRepository) List(page, limit int) ([]model.Challenge, int64, error) {
	var cs []model.Challenge
	var total int64
	query := r.DB.Model(&model.Challenge{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&cs).Error
	return cs, total, err
}

func (r *ChallengeRepository) Update(c *model.Challenge) error {
	return r.DB.Save(c).Error
}

func (r *ChallengeRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Challenge{}, id).Error
}

func (r *ChallengeRepository) AddQuestion(c *model.Challenge, q *model.Question) error {
	return r.DB.Model(c).Association("Questions").Append(q)
}

func (r *ChallengeRepository) RemoveQuestion(c *model.Challenge, q *model.Question) error {
	return r.DB.Model(c).Association("Questions").Delete(q)
}

func (r *ChallengeRepository) HasQuestion(challengeID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.Table("challenge_questions").
		Where("challenge_id = ? AND question_id = ?", challengeID, questionID).
		Count(&count).Error
	return count > 0, err
}
