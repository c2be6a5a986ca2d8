package repository

import (
	"code_arena_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

// HasPassingSubmission 判断该用户在这道题上是否已有通过记录（alreadyCredited 前置检查）
func (r *SubmissionRepository) Save(s *model.Submission) error {
	return r.DB.Save(s).Error
}

func (r *SubmissionRepository) HasPassingSubmission(userID, challengeID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND question_id = ? AND status = ?",
			userID, challengeID, questionID, model.SubmissionPass).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *SubmissionRepository) ListByUser(userID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) ListByChallengeQuestionUser(challengeID, questionID, userID uint) ([]model.Submission, error) {
	var ss []model.Submission
	err := r.DB.Where("challenge_id = ? AND question_id = ? AND user_id = ?", challengeID, questionID, userID).
		Order("created_at desc").Find(&ss).Error
	return ss, err
}

func (r *SubmissionRepository) Delete(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.Submission{}).Error
}
