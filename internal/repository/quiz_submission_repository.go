package repository

import (
	"code_arena_backend/internal/model"

	"gorm.io/gorm"
)

type QuizSubmissionRepository struct {
	DB *gorm.DB
}

func NewQuizSubmissionRepository(db *gorm.DB) *QuizSubmissionRepository {
	return &QuizSubmissionRepository{DB: db}
}

func (r *QuizSubmissionRepository) Create(s *model.QuizSubmission) error {
	return r.DB.Create(s).Error
}

func (r *QuizSubmissionRepository) FindByUserAndQuiz(userID, quizID uint) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *QuizSubmissionRepository) FindByUserAndQuizWithAnswers(userID, quizID uint) (*model.QuizSubmission, error) {
	var s model.QuizSubmission
	err := r.DB.Preload("Answers").Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *QuizSubmissionRepository) FindAnswer(submissionID, questionID uint) (*model.QuizAnswer, error) {
	var a model.QuizAnswer
	err := r.DB.Where("submission_id = ? AND question_id = ?", submissionID, questionID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// SaveAnswerWithTotals 答案行和聚合字段在同一个事务里落盘，保证两者不发散
func (r *QuizSubmissionRepository) SaveAnswerWithTotals(s *model.QuizSubmission, a *model.QuizAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		return tx.Model(&model.QuizSubmission{}).Where("id = ?", s.ID).
			Updates(map[string]interface{}{
				"total_score":      s.TotalScore,
				"total_time_taken": s.TotalTimeTaken,
			}).Error
	})
}

// ListByQuiz 按 totalScore 降序、totalTimeTaken 升序返回（测验排行榜顺序）
func (r *QuizSubmissionRepository) ListByQuiz(quizID uint) ([]model.QuizSubmission, error) {
	var ss []model.QuizSubmission
	err := r.DB.Preload("Answers").Where("quiz_id = ?", quizID).
		Order("total_score desc, total_time_taken asc").Find(&ss).Error
	return ss, err
}
