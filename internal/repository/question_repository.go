package repository

import (
	"code_arena_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) FindByIDWithTestCases(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("TestCases").First(&q, id).Error
	return &q, err
}

// FindByIDWithVisibleTestCases 学生端题目详情：隐藏用例不返回
func (r *QuestionRepository) FindByIDWithVisibleTestCases(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("TestCases", "is_hidden = ?", false).First(&q, id).Error
	return &q, err
}

func (r *QuestionRepository) List(page, limit int) ([]model.Question, int64, error) {
	var qs []model.Question
	var total int64
	query := r.DB.Model(&model.Question{}).Where("is_active = ?", true)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

func (r *QuestionRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Question{}, id).Error
}

// Test case methods
func (r *QuestionRepository) CreateTestCase(tc *model.TestCase) error {
	return r.DB.Create(tc).Error
}

func (r *QuestionRepository) FindTestCaseByID(id uint) (*model.TestCase, error) {
	var tc model.TestCase
	err := r.DB.First(&tc, id).Error
	return &tc, err
}

// ListTestCases 按创建顺序返回，评测时用例顺序即存储顺序
func (r *QuestionRepository) ListTestCases(questionID uint) ([]model.TestCase, error) {
	var tcs []model.TestCase
	err := r.DB.Where("question_id = ?", questionID).Order("id asc").Find(&tcs).Error
	return tcs, err
}

func (r *QuestionRepository) UpdateTestCase(tc *model.TestCase) error {
	return r.DB.Save(tc).Error
}

func (r *QuestionRepository) DeleteTestCase(id uint) error {
	return r.DB.Delete(&model.TestCase{}, id).Error
}
