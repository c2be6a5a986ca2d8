package service

import (
	"errors"

	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
}

func NewQuestionService(questionRepo *repository.QuestionRepository) *QuestionService {
	return &QuestionService{QuestionRepo: questionRepo}
}

type QuestionRequest struct {
	Title            string   `json:"title" binding:"required"`
	ProblemStatement string   `json:"problemStatement" binding:"required"`
	InputFormat      string   `json:"inputFormat"`
	OutputFormat     string   `json:"outputFormat"`
	Constraints      []string `json:"constraints"`
	Hints            []string `json:"hints"`
	MaxScore         int      `json:"maxScore" binding:"required,gt=0"`
	Difficulty       string   `json:"difficulty"`
	TimeLimit        int      `json:"timeLimit"`
	MemoryLimit      int      `json:"memoryLimit"`
	LanguagesAllowed []string `json:"languagesAllowed"`
}

type TestCaseRequest struct {
	Input    string `json:"input" binding:"required"`
	Output   string `json:"output" binding:"required"`
	Type     string `json:"type"`
	IsHidden bool   `json:"isHidden"`
}

func (s *QuestionService) CreateQuestion(creatorID uint, req QuestionRequest) (*model.Question, error) {
	q := &model.Question{
		Title:            req.Title,
		ProblemStatement: req.ProblemStatement,
		InputFormat:      req.InputFormat,
		OutputFormat:     req.OutputFormat,
		Constraints:      req.Constraints,
		Hints:            req.Hints,
		MaxScore:         req.MaxScore,
		Difficulty:       req.Difficulty,
		TimeLimit:        req.TimeLimit,
		MemoryLimit:      req.MemoryLimit,
		LanguagesAllowed: req.LanguagesAllowed,
		IsActive:         true,
		CreatedBy:        creatorID,
	}
	if q.TimeLimit <= 0 {
		q.TimeLimit = 1
	}
	if q.MemoryLimit <= 0 {
		q.MemoryLimit = 256
	}
	if err := s.QuestionRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestion(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

// GetQuestionForParticipant 参赛者视角：只带非隐藏用例
func (s *QuestionService) GetQuestionForParticipant(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByIDWithVisibleTestCases(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) GetQuestionWithTestCases(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByIDWithTestCases(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) ListQuestions(page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.QuestionRepo.List(page, limit)
}

func (s *QuestionService) UpdateQuestion(id uint, req QuestionRequest) (*model.Question, error) {
	q, err := s.GetQuestion(id)
	if err != nil {
		return nil, err
	}
	q.Title = req.Title
	q.ProblemStatement = req.ProblemStatement
	q.InputFormat = req.InputFormat
	q.OutputFormat = req.OutputFormat
	q.Constraints = req.Constraints
	q.Hints = req.Hints
	q.MaxScore = req.MaxScore
	q.Difficulty = req.Difficulty
	if req.TimeLimit > 0 {
		q.TimeLimit = req.TimeLimit
	}
	if req.MemoryLimit > 0 {
		q.MemoryLimit = req.MemoryLimit
	}
	q.LanguagesAllowed = req.LanguagesAllowed
	if err := s.QuestionRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) DeleteQuestion(id uint) error {
	if _, err := s.GetQuestion(id); err != nil {
		return err
	}
	return s.QuestionRepo.Delete(id)
}

func (s *QuestionService) AddTestCase(questionID uint, req TestCaseRequest) (*model.TestCase, error) {
	if _, err := s.GetQuestion(questionID); err != nil {
		return nil, err
	}
	tcType := model.TestCaseType(req.Type)
	if tcType == "" {
		tcType = model.TestCaseSingleLine
	}
	tc := &model.TestCase{
		QuestionID: questionID,
		Input:      req.Input,
		Output:     req.Output,
		Type:       tcType,
		IsHidden:   req.IsHidden,
	}
	if err := s.QuestionRepo.CreateTestCase(tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func (s *QuestionService) UpdateTestCase(id uint, req TestCaseRequest) (*model.TestCase, error) {
	tc, err := s.QuestionRepo.FindTestCaseByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	tc.Input = req.Input
	tc.Output = req.Output
	if req.Type != "" {
		tc.Type = model.TestCaseType(req.Type)
	}
	tc.IsHidden = req.IsHidden
	if err := s.QuestionRepo.UpdateTestCase(tc); err != nil {
		return nil, err
	}
	return tc, nil
}

func (s *QuestionService) DeleteTestCase(id uint) error {
	if _, err := s.QuestionRepo.FindTestCaseByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	return s.QuestionRepo.DeleteTestCase(id)
}
