package service

import (
	"errors"

	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/util"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type QuizSubmissionService struct {
	QuizRepo           *repository.QuizRepository
	QuizSubmissionRepo *repository.QuizSubmissionRepository
	Logger             *zap.Logger
}

func NewQuizSubmissionService(
	quizRepo *repository.QuizRepository,
	quizSubmissionRepo *repository.QuizSubmissionRepository,
	logger *zap.Logger,
) *QuizSubmissionService {
	return &QuizSubmissionService{
		QuizRepo:           quizRepo,
		QuizSubmissionRepo: quizSubmissionRepo,
		Logger:             logger,
	}
}

type QuizAnswerRequest struct {
	QuestionID     uint `json:"questionId" binding:"required"`
	SelectedOption *int `json:"selectedOption"`
	TimeTaken      int  `json:"timeTaken"`
}

// InitializeSubmission 为 (用户, 测验) 建提交记录，已存在则拒绝
func (s *QuizSubmissionService) InitializeSubmission(userID, quizID uint) (*model.QuizSubmission, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if _, err := s.QuizSubmissionRepo.FindByUserAndQuiz(userID, quizID); err == nil {
		return nil, util.ErrQuizAlreadyAttempted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	sub := &model.QuizSubmission{UserID: userID, QuizID: quizID}
	if err := s.QuizSubmissionRepo.Create(sub); err != nil {
		return nil, err
	}
	return sub, nil
}

// AnswerDelta 计算覆盖一条答案对聚合字段的增量。
// 正确性翻转时分数增减该题分值，耗时取新旧差值。
func AnswerDelta(marks int, old *model.QuizAnswer, newCorrect bool, newTimeTaken int) (scoreDelta, timeDelta int) {
	oldCorrect := false
	oldTime := 0
	if old != nil {
		oldCorrect = old.IsCorrect
		oldTime = old.TimeTaken
	}
	if newCorrect && !oldCorrect {
		scoreDelta = marks
	} else if !newCorrect && oldCorrect {
		scoreDelta = -marks
	}
	timeDelta = newTimeTaken - oldTime
	return scoreDelta, timeDelta
}

// SubmitQuestion 提交（或覆盖）单题答案并同步聚合分数和耗时
func (s *QuizSubmissionService) SubmitQuestion(userID, quizID uint, req QuizAnswerRequest) (*model.QuizSubmission, error) {
	sub, err := s.QuizSubmissionRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizSubmissionMissing
		}
		return nil, err
	}

	question, err := s.QuizRepo.FindQuestionByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizQuestionNotFound
		}
		return nil, err
	}
	if question.QuizID != quizID {
		return nil, util.ErrQuizQuestionNotFound
	}

	if err := s.applyAnswer(sub, question, req); err != nil {
		return nil, err
	}
	return sub, nil
}

// SubmitQuestions 批量提交，测验中不存在的题目跳过不报错
func (s *QuizSubmissionService) SubmitQuestions(userID, quizID uint, reqs []QuizAnswerRequest) (*model.QuizSubmission, error) {
	sub, err := s.QuizSubmissionRepo.FindByUserAndQuiz(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizSubmissionMissing
		}
		return nil, err
	}

	questions, err := s.QuizRepo.ListQuestions(quizID)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.QuizQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for _, req := range reqs {
		question, ok := byID[req.QuestionID]
		if !ok {
			s.Logger.Debug("skipping answer for unknown quiz question",
				zap.Uint("quizId", quizID), zap.Uint("questionId", req.QuestionID))
			continue
		}
		if err := s.applyAnswer(sub, question, req); err != nil {
			return nil, err
		}
	}
	return sub, nil
}

func (s *QuizSubmissionService) applyAnswer(sub *model.QuizSubmission, question *model.QuizQuestion, req QuizAnswerRequest) error {
	isCorrect := req.SelectedOption != nil && *req.SelectedOption == question.CorrectAnswerIndex

	old, err := s.QuizSubmissionRepo.FindAnswer(sub.ID, question.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	scoreDelta, timeDelta := AnswerDelta(question.Marks, old, isCorrect, req.TimeTaken)

	answer := old
	if answer == nil {
		answer = &model.QuizAnswer{
			SubmissionID: sub.ID,
			QuestionID:   question.ID,
		}
	}
	answer.SelectedOption = req.SelectedOption
	answer.IsCorrect = isCorrect
	answer.TimeTaken = req.TimeTaken

	sub.TotalScore += scoreDelta
	sub.TotalTimeTaken += timeDelta
	return s.QuizSubmissionRepo.SaveAnswerWithTotals(sub, answer)
}

func (s *QuizSubmissionService) GetUserSubmission(userID, quizID uint) (*model.QuizSubmission, error) {
	sub, err := s.QuizSubmissionRepo.FindByUserAndQuizWithAnswers(userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizSubmissionMissing
		}
		return nil, err
	}
	return sub, nil
}
