package service

import (
	"context"
	"errors"
	"strconv"

	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/util"
	"code_arena_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	ChallengeRepo  *repository.ChallengeRepository
	QuestionRepo   *repository.QuestionRepository
	ProgressRepo   *repository.ProgressRepository
	Executor       *ExecutorService
	Logger         *zap.Logger
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	challengeRepo *repository.ChallengeRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	executor *ExecutorService,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		ChallengeRepo:  challengeRepo,
		QuestionRepo:   questionRepo,
		ProgressRepo:   progressRepo,
		Executor:       executor,
		Logger:         logger,
	}
}

type SubmitSolutionRequest struct {
	ChallengeID uint   `json:"challengeId" binding:"required"`
	QuestionID  uint   `json:"questionId" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Language    string `json:"language" binding:"required"`
}

type SubmitSolutionResult struct {
	SubmissionID    string                 `json:"submissionId"`
	Status          model.SubmissionStatus `json:"status"`
	Score           string                 `json:"score"`
	TotalTestCases  int                    `json:"totalTestCases"`
	PassedTestCases int                    `json:"passedTestCases"`
	ErrorDetails    string                 `json:"errorDetails,omitempty"`
	Results         []TestCaseResult       `json:"results"`
}

// decideScore 决定一次提交记录里的分数标记。
// 该题一旦得过分，之后的任何提交（无论过没过）都记为已得分。
func decideScore(alreadyCredited, allPassed bool, maxScore int) string {
	if alreadyCredited {
		return model.ScoreAlreadyEarned
	}
	if allPassed {
		return strconv.Itoa(maxScore)
	}
	return "0"
}

// SubmitSolution 评测一次编程题提交并在通过时结算分数
func (s *SubmissionService) SubmitSolution(ctx context.Context, userID uint, req SubmitSolutionRequest) (*SubmitSolutionResult, error) {
	// 1. 校验挑战和题目
	challenge, err := s.ChallengeRepo.FindByID(req.ChallengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	inChallenge, err := s.ChallengeRepo.HasQuestion(challenge.ID, req.QuestionID)
	if err != nil {
		return nil, err
	}
	if !inChallenge {
		return nil, util.ErrQuestionNotInChallenge
	}
	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}

	// 2. 挑战已结束的参与者不能继续得分
	progress, err := s.ProgressRepo.FindByUserAndChallenge(userID, challenge.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if progress != nil && progress.Status == model.ProgressEnded {
		return nil, util.ErrChallengeEnded
	}

	// 3. 该题是否已有通过记录，决定本次得分的记账方式
	alreadyCredited, err := s.SubmissionRepo.HasPassingSubmission(userID, challenge.ID, question.ID)
	if err != nil {
		return nil, err
	}

	// 4. 取全部用例并逐个评测，首个失败即停止
	testCases, err := s.QuestionRepo.ListTestCases(question.ID)
	if err != nil {
		return nil, err
	}
	if len(testCases) == 0 {
		return nil, util.ErrNoTestCases
	}

	report, err := s.Executor.Execute(ctx, req.Code, req.Language, testCases, true)
	if err != nil {
		return nil, err
	}

	// 5. 结算并落盘提交记录
	status := model.SubmissionFail
	if report.AllPassed() {
		status = model.SubmissionPass
	}
	score := decideScore(alreadyCredited, report.AllPassed(), question.MaxScore)

	submission := &model.Submission{
		UserID:      userID,
		ChallengeID: challenge.ID,
		QuestionID:  question.ID,
		Code:        req.Code,
		Language:    req.Language,
		Status:      status,
		Score:       score,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	monitoring.SubmissionCounter.WithLabelValues(req.Language, string(status)).Inc()

	// 6. 通过且未得过分时记入挑战进度，唯一索引保证并发下只记一次
	if status == model.SubmissionPass && !alreadyCredited {
		credited, err := s.ProgressRepo.CreditSolvedQuestion(userID, challenge.ID, question.ID, question.MaxScore)
		if err != nil {
			return nil, err
		}
		if !credited {
			s.Logger.Info("score already credited by concurrent submission",
				zap.Uint("userId", userID), zap.Uint("questionId", question.ID))
			submission.Score = model.ScoreAlreadyEarned
			if err := s.SubmissionRepo.Save(submission); err != nil {
				s.Logger.Warn("failed to downgrade submission score",
					zap.String("submissionId", submission.ID), zap.Error(err))
			}
		}
	}

	return &SubmitSolutionResult{
		SubmissionID:    submission.ID,
		Status:          status,
		Score:           submission.Score,
		TotalTestCases:  report.TotalTestCases,
		PassedTestCases: report.PassedTestCases,
		ErrorDetails:    report.ErrorDetails,
		Results:         report.Results,
	}, nil
}

// RunSolution 只执行不记分，用于挑战中的自测（可见用例）
func (s *SubmissionService) RunSolution(ctx context.Context, req SubmitSolutionRequest) (*ExecutionReport, error) {
	question, err := s.QuestionRepo.FindByIDWithVisibleTestCases(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuestionNotFound
		}
		return nil, err
	}
	if len(question.TestCases) == 0 {
		return nil, util.ErrNoTestCases
	}
	return s.Executor.Execute(ctx, req.Code, req.Language, question.TestCases, false)
}

func (s *SubmissionService) GetSubmission(id string) (*model.Submission, error) {
	sub, err := s.SubmissionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSubmissionNotFound
		}
		return nil, err
	}
	return sub, nil
}

func (s *SubmissionService) ListUserSubmissions(userID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.ListByUser(userID)
}

func (s *SubmissionService) ListQuestionSubmissions(userID, challengeID, questionID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.ListByChallengeQuestionUser(challengeID, questionID, userID)
}

func (s *SubmissionService) DeleteSubmission(id string) error {
	if _, err := s.GetSubmission(id); err != nil {
		return err
	}
	return s.SubmissionRepo.Delete(id)
}
