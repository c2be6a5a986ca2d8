package service

import (
	"errors"
	"fmt"
	"time"

	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo           *repository.QuizRepository
	QuizSubmissionRepo *repository.QuizSubmissionRepository
	LeaderboardRepo    *repository.LeaderboardRepository
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	quizSubmissionRepo *repository.QuizSubmissionRepository,
	leaderboardRepo *repository.LeaderboardRepository,
) *QuizService {
	return &QuizService{
		QuizRepo:           quizRepo,
		QuizSubmissionRepo: quizSubmissionRepo,
		LeaderboardRepo:    leaderboardRepo,
	}
}

type QuizRequest struct {
	Name        string    `json:"name" binding:"required"`
	Description string    `json:"description"`
	Subject     string    `json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Duration    int       `json:"duration"`
	MaxAttempts int       `json:"maxAttempts"`
}

type QuizQuestionRequest struct {
	Text               string   `json:"text" binding:"required"`
	Options            []string `json:"options" binding:"required"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Marks              int      `json:"marks"`
	Difficulty         string   `json:"difficulty"`
	Explanation        string   `json:"explanation"`
	Tags               []string `json:"tags"`
}

func validateQuizQuestion(req QuizQuestionRequest) error {
	if len(req.Options) < 2 {
		return fmt.Errorf("question must have at least 2 options")
	}
	if req.CorrectAnswerIndex < 0 || req.CorrectAnswerIndex >= len(req.Options) {
		return fmt.Errorf("correctAnswerIndex out of range")
	}
	if req.Marks <= 0 {
		return fmt.Errorf("marks must be positive")
	}
	return nil
}

func (s *QuizService) CreateQuiz(creatorID uint, req QuizRequest) (*model.Quiz, error) {
	q := &model.Quiz{
		Name:        req.Name,
		Description: req.Description,
		Subject:     req.Subject,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Duration:    req.Duration,
		MaxAttempts: req.MaxAttempts,
		CreatedBy:   creatorID,
	}
	if q.MaxAttempts <= 0 {
		q.MaxAttempts = 1
	}
	if err := s.QuizRepo.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) GetQuiz(id uint) (*model.Quiz, error) {
	q, err := s.QuizRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuizService) ListQuizzes(subject string, page, limit int) ([]model.Quiz, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.QuizRepo.List(subject, page, limit)
}

func (s *QuizService) UpdateQuiz(id uint, req QuizRequest) (*model.Quiz, error) {
	q, err := s.QuizRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	q.Name = req.Name
	q.Description = req.Description
	q.Subject = req.Subject
	q.StartTime = req.StartTime
	q.EndTime = req.EndTime
	q.Duration = req.Duration
	if req.MaxAttempts > 0 {
		q.MaxAttempts = req.MaxAttempts
	}
	if err := s.QuizRepo.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuizService) DeleteQuiz(id uint) error {
	if _, err := s.QuizRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizNotFound
		}
		return err
	}
	return s.QuizRepo.Delete(id)
}

// AddQuestion 建题并同步累加测验总分
func (s *QuizService) AddQuestion(quizID, creatorID uint, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if err := validateQuizQuestion(req); err != nil {
		return nil, err
	}

	q := &model.QuizQuestion{
		QuizID:             quizID,
		Text:               req.Text,
		Options:            req.Options,
		CorrectAnswerIndex: req.CorrectAnswerIndex,
		Marks:              req.Marks,
		Difficulty:         req.Difficulty,
		Explanation:        req.Explanation,
		Tags:               req.Tags,
		CreatedBy:          creatorID,
	}
	if q.Difficulty == "" {
		q.Difficulty = "medium"
	}
	if err := s.QuizRepo.CreateQuestion(q); err != nil {
		return nil, err
	}
	if err := s.QuizRepo.AddTotalMarks(quizID, q.Marks); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdateQuestion 改题，分值变化时同步调整测验总分
func (s *QuizService) UpdateQuestion(id uint, req QuizQuestionRequest) (*model.QuizQuestion, error) {
	q, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizQuestionNotFound
		}
		return nil, err
	}
	if err := validateQuizQuestion(req); err != nil {
		return nil, err
	}

	marksDelta := req.Marks - q.Marks
	q.Text = req.Text
	q.Options = req.Options
	q.CorrectAnswerIndex = req.CorrectAnswerIndex
	q.Marks = req.Marks
	if req.Difficulty != "" {
		q.Difficulty = req.Difficulty
	}
	q.Explanation = req.Explanation
	q.Tags = req.Tags
	if err := s.QuizRepo.UpdateQuestion(q); err != nil {
		return nil, err
	}
	if marksDelta != 0 {
		if err := s.QuizRepo.AddTotalMarks(q.QuizID, marksDelta); err != nil {
			return nil, err
		}
	}
	return q, nil
}

func (s *QuizService) DeleteQuestion(id uint) error {
	q, err := s.QuizRepo.FindQuestionByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuizQuestionNotFound
		}
		return err
	}
	if err := s.QuizRepo.DeleteQuestion(id); err != nil {
		return err
	}
	return s.QuizRepo.AddTotalMarks(q.QuizID, -q.Marks)
}

func (s *QuizService) ListQuestions(quizID uint) ([]model.QuizQuestion, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return s.QuizRepo.ListQuestions(quizID)
}

// QuizLeaderboardEntry 测验排行榜条目，已按总分降序、耗时升序
type QuizLeaderboardEntry struct {
	Rank       int    `json:"rank"`
	UserID     uint   `json:"userId"`
	Username   string `json:"username"`
	TotalScore int    `json:"totalScore"`
	TimeTaken  int    `json:"timeTaken"`
}

func (s *QuizService) GetLeaderboard(quizID uint) ([]QuizLeaderboardEntry, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	subs, err := s.QuizSubmissionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(subs))
	for _, sub := range subs {
		ids = append(ids, sub.UserID)
	}
	usernames, err := s.LeaderboardRepo.UsernamesByIDs(ids)
	if err != nil {
		return nil, err
	}

	entries := make([]QuizLeaderboardEntry, 0, len(subs))
	for i, sub := range subs {
		entries = append(entries, QuizLeaderboardEntry{
			Rank:       i + 1,
			UserID:     sub.UserID,
			Username:   usernames[sub.UserID],
			TotalScore: sub.TotalScore,
			TimeTaken:  sub.TotalTimeTaken,
		})
	}
	return entries, nil
}

// QuizAnalytics 测验整体表现汇总
type QuizAnalytics struct {
	QuizID             uint    `json:"quizId"`
	Participants       int     `json:"participants"`
	AverageScore       float64 `json:"averageScore"`
	AverageTimeTaken   float64 `json:"averageTimeTaken"`
	MostMissedQuestion uint    `json:"mostMissedQuestion"` // 0 表示无失分题
	MostMissedCount    int     `json:"mostMissedCount"`
}

// ComputeQuizAnalytics 从全部提交计算均分、平均耗时和错误最多的题目。
// 错误次数并列时取题目 ID 最小的，保证结果确定。
func ComputeQuizAnalytics(quizID uint, subs []model.QuizSubmission) QuizAnalytics {
	a := QuizAnalytics{QuizID: quizID, Participants: len(subs)}
	if len(subs) == 0 {
		return a
	}

	var scoreSum, timeSum int
	missed := make(map[uint]int)
	for _, sub := range subs {
		scoreSum += sub.TotalScore
		timeSum += sub.TotalTimeTaken
		for _, ans := range sub.Answers {
			if !ans.IsCorrect {
				missed[ans.QuestionID]++
			}
		}
	}
	a.AverageScore = float64(scoreSum) / float64(len(subs))
	a.AverageTimeTaken = float64(timeSum) / float64(len(subs))

	for qid, count := range missed {
		if count > a.MostMissedCount || (count == a.MostMissedCount && a.MostMissedQuestion != 0 && qid < a.MostMissedQuestion) {
			a.MostMissedQuestion = qid
			a.MostMissedCount = count
		}
	}
	return a
}

func (s *QuizService) GetAnalytics(quizID uint) (*QuizAnalytics, error) {
	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	subs, err := s.QuizSubmissionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}
	a := ComputeQuizAnalytics(quizID, subs)
	return &a, nil
}
