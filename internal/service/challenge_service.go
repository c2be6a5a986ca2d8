package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"code_arena_backend/internal/model"
	"code_arena_backend/internal/repository"
	"code_arena_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const leaderboardCacheTTL = 30 * time.Second

type ChallengeService struct {
	ChallengeRepo   *repository.ChallengeRepository
	QuestionRepo    *repository.QuestionRepository
	ProgressRepo    *repository.ProgressRepository
	LeaderboardRepo *repository.LeaderboardRepository
	Redis           *redis.Client
	Logger          *zap.Logger
}

func NewChallengeService(
	challengeRepo *repository.ChallengeRepository,
	questionRepo *repository.QuestionRepository,
	progressRepo *repository.ProgressRepository,
	leaderboardRepo *repository.LeaderboardRepository,
	rdb *redis.Client,
	logger *zap.Logger,
) *ChallengeService {
	return &ChallengeService{
		ChallengeRepo:   challengeRepo,
		QuestionRepo:    questionRepo,
		ProgressRepo:    progressRepo,
		LeaderboardRepo: leaderboardRepo,
		Redis:           rdb,
		Logger:          logger,
	}
}

type ChallengeRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime" binding:"required"`
	EndTime     time.Time `json:"endTime" binding:"required"`
}

// generateChallengeKey 生成 12 位十六进制邀请码
func generateChallengeKey() (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func (s *ChallengeService) CreateChallenge(creatorID uint, req ChallengeRequest) (*model.Challenge, error) {
	key, err := generateChallengeKey()
	if err != nil {
		return nil, err
	}
	c := &model.Challenge{
		Title:       req.Title,
		Description: req.Description,
		Key:         key,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		CreatedBy:   creatorID,
	}
	if err := s.ChallengeRepo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ChallengeService) GetChallenge(id uint) (*model.Challenge, error) {
	c, err := s.ChallengeRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrChallengeNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *ChallengeService) ListChallenges(page, limit int) ([]model.Challenge, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ChallengeRepo.List(page, limit)
}

func (s *ChallengeService) UpdateChallenge(id uint, req ChallengeRequest) (*model.Challenge, error) {
	c, err := s.GetChallenge(id)
	if err != nil {
		return nil, err
	}
	c.Title = req.Title
	c.Description = req.Description
	c.StartTime = req.StartTime
	c.EndTime = req.EndTime
	if err := s.ChallengeRepo.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ChallengeService) DeleteChallenge(id uint) error {
	if _, err := s.GetChallenge(id); err != nil {
		return err
	}
	return s.ChallengeRepo.Delete(id)
}

func (s *ChallengeService) AddQuestion(challengeID, questionID uint) error {
	c, err := s.GetChallenge(challengeID)
	if err != nil {
		return err
	}
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	exists, err := s.ChallengeRepo.HasQuestion(challengeID, questionID)
	if err != nil {
		return err
	}
	if exists {
		return util.ErrQuestionAlreadyAdded
	}
	return s.ChallengeRepo.AddQuestion(c, q)
}

func (s *ChallengeService) RemoveQuestion(challengeID, questionID uint) error {
	c, err := s.GetChallenge(challengeID)
	if err != nil {
		return err
	}
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrQuestionNotFound
		}
		return err
	}
	exists, err := s.ChallengeRepo.HasQuestion(challengeID, questionID)
	if err != nil {
		return err
	}
	if !exists {
		return util.ErrQuestionNotInChallenge
	}
	return s.ChallengeRepo.RemoveQuestion(c, q)
}

// JoinWithKey 凭邀请码加入挑战。重复加入幂等返回已有进度
func (s *ChallengeService) JoinWithKey(userID uint, key string) (*model.ChallengeProgress, error) {
	c, err := s.ChallengeRepo.FindByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidChallengeKey
		}
		return nil, err
	}

	existing, err := s.ProgressRepo.FindByUserAndChallenge(userID, c.ID)
	if err == nil {
		if existing.Status == model.ProgressEnded {
			return nil, util.ErrChallengeEnded
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	now := time.Now()
	p := &model.ChallengeProgress{
		UserID:      userID,
		ChallengeID: c.ID,
		Status:      model.ProgressInProgress,
		StartTime:   now,
		LastUpdated: now,
	}
	if err := s.ProgressRepo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

// EndContest 结束参与者的挑战：写入终态并固化耗时（秒）
func (s *ChallengeService) EndContest(ctx context.Context, userID, challengeID uint) (*model.ChallengeProgress, error) {
	p, err := s.ProgressRepo.FindByUserAndChallenge(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	if p.Status == model.ProgressEnded {
		return p, nil
	}

	now := time.Now()
	p.Status = model.ProgressEnded
	p.EndTime = &now
	p.TimeTaken = int64(now.Sub(p.StartTime).Seconds())
	p.LastUpdated = now
	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}

	if err := s.RebuildLeaderboard(ctx, challengeID); err != nil {
		s.Logger.Warn("leaderboard rebuild after contest end failed",
			zap.Uint("challengeId", challengeID), zap.Error(err))
	}
	return p, nil
}

func (s *ChallengeService) GetProgress(userID, challengeID uint) (*model.ChallengeProgress, error) {
	p, err := s.ProgressRepo.FindByUserAndChallengeWithSolved(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	return p, nil
}

// BuildLeaderboard 把进度记录折算成排行榜条目。
// 罚时每次扣 10 分，提示每次扣 5 分，最低 0 分；
// 未结束（无耗时）的参与者视为耗时无穷大，同分时排在后面。
func BuildLeaderboard(progresses []model.ChallengeProgress, usernames map[uint]string) []model.LeaderboardEntry {
	entries := make([]model.LeaderboardEntry, 0, len(progresses))
	for _, p := range progresses {
		score := p.Score - p.Penalties*util.PenaltyWeight - p.HintsUsed*util.HintCostWeight
		if score < 0 {
			score = 0
		}
		timeTaken := p.TimeTaken
		if timeTaken <= 0 {
			timeTaken = math.MaxInt64
		}
		entries = append(entries, model.LeaderboardEntry{
			UserID:     p.UserID,
			Username:   usernames[p.UserID],
			TotalScore: score,
			TimeTaken:  timeTaken,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].TotalScore != entries[j].TotalScore {
			return entries[i].TotalScore > entries[j].TotalScore
		}
		return entries[i].TimeTaken < entries[j].TimeTaken
	})
	return entries
}

func leaderboardCacheKey(challengeID uint) string {
	return fmt.Sprintf("leaderboard:challenge:%d", challengeID)
}

// RebuildLeaderboard 从进度表全量重算排行榜，覆盖写入并失效缓存
func (s *ChallengeService) RebuildLeaderboard(ctx context.Context, challengeID uint) error {
	if _, err := s.ChallengeRepo.FindByID(challengeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrChallengeNotFound
		}
		return err
	}

	progresses, err := s.ProgressRepo.ListByChallenge(challengeID)
	if err != nil {
		return err
	}
	if len(progresses) == 0 {
		return util.ErrNoParticipants
	}

	ids := make([]uint, 0, len(progresses))
	for _, p := range progresses {
		ids = append(ids, p.UserID)
	}
	usernames, err := s.LeaderboardRepo.UsernamesByIDs(ids)
	if err != nil {
		return err
	}

	entries := BuildLeaderboard(progresses, usernames)
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	if err := s.LeaderboardRepo.Upsert(&model.Leaderboard{
		ChallengeID:  challengeID,
		Participants: payload,
	}); err != nil {
		return err
	}

	if s.Redis != nil {
		if err := s.Redis.Del(ctx, leaderboardCacheKey(challengeID)).Err(); err != nil {
			s.Logger.Warn("leaderboard cache invalidation failed",
				zap.Uint("challengeId", challengeID), zap.Error(err))
		}
	}
	return nil
}

// GetLeaderboard 读排行榜，优先走 Redis 缓存
func (s *ChallengeService) GetLeaderboard(ctx context.Context, challengeID uint) ([]model.LeaderboardEntry, error) {
	cacheKey := leaderboardCacheKey(challengeID)
	if s.Redis != nil {
		cached, err := s.Redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var entries []model.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	lb, err := s.LeaderboardRepo.FindByChallenge(challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 首次访问时按需重算
			if rebuildErr := s.RebuildLeaderboard(ctx, challengeID); rebuildErr != nil {
				return nil, rebuildErr
			}
			lb, err = s.LeaderboardRepo.FindByChallenge(challengeID)
			if err != nil {
				return nil, util.ErrLeaderboardNotFound
			}
		} else {
			return nil, err
		}
	}

	var entries []model.LeaderboardEntry
	if err := json.Unmarshal(lb.Participants, &entries); err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(ctx, cacheKey, string(lb.Participants), leaderboardCacheTTL).Err(); err != nil {
			s.Logger.Warn("leaderboard cache write failed", zap.Error(err))
		}
	}
	return entries, nil
}

// RecordPenalty 给进行中的挑战记一次罚时
func (s *ChallengeService) RecordPenalty(userID, challengeID uint) (*model.ChallengeProgress, error) {
	return s.bumpCounter(userID, challengeID, func(p *model.ChallengeProgress) {
		p.Penalties++
	})
}

// RecordHint 记一次提示使用
func (s *ChallengeService) RecordHint(userID, challengeID uint) (*model.ChallengeProgress, error) {
	return s.bumpCounter(userID, challengeID, func(p *model.ChallengeProgress) {
		p.HintsUsed++
	})
}

func (s *ChallengeService) bumpCounter(userID, challengeID uint, apply func(*model.ChallengeProgress)) (*model.ChallengeProgress, error) {
	p, err := s.ProgressRepo.FindByUserAndChallenge(userID, challengeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgressNotFound
		}
		return nil, err
	}
	if p.Status == model.ProgressEnded {
		return nil, util.ErrChallengeEnded
	}
	apply(p)
	p.LastUpdated = time.Now()
	if err := s.ProgressRepo.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}
