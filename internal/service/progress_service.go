package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tangle_play_backend/internal/game"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/repository"
	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ProgressService serves the derived views over the attempt ledger: per-user
// stats, leaderboards and weekly report slices. All views are recomputed
// from the rows on read; the leaderboard additionally sits behind a short
// redis cache because it scans the full ledger.
type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	Redis        *redis.Client
}

const leaderboardCacheTTL = 30 * time.Second

func NewProgressService(progressRepo *repository.ProgressRepository, rdb *redis.Client) *ProgressService {
	return &ProgressService{ProgressRepo: progressRepo, Redis: rdb}
}

func (s *ProgressService) GetUserProgress(userID string) ([]model.UserProgress, error) {
	return s.ProgressRepo.ListByUser(userID)
}

func (s *ProgressService) GetUserStats(userID string) (game.UserStats, error) {
	rows, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return game.UserStats{}, err
	}
	return game.BuildUserStats(rows), nil
}

// GetLeaderboard ranks users by total points over completed attempts,
// optionally scoped to one category. Snapshots may trail concurrent writes
// by up to the cache TTL.
func (s *ProgressService) GetLeaderboard(ctx context.Context, category model.Category, limit int) ([]game.LeaderboardEntry, error) {
	if category != "" && !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", util.ErrValidation, category)
	}
	if limit <= 0 {
		limit = game.DefaultLeaderboardLimit
	}

	cacheKey := fmt.Sprintf("leaderboard:%s:%d", category, limit)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var entries []game.LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	var (
		rows []model.UserProgress
		err  error
	)
	if category != "" {
		rows, err = s.ProgressRepo.ListByCategory(category)
	} else {
		rows, err = s.ProgressRepo.ListAll()
	}
	if err != nil {
		return nil, err
	}

	entries := game.BuildLeaderboard(rows, limit)

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, leaderboardCacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// GetWeeklyAttempts returns a user's attempts for one reporting week, keyed
// by the denormalized week key fixed at write time.
func (s *ProgressService) GetWeeklyAttempts(userID, weekKey string) ([]model.UserProgress, error) {
	if !game.ValidWeekKey(weekKey) {
		return nil, fmt.Errorf("%w: malformed week key %q", util.ErrValidation, weekKey)
	}
	return s.ProgressRepo.ListByUserAndWeek(userID, weekKey)
}
