package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"tangle_play_backend/internal/game"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"
	"tangle_play_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LevelLookup is the slice of the level repository the gameplay path needs.
type LevelLookup interface {
	FindByCategoryAndNumber(category model.Category, levelNumber int) (*model.Level, error)
	MarkPlayed(id uint) error
}

// AttemptLedger is the progress-row access the gameplay path needs.
type AttemptLedger interface {
	Create(progress *model.UserProgress) error
	UpdateAttempt(progress *model.UserProgress, expectedPrevAttempt int) error
	FindByUserAndKey(userID, progressKey string) (*model.UserProgress, error)
}

// PlayService runs gameplay sessions: phase checks before play and scored
// attempt recording afterwards.
type PlayService struct {
	LevelRepo    LevelLookup
	ProgressRepo AttemptLedger
	Now          func() time.Time
}

func NewPlayService(levelRepo LevelLookup, progressRepo AttemptLedger) *PlayService {
	return &PlayService{
		LevelRepo:    levelRepo,
		ProgressRepo: progressRepo,
		Now:          time.Now,
	}
}

// EvaluatePhase reports the level's phase for the user right now.
func (s *PlayService) EvaluatePhase(userID string, category model.Category, levelNumber int) (game.Phase, error) {
	level, progress, err := s.load(userID, category, levelNumber)
	if err != nil {
		return "", err
	}
	return game.PhaseOf(level, progress, s.Now()), nil
}

type AttemptRequest struct {
	Completed            bool `json:"completed"`
	TimeUsedSeconds      int  `json:"timeUsedSeconds"`
	TimeRemainingSeconds *int `json:"timeRemainingSeconds,omitempty"`
}

type AttemptResult struct {
	AttemptNumber int        `json:"attemptNumber"`
	Points        int        `json:"points"`
	Stars         int        `json:"stars"`
	Completed     bool       `json:"completed"`
	Phase         game.Phase `json:"phase"`
	WeekKey       string     `json:"weekKey"`
}

// RecordAttempt finalizes one play session. The level must be Available for
// this user at this instant; the write is conditional on the attempt number
// the caller's session was based on, so a double submission loses cleanly
// with a Conflict instead of scoring twice.
func (s *PlayService) RecordAttempt(userID string, category model.Category, levelNumber int, req AttemptRequest) (*AttemptResult, error) {
	if req.TimeUsedSeconds < 0 {
		return nil, fmt.Errorf("%w: negative time used", util.ErrValidation)
	}

	level, progress, err := s.load(userID, category, levelNumber)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	switch game.PhaseOf(level, progress, now) {
	case game.PhaseLocked:
		return nil, util.ErrLevelNotYetAvailable
	case game.PhaseExpired:
		return nil, util.ErrLevelNoLongerAvailable
	case game.PhaseCompleted:
		return nil, util.ErrLevelAlreadyCompleted
	}
	if game.Exhausted(progress) {
		return nil, util.ErrAttemptsExhausted
	}

	timeUsed := req.TimeUsedSeconds
	if req.TimeRemainingSeconds != nil {
		timeUsed = game.TimeUsed(level.TimeLimitSeconds, *req.TimeRemainingSeconds)
	}
	timeUsed = game.ClampTimeUsed(timeUsed, level.TimeLimitSeconds)

	attemptNumber := 1
	if progress != nil {
		attemptNumber = progress.AttemptNumber + 1
	}

	points, stars := 0, 0
	if req.Completed {
		points = game.PointsFor(attemptNumber)
		stars = game.StarsFor(attemptNumber)
	}

	row := &model.UserProgress{
		UserID:          userID,
		ProgressKey:     game.LevelKey(category, levelNumber),
		LevelID:         level.ID,
		Category:        category,
		Subpart:         category.Subpart(),
		LevelNumber:     levelNumber,
		AttemptNumber:   attemptNumber,
		Completed:       req.Completed,
		Stars:           stars,
		Points:          points,
		TimeUsedSeconds: timeUsed,
		CompletedAt:     now,
		WeekKey:         game.WeekKey(now),
	}

	if progress == nil {
		err = s.ProgressRepo.Create(row)
	} else {
		err = s.ProgressRepo.UpdateAttempt(row, progress.AttemptNumber)
	}
	if err != nil {
		return nil, err
	}

	monitoring.AttemptsRecorded.WithLabelValues(
		string(category), strconv.FormatBool(req.Completed)).Inc()

	if req.Completed {
		if err := s.LevelRepo.MarkPlayed(level.ID); err != nil {
			logger.Log.Error("failed to mark level as played",
				zap.Uint("levelId", level.ID), zap.Error(err))
		}
	}

	// finalized either way: propagate reachability to the next level
	if req.Completed || attemptNumber >= game.AttemptLimit {
		s.propagateUnlock(userID, category, levelNumber)
	}

	return &AttemptResult{
		AttemptNumber: attemptNumber,
		Points:        points,
		Stars:         stars,
		Completed:     req.Completed,
		Phase:         game.PhaseOf(level, row, now),
		WeekKey:       row.WeekKey,
	}, nil
}

// propagateUnlock acknowledges the sequential successor of a finalized
// level. Unlock times are fixed at creation, so there is nothing to mutate;
// the successor becomes playable when its own window opens. The hook stays
// here as the single place to change if the policy ever moves to
// completion-relative unlocks.
func (s *PlayService) propagateUnlock(userID string, category model.Category, levelNumber int) {
	next, err := s.LevelRepo.FindByCategoryAndNumber(category, levelNumber+1)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Log.Error("unlock propagation lookup failed",
				zap.String("category", string(category)),
				zap.Int("level", levelNumber+1),
				zap.Error(err))
		}
		return
	}

	if _, err := s.ProgressRepo.FindByUserAndKey(userID, game.LevelKey(category, next.LevelNumber)); err == nil {
		return // user already has state on the successor
	}

	logger.Log.Debug("next level reachable",
		zap.String("userId", userID),
		zap.String("category", string(category)),
		zap.Int("level", next.LevelNumber),
		zap.Time("unlockAt", next.UnlockAt))
}

func (s *PlayService) load(userID string, category model.Category, levelNumber int) (*model.Level, *model.UserProgress, error) {
	if !category.Valid() {
		return nil, nil, util.ErrLevelNotFound
	}
	level, err := s.LevelRepo.FindByCategoryAndNumber(category, levelNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrLevelNotFound
		}
		return nil, nil, err
	}

	progress, err := s.ProgressRepo.FindByUserAndKey(userID, game.LevelKey(category, levelNumber))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return level, nil, nil
		}
		return nil, nil, err
	}
	return level, progress, nil
}
