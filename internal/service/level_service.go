package service

import (
	"errors"
	"fmt"
	"time"

	"tangle_play_backend/internal/game"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/repository"
	"tangle_play_backend/internal/util"
	"tangle_play_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LevelRegistry is the repository surface the level service works against.
type LevelRegistry interface {
	Create(level *model.Level) error
	FindByCategoryAndNumber(category model.Category, levelNumber int) (*model.Level, error)
	ListByCategory(category model.Category) ([]model.Level, error)
	ListAll() ([]model.Level, error)
	NextLevelNumber(category model.Category) (int, error)
	Updates(level *model.Level, updates map[string]interface{}) error
}

// ProgressReader is the read-only progress access used for phase decoration.
type ProgressReader interface {
	ListByUser(userID string) ([]model.UserProgress, error)
}

// LevelService owns the level registry: batch creation from ingested pages,
// enumeration, patching and deletion.
type LevelService struct {
	LevelRepo    LevelRegistry
	ProgressRepo ProgressReader
	DB           *gorm.DB
	Now          func() time.Time
}

func NewLevelService(levelRepo LevelRegistry, progressRepo ProgressReader, db *gorm.DB) *LevelService {
	return &LevelService{
		LevelRepo:    levelRepo,
		ProgressRepo: progressRepo,
		DB:           db,
		Now:          time.Now,
	}
}

// createNumberRetries bounds how often a batch recomputes its numbers after
// losing the (category, level_number) race to a concurrent upload.
const createNumberRetries = 3

// CreateLevelsFromPages turns ordered ingested pages into levels. Numbers
// continue from max(existing)+1 and the unlock schedule is fixed here, at
// creation time: page i of a batch starting at level N unlocks on upload-day
// + (N+i-2) days and locks 15 days after that.
func (s *LevelService) CreateLevelsFromPages(category model.Category, pages []PageOutline, createdBy string) ([]model.Level, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", util.ErrValidation, category)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%w: no pages to create levels from", util.ErrValidation)
	}

	now := s.Now()
	created := make([]model.Level, 0, len(pages))

	base, err := s.LevelRepo.NextLevelNumber(category)
	if err != nil {
		return nil, err
	}

	for i, page := range pages {
		number := base + i
		var level *model.Level

		for attempt := 0; ; attempt++ {
			unlockAt, lockAt := game.UnlockSchedule(now, number)
			level = &model.Level{
				Category:         category,
				LevelNumber:      number,
				Subpart:          category.Subpart(),
				PageNumber:       page.PageNumber,
				OutlineURL:       page.OutlineURL,
				TimeLimitSeconds: model.DefaultTimeLimitSeconds,
				UnlockAt:         unlockAt,
				LockAt:           lockAt,
				CreatedBy:        createdBy,
			}

			err := s.LevelRepo.Create(level)
			if err == nil {
				break
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return created, err
			}
			if attempt >= createNumberRetries {
				return created, util.ErrConflict
			}

			// a concurrent upload claimed this number; recompute and retry
			next, nerr := s.LevelRepo.NextLevelNumber(category)
			if nerr != nil {
				return created, nerr
			}
			number = next
		}

		base = number - i // keep the remaining pages sequential after a bump
		created = append(created, *level)
	}

	logger.Log.Info("levels created from pages",
		zap.String("category", string(category)),
		zap.Int("count", len(created)),
		zap.Int("firstLevel", created[0].LevelNumber),
		zap.String("createdBy", createdBy))

	return created, nil
}

func (s *LevelService) GetLevel(category model.Category, levelNumber int) (*model.Level, error) {
	if !category.Valid() {
		return nil, util.ErrLevelNotFound
	}
	level, err := s.LevelRepo.FindByCategoryAndNumber(category, levelNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLevelNotFound
		}
		return nil, err
	}
	return level, nil
}

func (s *LevelService) ListLevels(category model.Category) ([]model.Level, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", util.ErrValidation, category)
	}
	return s.LevelRepo.ListByCategory(category)
}

func (s *LevelService) ListAllLevels() ([]model.Level, error) {
	return s.LevelRepo.ListAll()
}

// LevelWithPhase decorates a level with its lifecycle phase for one user,
// what the gameplay grid renders.
type LevelWithPhase struct {
	model.Level
	Phase         game.Phase `json:"phase"`
	AttemptNumber int        `json:"attemptNumber"`
	Stars         int        `json:"stars"`
}

func (s *LevelService) ListLevelsForUser(userID string, category model.Category) ([]LevelWithPhase, error) {
	levels, err := s.ListLevels(category)
	if err != nil {
		return nil, err
	}

	rows, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*model.UserProgress, len(rows))
	for i := range rows {
		byKey[rows[i].ProgressKey] = &rows[i]
	}

	now := s.Now()
	out := make([]LevelWithPhase, 0, len(levels))
	for _, level := range levels {
		progress := byKey[game.LevelKey(level.Category, level.LevelNumber)]
		entry := LevelWithPhase{
			Level: level,
			Phase: game.PhaseOf(&level, progress, now),
		}
		if progress != nil {
			entry.AttemptNumber = progress.AttemptNumber
			entry.Stars = progress.Stars
		}
		out = append(out, entry)
	}
	return out, nil
}

// LevelPatch enumerates the mutable level fields. Unknown fields are
// rejected at the controller by a strict JSON decode, not forwarded blindly.
type LevelPatch struct {
	PageNumber       *int       `json:"pageNumber"`
	OutlineURL       *string    `json:"outlineUrl"`
	TimeLimitSeconds *int       `json:"timeLimitSeconds"`
	UnlockAt         *time.Time `json:"unlockAt"`
	LockAt           *time.Time `json:"lockAt"`
}

func (s *LevelService) UpdateLevel(category model.Category, levelNumber int, patch LevelPatch) (*model.Level, error) {
	level, err := s.GetLevel(category, levelNumber)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.PageNumber != nil {
		updates["page_number"] = *patch.PageNumber
	}
	if patch.OutlineURL != nil {
		updates["outline_url"] = *patch.OutlineURL
	}
	if patch.TimeLimitSeconds != nil {
		if *patch.TimeLimitSeconds <= 0 {
			return nil, fmt.Errorf("%w: time limit must be positive", util.ErrValidation)
		}
		updates["time_limit_seconds"] = *patch.TimeLimitSeconds
	}

	unlockAt := level.UnlockAt
	lockAt := level.LockAt
	if patch.UnlockAt != nil {
		unlockAt = *patch.UnlockAt
		updates["unlock_at"] = unlockAt
	}
	if patch.LockAt != nil {
		lockAt = *patch.LockAt
		updates["lock_at"] = lockAt
	}
	if !lockAt.After(unlockAt) {
		return nil, fmt.Errorf("%w: lockAt must be after unlockAt", util.ErrValidation)
	}

	if len(updates) == 0 {
		return level, nil
	}
	if err := s.LevelRepo.Updates(level, updates); err != nil {
		return nil, err
	}
	return level, nil
}

// DeleteLevel removes a level and cascades to every user's progress row for
// it. The level number stays burned: numbering skips deleted rows.
func (s *LevelService) DeleteLevel(category model.Category, levelNumber int) error {
	level, err := s.GetLevel(category, levelNumber)
	if err != nil {
		return err
	}

	key := game.LevelKey(category, levelNumber)
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewProgressRepository(tx).DeleteByKey(key); err != nil {
			return err
		}
		return repository.NewLevelRepository(tx).Delete(level)
	})
}
