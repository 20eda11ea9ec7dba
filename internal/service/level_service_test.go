package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"tangle_play_backend/internal/game"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/util"
)

// fakeLevelRegistry mirrors the production numbering contract: claimed
// numbers stay claimed even after the level row is gone.
type fakeLevelRegistry struct {
	claimed map[int]bool
	levels  []model.Level
	// numbers a concurrent upload grabs the moment this batch tries them
	stolen map[int]bool
}

func newFakeLevelRegistry() *fakeLevelRegistry {
	return &fakeLevelRegistry{claimed: map[int]bool{}, stolen: map[int]bool{}}
}

func (f *fakeLevelRegistry) Create(level *model.Level) error {
	n := level.LevelNumber
	if f.stolen[n] {
		delete(f.stolen, n)
		f.claimed[n] = true
		return gorm.ErrDuplicatedKey
	}
	if f.claimed[n] {
		return gorm.ErrDuplicatedKey
	}
	f.claimed[n] = true
	f.levels = append(f.levels, *level)
	return nil
}

func (f *fakeLevelRegistry) FindByCategoryAndNumber(category model.Category, levelNumber int) (*model.Level, error) {
	for i := range f.levels {
		if f.levels[i].Category == category && f.levels[i].LevelNumber == levelNumber {
			level := f.levels[i]
			return &level, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLevelRegistry) ListByCategory(category model.Category) ([]model.Level, error) {
	var out []model.Level
	for _, level := range f.levels {
		if level.Category == category {
			out = append(out, level)
		}
	}
	return out, nil
}

func (f *fakeLevelRegistry) ListAll() ([]model.Level, error) {
	return f.levels, nil
}

func (f *fakeLevelRegistry) NextLevelNumber(model.Category) (int, error) {
	next := 1
	for n := range f.claimed {
		if n >= next {
			next = n + 1
		}
	}
	return next, nil
}

func (f *fakeLevelRegistry) Updates(level *model.Level, updates map[string]interface{}) error {
	return nil
}

type fakeProgressReader struct {
	rows []model.UserProgress
}

func (f *fakeProgressReader) ListByUser(string) ([]model.UserProgress, error) {
	return f.rows, nil
}

func levelFixture(registry *fakeLevelRegistry, progress *fakeProgressReader) *LevelService {
	svc := NewLevelService(registry, progress, nil)
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	}
	return svc
}

func pageBatch(n int) []PageOutline {
	pages := make([]PageOutline, 0, n)
	for i := 1; i <= n; i++ {
		pages = append(pages, PageOutline{PageNumber: i, OutlineURL: "/uploads/outlines/p.svg"})
	}
	return pages
}

func TestCreateLevelsFromPages(t *testing.T) {
	registry := newFakeLevelRegistry()
	svc := levelFixture(registry, &fakeProgressReader{})

	created, err := svc.CreateLevelsFromPages(model.CategoryTangle, pageBatch(3), "admin@example.com")
	require.NoError(t, err)
	require.Len(t, created, 3)

	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	for i, level := range created {
		assert.Equal(t, i+1, level.LevelNumber)
		assert.Equal(t, i+1, level.PageNumber)
		assert.Equal(t, model.DefaultTimeLimitSeconds, level.TimeLimitSeconds)
		assert.Equal(t, "admin@example.com", level.CreatedBy)
		assert.True(t, level.UnlockAt.Equal(midnight.AddDate(0, 0, i)))
		assert.True(t, level.LockAt.Equal(level.UnlockAt.AddDate(0, 0, game.LockWindowDays)))
	}

	_, err = svc.CreateLevelsFromPages(model.CategoryTangle, nil, "admin@example.com")
	assert.True(t, errors.Is(err, util.ErrValidation))

	_, err = svc.CreateLevelsFromPages("scribble", pageBatch(1), "admin@example.com")
	assert.True(t, errors.Is(err, util.ErrValidation))
}

func TestCreateLevelsFromPagesNeverReusesNumbers(t *testing.T) {
	registry := newFakeLevelRegistry()
	svc := levelFixture(registry, &fakeProgressReader{})

	created, err := svc.CreateLevelsFromPages(model.CategoryTangle, pageBatch(3), "admin@example.com")
	require.NoError(t, err)
	require.Len(t, created, 3)

	// delete the last two levels; their numbers stay claimed
	registry.levels = registry.levels[:1]

	next, err := svc.CreateLevelsFromPages(model.CategoryTangle, pageBatch(1), "admin@example.com")
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, 4, next[0].LevelNumber)
}

func TestCreateLevelsFromPagesRecoversFromRace(t *testing.T) {
	registry := newFakeLevelRegistry()
	registry.stolen[1] = true
	svc := levelFixture(registry, &fakeProgressReader{})

	created, err := svc.CreateLevelsFromPages(model.CategoryTangle, pageBatch(2), "admin@example.com")
	require.NoError(t, err)
	require.Len(t, created, 2)

	// number 1 was lost to a concurrent upload; the batch stays sequential
	// from the recomputed start
	assert.Equal(t, 2, created[0].LevelNumber)
	assert.Equal(t, 3, created[1].LevelNumber)
}

func TestListLevelsForUser(t *testing.T) {
	registry := newFakeLevelRegistry()
	svc := levelFixture(registry, &fakeProgressReader{})

	_, err := svc.CreateLevelsFromPages(model.CategoryTangle, pageBatch(2), "admin@example.com")
	require.NoError(t, err)

	svc.ProgressRepo = &fakeProgressReader{rows: []model.UserProgress{{
		UserID:        "u1",
		ProgressKey:   game.LevelKey(model.CategoryTangle, 1),
		AttemptNumber: 2,
		Completed:     true,
		Stars:         2,
	}}}
	svc.Now = func() time.Time {
		return time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	}

	decorated, err := svc.ListLevelsForUser("u1", model.CategoryTangle)
	require.NoError(t, err)
	require.Len(t, decorated, 2)

	assert.Equal(t, game.PhaseCompleted, decorated[0].Phase)
	assert.Equal(t, 2, decorated[0].AttemptNumber)
	assert.Equal(t, 2, decorated[0].Stars)
	// level 2 unlocks tomorrow
	assert.Equal(t, game.PhaseLocked, decorated[1].Phase)
	assert.Zero(t, decorated[1].AttemptNumber)
}
