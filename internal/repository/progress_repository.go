package repository

import (
	"errors"

	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Create inserts the first attempt row for a (user, level) pair. The unique
// (user_id, progress_key) index makes this a conditional create: a
// double-submit racing on the same key surfaces as util.ErrConflict.
func (r *ProgressRepository) Create(progress *model.UserProgress) error {
	err := r.DB.Create(progress).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return util.ErrConflict
	}
	return err
}

// UpdateAttempt overwrites the row only when the stored attempt number still
// matches what the caller read. A lost race returns util.ErrConflict instead
// of double-scoring the attempt.
func (r *ProgressRepository) UpdateAttempt(progress *model.UserProgress, expectedPrevAttempt int) error {
	res := r.DB.Model(&model.UserProgress{}).
		Where("user_id = ? AND progress_key = ? AND attempt_number = ?",
			progress.UserID, progress.ProgressKey, expectedPrevAttempt).
		Updates(map[string]interface{}{
			"attempt_number":    progress.AttemptNumber,
			"completed":         progress.Completed,
			"stars":             progress.Stars,
			"points":            progress.Points,
			"time_used_seconds": progress.TimeUsedSeconds,
			"completed_at":      progress.CompletedAt,
			"week_key":          progress.WeekKey,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrConflict
	}
	return nil
}

func (r *ProgressRepository) FindByUserAndKey(userID, progressKey string) (*model.UserProgress, error) {
	var progress model.UserProgress
	err := r.DB.Where("user_id = ? AND progress_key = ?", userID, progressKey).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *ProgressRepository) ListByUser(userID string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListByUserAndWeek(userID, weekKey string) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("user_id = ? AND week_key = ?", userID, weekKey).
		Order("created_at asc").
		Find(&rows).Error
	return rows, err
}

// ListAll returns the full ledger in insertion order; the leaderboard fold
// depends on that ordering for stable ties.
func (r *ProgressRepository) ListAll() ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Order("id asc").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListByCategory(category model.Category) ([]model.UserProgress, error) {
	var rows []model.UserProgress
	err := r.DB.Where("category = ?", category).
		Order("id asc").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) DeleteByUser(userID string) error {
	return r.DB.Where("user_id = ?", userID).Delete(&model.UserProgress{}).Error
}

// DeleteByKey removes every user's row for one level, the cascade of a level
// deletion.
func (r *ProgressRepository) DeleteByKey(progressKey string) error {
	return r.DB.Where("progress_key = ?", progressKey).Delete(&model.UserProgress{}).Error
}
