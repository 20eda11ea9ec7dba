package repository

import (
	"tangle_play_backend/internal/model"

	"gorm.io/gorm"
)

type LevelRepository struct {
	DB *gorm.DB
}

func NewLevelRepository(db *gorm.DB) *LevelRepository {
	return &LevelRepository{DB: db}
}

// Create inserts a level; the unique (category, level_number) index turns a
// concurrent claim of the same number into gorm.ErrDuplicatedKey, which the
// service layer retries with a recomputed number.
func (r *LevelRepository) Create(level *model.Level) error {
	return r.DB.Create(level).Error
}

func (r *LevelRepository) FindByCategoryAndNumber(category model.Category, levelNumber int) (*model.Level, error) {
	var level model.Level
	err := r.DB.Where("category = ? AND level_number = ?", category, levelNumber).
		First(&level).Error
	if err != nil {
		return nil, err
	}
	return &level, nil
}

func (r *LevelRepository) ListByCategory(category model.Category) ([]model.Level, error) {
	var levels []model.Level
	err := r.DB.Where("category = ?", category).
		Order("level_number asc").
		Find(&levels).Error
	return levels, err
}

func (r *LevelRepository) ListAll() ([]model.Level, error) {
	var levels []model.Level
	err := r.DB.Order("category asc, level_number asc").Find(&levels).Error
	return levels, err
}

// NextLevelNumber computes max(existing)+1 for a category. The query is
// unscoped on purpose: soft-deleted levels keep their numbers occupied, so
// a number is never reused even after deletion.
func (r *LevelRepository) NextLevelNumber(category model.Category) (int, error) {
	var max int
	err := r.DB.Unscoped().Model(&model.Level{}).
		Where("category = ?", category).
		Select("COALESCE(MAX(level_number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

func (r *LevelRepository) Updates(level *model.Level, updates map[string]interface{}) error {
	return r.DB.Model(level).Updates(updates).Error
}

// MarkPlayed flips has_been_played; the flag is monotonic so a repeat write
// is harmless.
func (r *LevelRepository) MarkPlayed(id uint) error {
	return r.DB.Model(&model.Level{}).Where("id = ?", id).
		Update("has_been_played", true).Error
}

func (r *LevelRepository) Delete(level *model.Level) error {
	return r.DB.Delete(level).Error
}

func (r *LevelRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Level{}).Count(&count).Error
	return count, err
}

func (r *LevelRepository) CountByCategory() (map[model.Category]int64, error) {
	type row struct {
		Category model.Category
		Total    int64
	}
	var rows []row
	err := r.DB.Model(&model.Level{}).
		Select("category, COUNT(*) AS total").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.Category]int64, len(rows))
	for _, v := range rows {
		counts[v.Category] = v.Total
	}
	return counts, nil
}
