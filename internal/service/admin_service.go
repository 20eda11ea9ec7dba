package service

import (
	"errors"
	"time"

	"tangle_play_backend/internal/game"
	"tangle_play_backend/internal/model"
	"tangle_play_backend/internal/repository"
	"tangle_play_backend/internal/util"

	"gorm.io/gorm"
)

// AdminService backs the administration dashboard and user management.
type AdminService struct {
	UserRepo     *repository.UserRepository
	LevelRepo    *repository.LevelRepository
	ProgressRepo *repository.ProgressRepository
	DB           *gorm.DB
	Now          func() time.Time
}

func NewAdminService(userRepo *repository.UserRepository, levelRepo *repository.LevelRepository, progressRepo *repository.ProgressRepository, db *gorm.DB) *AdminService {
	return &AdminService{
		UserRepo:     userRepo,
		LevelRepo:    levelRepo,
		ProgressRepo: progressRepo,
		DB:           db,
		Now:          time.Now,
	}
}

type DashboardStats struct {
	TotalUsers       int64                    `json:"totalUsers"`
	TotalLevels      int64                    `json:"totalLevels"`
	ActiveUsers      int64                    `json:"activeUsers"`
	LevelsByCategory map[model.Category]int64 `json:"levelsByCategory"`
}

// GetDashboard aggregates platform-wide usage. Active means logged in
// within the last 7 days.
func (s *AdminService) GetDashboard() (*DashboardStats, error) {
	totalUsers, err := s.UserRepo.Count()
	if err != nil {
		return nil, err
	}
	totalLevels, err := s.LevelRepo.Count()
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.UserRepo.CountActiveSince(s.Now().AddDate(0, 0, -7))
	if err != nil {
		return nil, err
	}
	byCategory, err := s.LevelRepo.CountByCategory()
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalUsers:       totalUsers,
		TotalLevels:      totalLevels,
		ActiveUsers:      activeUsers,
		LevelsByCategory: byCategory,
	}, nil
}

func (s *AdminService) ListUsers() ([]model.User, error) {
	return s.UserRepo.ListAll()
}

type UserDetail struct {
	User     *model.User          `json:"user"`
	Progress []model.UserProgress `json:"progress"`
	Stats    game.UserStats       `json:"stats"`
}

func (s *AdminService) GetUserDetail(userID string) (*UserDetail, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	rows, err := s.ProgressRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	return &UserDetail{
		User:     user,
		Progress: rows,
		Stats:    game.BuildUserStats(rows),
	}, nil
}

// DeleteUser removes a user and cascades to their entire attempt history.
func (s *AdminService) DeleteUser(userID string) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := repository.NewProgressRepository(tx).DeleteByUser(userID); err != nil {
			return err
		}
		return repository.NewUserRepository(tx).Delete(userID)
	})
}
