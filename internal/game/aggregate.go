package game

import (
	"sort"

	"tangle_play_backend/internal/model"
)

type CategoryStats struct {
	Completed int `json:"completed"`
	Points    int `json:"points"`
	Stars     int `json:"stars"`
}

type UserStats struct {
	TotalLevelsCompleted int                              `json:"totalLevelsCompleted"`
	TotalPoints          int                              `json:"totalPoints"`
	TotalStars           int                              `json:"totalStars"`
	AverageAttempts      float64                          `json:"averageAttempts"`
	CategoryStats        map[model.Category]CategoryStats `json:"categoryStats"`
}

type LeaderboardEntry struct {
	UserID          string `json:"userId"`
	TotalPoints     int    `json:"totalPoints"`
	TotalStars      int    `json:"totalStars"`
	LevelsCompleted int    `json:"levelsCompleted"`
}

// BuildUserStats folds one user's progress rows into the dashboard snapshot.
// Every fixed category gets a bucket even when empty. Zero rows yield a
// zero-valued snapshot.
func BuildUserStats(rows []model.UserProgress) UserStats {
	stats := UserStats{
		CategoryStats: make(map[model.Category]CategoryStats, len(model.Categories())),
	}
	for _, c := range model.Categories() {
		stats.CategoryStats[c] = CategoryStats{}
	}

	attemptsOverCompleted := 0
	for _, row := range rows {
		stats.TotalPoints += row.Points
		stats.TotalStars += row.Stars
		if row.Completed {
			stats.TotalLevelsCompleted++
			attemptsOverCompleted += row.AttemptNumber
		}

		cs := stats.CategoryStats[row.Category]
		cs.Points += row.Points
		cs.Stars += row.Stars
		if row.Completed {
			cs.Completed++
		}
		stats.CategoryStats[row.Category] = cs
	}

	if stats.TotalLevelsCompleted > 0 {
		stats.AverageAttempts = float64(attemptsOverCompleted) / float64(stats.TotalLevelsCompleted)
	}
	return stats
}

const DefaultLeaderboardLimit = 10

// BuildLeaderboard groups progress rows by user, totals completed records
// and ranks by points descending. Ties keep first-encounter order of the
// input, so the result is stable for a fixed row ordering.
func BuildLeaderboard(rows []model.UserProgress, limit int) []LeaderboardEntry {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}

	index := make(map[string]int)
	entries := make([]LeaderboardEntry, 0)
	for _, row := range rows {
		i, ok := index[row.UserID]
		if !ok {
			i = len(entries)
			index[row.UserID] = i
			entries = append(entries, LeaderboardEntry{UserID: row.UserID})
		}
		if row.Completed {
			entries[i].TotalPoints += row.Points
			entries[i].TotalStars += row.Stars
			entries[i].LevelsCompleted++
		}
	}

	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].TotalPoints > entries[b].TotalPoints
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}
