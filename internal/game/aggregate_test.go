package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tangle_play_backend/internal/model"
)

func row(userID string, category model.Category, number, attempt int, completed bool) model.UserProgress {
	points, stars := 0, 0
	if completed {
		points = PointsFor(attempt)
		stars = StarsFor(attempt)
	}
	return model.UserProgress{
		UserID:        userID,
		Category:      category,
		LevelNumber:   number,
		ProgressKey:   LevelKey(category, number),
		AttemptNumber: attempt,
		Completed:     completed,
		Points:        points,
		Stars:         stars,
	}
}

func TestBuildUserStatsEmpty(t *testing.T) {
	stats := BuildUserStats(nil)

	assert.Zero(t, stats.TotalLevelsCompleted)
	assert.Zero(t, stats.TotalPoints)
	assert.Zero(t, stats.TotalStars)
	assert.Zero(t, stats.AverageAttempts)
	// every fixed category is present even with no history
	require.Len(t, stats.CategoryStats, len(model.Categories()))
	for _, c := range model.Categories() {
		assert.Contains(t, stats.CategoryStats, c)
	}
}

func TestBuildUserStats(t *testing.T) {
	rows := []model.UserProgress{
		row("u1", model.CategoryTangle, 1, 1, true),          // 300 pts, 3 stars
		row("u1", model.CategoryTangle, 2, 3, true),          // 100 pts, 1 star
		row("u1", model.CategoryFunthinkerBasic, 1, 2, true), // 200 pts, 2 stars
		row("u1", model.CategoryFunthinkerHard, 1, 3, false), // exhausted, nothing scored
	}

	stats := BuildUserStats(rows)

	assert.Equal(t, 3, stats.TotalLevelsCompleted)
	assert.Equal(t, 600, stats.TotalPoints)
	assert.Equal(t, 6, stats.TotalStars)
	// (1 + 3 + 2) / 3 completed levels
	assert.InDelta(t, 2.0, stats.AverageAttempts, 1e-9)

	assert.Equal(t, CategoryStats{Completed: 2, Points: 400, Stars: 4}, stats.CategoryStats[model.CategoryTangle])
	assert.Equal(t, CategoryStats{Completed: 1, Points: 200, Stars: 2}, stats.CategoryStats[model.CategoryFunthinkerBasic])
	assert.Equal(t, CategoryStats{}, stats.CategoryStats[model.CategoryFunthinkerMedium])
	assert.Equal(t, CategoryStats{}, stats.CategoryStats[model.CategoryFunthinkerHard])
}

func TestBuildLeaderboard(t *testing.T) {
	rows := []model.UserProgress{
		row("alice", model.CategoryTangle, 1, 2, true), // 200
		row("bob", model.CategoryTangle, 1, 1, true),   // 300
		row("alice", model.CategoryTangle, 2, 1, true), // 300 -> alice 500
		row("carol", model.CategoryTangle, 1, 3, false),
		row("bob", model.CategoryFunthinkerBasic, 1, 3, true), // 100 -> bob 400
	}

	board := BuildLeaderboard(rows, 0)

	require.Len(t, board, 3)
	assert.Equal(t, "alice", board[0].UserID)
	assert.Equal(t, 500, board[0].TotalPoints)
	assert.Equal(t, 2, board[0].LevelsCompleted)
	assert.Equal(t, "bob", board[1].UserID)
	assert.Equal(t, 400, board[1].TotalPoints)
	// carol appears with zeros: only completed rows score
	assert.Equal(t, "carol", board[2].UserID)
	assert.Zero(t, board[2].TotalPoints)
	assert.Zero(t, board[2].LevelsCompleted)
}

func TestBuildLeaderboardStableTies(t *testing.T) {
	rows := []model.UserProgress{
		row("first", model.CategoryTangle, 1, 1, true),
		row("second", model.CategoryTangle, 2, 1, true),
		row("third", model.CategoryTangle, 3, 1, true),
	}

	board := BuildLeaderboard(rows, 10)

	require.Len(t, board, 3)
	// equal points keep first-encounter order
	assert.Equal(t, "first", board[0].UserID)
	assert.Equal(t, "second", board[1].UserID)
	assert.Equal(t, "third", board[2].UserID)
}

func TestBuildLeaderboardLimit(t *testing.T) {
	var rows []model.UserProgress
	for i := 0; i < 15; i++ {
		rows = append(rows, row(string(rune('a'+i)), model.CategoryTangle, i+1, 1, true))
	}

	assert.Len(t, BuildLeaderboard(rows, 0), DefaultLeaderboardLimit)
	assert.Len(t, BuildLeaderboard(rows, 5), 5)
	assert.Len(t, BuildLeaderboard(rows, 100), 15)
}

func TestBuildLeaderboardConservesPoints(t *testing.T) {
	rows := []model.UserProgress{
		row("u1", model.CategoryTangle, 1, 1, true),
		row("u1", model.CategoryTangle, 2, 2, true),
		row("u2", model.CategoryFunthinkerMedium, 1, 3, true),
		row("u2", model.CategoryFunthinkerMedium, 2, 2, false),
		row("u3", model.CategoryFunthinkerHard, 1, 1, true),
	}

	wantPoints, wantStars := 0, 0
	for _, r := range rows {
		if r.Completed {
			wantPoints += r.Points
			wantStars += r.Stars
		}
	}

	gotPoints, gotStars := 0, 0
	for _, e := range BuildLeaderboard(rows, 100) {
		gotPoints += e.TotalPoints
		gotStars += e.TotalStars
	}
	assert.Equal(t, wantPoints, gotPoints)
	assert.Equal(t, wantStars, gotStars)
}
