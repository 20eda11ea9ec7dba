// Package game holds the pure gameplay rules: level lifecycle, scoring,
// unlock scheduling and progress aggregation. Nothing in here touches the
// database or the clock; callers pass in state and an instant.
package game

import (
	"time"

	"tangle_play_backend/internal/model"
)

type Phase string

const (
	PhaseLocked    Phase = "locked"
	PhaseAvailable Phase = "available"
	PhaseCompleted Phase = "completed"
	PhaseExpired   Phase = "expired"
)

// AttemptLimit is the attempt cap per (user, level). The third failed
// attempt finalizes the record.
const AttemptLimit = 3

// PhaseOf reports the lifecycle phase of a level for one user at one
// instant. Completed is sticky: once a progress row is completed the dates
// no longer matter. A nil progress means the level was never attempted.
func PhaseOf(level *model.Level, progress *model.UserProgress, now time.Time) Phase {
	if progress != nil && progress.Completed {
		return PhaseCompleted
	}
	if now.Before(level.UnlockAt) {
		return PhaseLocked
	}
	if now.After(level.LockAt) {
		return PhaseExpired
	}
	return PhaseAvailable
}

// Exhausted reports whether the attempt cap was reached without completion.
func Exhausted(progress *model.UserProgress) bool {
	return progress != nil && !progress.Completed && progress.AttemptNumber >= AttemptLimit
}
