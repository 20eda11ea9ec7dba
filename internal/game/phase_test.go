package game

import (
	"testing"
	"time"

	"tangle_play_backend/internal/model"
)

func testLevel(unlockAt time.Time) *model.Level {
	return &model.Level{
		Category:         model.CategoryTangle,
		LevelNumber:      1,
		TimeLimitSeconds: model.DefaultTimeLimitSeconds,
		UnlockAt:         unlockAt,
		LockAt:           unlockAt.AddDate(0, 0, LockWindowDays),
	}
}

func TestPhaseOf_DateWindow(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	level := testLevel(t0)

	if got := PhaseOf(level, nil, t0.Add(-time.Second)); got != PhaseLocked {
		t.Fatalf("before unlock: got %s, want %s", got, PhaseLocked)
	}
	if got := PhaseOf(level, nil, t0.Add(time.Second)); got != PhaseAvailable {
		t.Fatalf("after unlock: got %s, want %s", got, PhaseAvailable)
	}
	if got := PhaseOf(level, nil, level.LockAt.Add(time.Second)); got != PhaseExpired {
		t.Fatalf("after lock: got %s, want %s", got, PhaseExpired)
	}
}

func TestPhaseOf_CompletedIsSticky(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	level := testLevel(t0)
	progress := &model.UserProgress{Completed: true, AttemptNumber: 2}

	instants := []time.Time{
		t0.Add(-time.Hour),                // inside the locked window
		t0.Add(time.Hour),                 // inside the available window
		level.LockAt.AddDate(1, 0, 0),     // long after expiry
		time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC), // before the level even existed
	}
	for _, now := range instants {
		if got := PhaseOf(level, progress, now); got != PhaseCompleted {
			t.Fatalf("at %s: got %s, want %s", now, got, PhaseCompleted)
		}
	}
}

func TestPhaseOf_ExpiredNeverReopens(t *testing.T) {
	t0 := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	level := testLevel(t0)
	progress := &model.UserProgress{Completed: false, AttemptNumber: 1}

	expired := false
	for now := t0.Add(-24 * time.Hour); now.Before(t0.AddDate(0, 2, 0)); now = now.Add(6 * time.Hour) {
		got := PhaseOf(level, progress, now)
		if expired && got != PhaseExpired {
			t.Fatalf("at %s: phase reopened to %s after expiry", now, got)
		}
		if got == PhaseExpired {
			expired = true
		}
	}
	if !expired {
		t.Fatal("level never expired over the scanned range")
	}
}

func TestExhausted(t *testing.T) {
	if Exhausted(nil) {
		t.Fatal("nil progress reported exhausted")
	}
	if Exhausted(&model.UserProgress{AttemptNumber: 2}) {
		t.Fatal("two attempts reported exhausted")
	}
	if !Exhausted(&model.UserProgress{AttemptNumber: AttemptLimit}) {
		t.Fatal("cap without completion not reported exhausted")
	}
	if Exhausted(&model.UserProgress{AttemptNumber: AttemptLimit, Completed: true}) {
		t.Fatal("completed at cap reported exhausted")
	}
}
