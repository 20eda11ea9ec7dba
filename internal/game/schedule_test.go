package game

import (
	"testing"
	"time"

	"tangle_play_backend/internal/model"
)

func TestLevelKey(t *testing.T) {
	cases := []struct {
		category model.Category
		number   int
		want     string
	}{
		{model.CategoryTangle, 1, "TANGLE#L1"},
		{model.CategoryTangle, 12, "TANGLE#L12"},
		{model.CategoryFunthinkerBasic, 7, "FUNTHINKER-BASIC#L7"},
		{model.CategoryFunthinkerMedium, 3, "FUNTHINKER-MEDIUM#L3"},
		{model.CategoryFunthinkerHard, 1, "FUNTHINKER-HARD#L1"},
	}
	for _, tc := range cases {
		if got := LevelKey(tc.category, tc.number); got != tc.want {
			t.Errorf("LevelKey(%s, %d) = %q, want %q", tc.category, tc.number, got, tc.want)
		}
	}
}

func TestUnlockSchedule(t *testing.T) {
	uploaded := time.Date(2026, 3, 2, 14, 35, 12, 0, time.UTC)
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	unlock, lock := UnlockSchedule(uploaded, 1)
	if !unlock.Equal(midnight) {
		t.Fatalf("level 1 unlock = %s, want upload-day midnight %s", unlock, midnight)
	}
	if !lock.Equal(midnight.AddDate(0, 0, LockWindowDays)) {
		t.Fatalf("level 1 lock = %s, want unlock + %d days", lock, LockWindowDays)
	}

	unlock, lock = UnlockSchedule(uploaded, 4)
	if !unlock.Equal(midnight.AddDate(0, 0, 3)) {
		t.Fatalf("level 4 unlock = %s, want midnight + 3 days", unlock)
	}
	if lock.Sub(unlock) != time.Duration(LockWindowDays)*24*time.Hour {
		t.Fatalf("lock window = %s, want %d days", lock.Sub(unlock), LockWindowDays)
	}
}

func TestUnlockScheduleConsecutiveLevels(t *testing.T) {
	uploaded := time.Date(2026, 6, 15, 9, 0, 0, 0, time.UTC)
	prev, _ := UnlockSchedule(uploaded, 1)
	for n := 2; n <= 10; n++ {
		unlock, _ := UnlockSchedule(uploaded, n)
		if unlock.Sub(prev) != 24*time.Hour {
			t.Fatalf("level %d unlocks %s after level %d, want 24h", n, unlock.Sub(prev), n-1)
		}
		prev = unlock
	}
}
