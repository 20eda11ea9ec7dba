package game

import "testing"

func TestPointsFor(t *testing.T) {
	cases := map[int]int{1: 300, 2: 200, 3: 100, 4: 0, 5: 0, 0: 0, -1: 0}
	for attempt, want := range cases {
		if got := PointsFor(attempt); got != want {
			t.Errorf("PointsFor(%d) = %d, want %d", attempt, got, want)
		}
	}
}

func TestStarsFor(t *testing.T) {
	cases := map[int]int{1: 3, 2: 2, 3: 1, 4: 0, 0: 0}
	for attempt, want := range cases {
		if got := StarsFor(attempt); got != want {
			t.Errorf("StarsFor(%d) = %d, want %d", attempt, got, want)
		}
	}
}

func TestTimeUsed(t *testing.T) {
	if got := TimeUsed(300, 258); got != 42 {
		t.Errorf("TimeUsed(300, 258) = %d, want 42", got)
	}
	// remaining above the limit clamps to zero spent
	if got := TimeUsed(300, 400); got != 0 {
		t.Errorf("TimeUsed(300, 400) = %d, want 0", got)
	}
	// negative remaining (overtime) clamps to the limit
	if got := TimeUsed(300, -10); got != 300 {
		t.Errorf("TimeUsed(300, -10) = %d, want 300", got)
	}
}

func TestClampTimeUsed(t *testing.T) {
	if got := ClampTimeUsed(-5, 300); got != 0 {
		t.Errorf("ClampTimeUsed(-5, 300) = %d, want 0", got)
	}
	if got := ClampTimeUsed(500, 300); got != 300 {
		t.Errorf("ClampTimeUsed(500, 300) = %d, want 300", got)
	}
	if got := ClampTimeUsed(120, 300); got != 120 {
		t.Errorf("ClampTimeUsed(120, 300) = %d, want 120", got)
	}
}
