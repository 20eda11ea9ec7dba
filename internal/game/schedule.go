package game

import (
	"fmt"
	"strings"
	"time"

	"tangle_play_backend/internal/model"
)

// LockWindowDays is how long a level stays playable after it unlocks.
const LockWindowDays = 15

// LevelKey is the canonical identifier for a level and doubles as the
// progress key on attempt rows, e.g. "TANGLE#L1".
func LevelKey(category model.Category, levelNumber int) string {
	return fmt.Sprintf("%s#L%d", strings.ToUpper(string(category)), levelNumber)
}

// UnlockSchedule assigns the fixed unlock window for a level at creation
// time: level N of a batch uploaded on day D unlocks at midnight D+(N-1)
// and locks 15 days later. The schedule never shifts afterwards, regardless
// of how fast users play earlier levels.
func UnlockSchedule(createdAt time.Time, levelNumber int) (unlockAt, lockAt time.Time) {
	day := time.Date(createdAt.Year(), createdAt.Month(), createdAt.Day(), 0, 0, 0, 0, createdAt.Location())
	unlockAt = day.AddDate(0, 0, levelNumber-1)
	lockAt = unlockAt.AddDate(0, 0, LockWindowDays)
	return unlockAt, lockAt
}
