package game

import (
	"fmt"
	"regexp"
	"time"
)

var weekKeyPattern = regexp.MustCompile(`^\d{4}-W\d{2}$`)

// WeekKey buckets an instant into its ISO-8601 reporting week, e.g.
// "2026-W09". The key is stored on the progress row at write time, so a
// later change to week numbering never moves historical buckets.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func ValidWeekKey(key string) bool {
	return weekKeyPattern.MatchString(key)
}
