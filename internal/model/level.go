package model

import (
	"strings"
	"time"
)

// Category is the fixed set of puzzle groups. Level numbers are dense per
// category, starting at 1, and are never reused after deletion.
type Category string

const (
	CategoryTangle           Category = "tangle"
	CategoryFunthinkerBasic  Category = "funthinker-basic"
	CategoryFunthinkerMedium Category = "funthinker-medium"
	CategoryFunthinkerHard   Category = "funthinker-hard"
)

func Categories() []Category {
	return []Category{
		CategoryTangle,
		CategoryFunthinkerBasic,
		CategoryFunthinkerMedium,
		CategoryFunthinkerHard,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategoryTangle, CategoryFunthinkerBasic, CategoryFunthinkerMedium, CategoryFunthinkerHard:
		return true
	}
	return false
}

// Subpart is the difficulty tier inside the funthinker group, "none" for the
// rest.
func (c Category) Subpart() string {
	if s, ok := strings.CutPrefix(string(c), "funthinker-"); ok {
		return s
	}
	return "none"
}

const DefaultTimeLimitSeconds = 300

// swagger:model Level
type Level struct {
	BaseModel

	Category    Category `gorm:"size:32;not null;uniqueIndex:idx_levels_category_number,priority:1" json:"category"`
	LevelNumber int      `gorm:"not null;uniqueIndex:idx_levels_category_number,priority:2" json:"levelNumber"`
	Subpart     string   `gorm:"size:16;default:'none'" json:"subpart"`

	PageNumber       int    `json:"pageNumber"`
	OutlineURL       string `gorm:"size:512" json:"outlineUrl"`
	TimeLimitSeconds int    `gorm:"default:300" json:"timeLimitSeconds"`

	UnlockAt time.Time `gorm:"not null" json:"unlockAt"`
	LockAt   time.Time `gorm:"not null" json:"lockAt"`

	HasBeenPlayed bool   `gorm:"default:false" json:"hasBeenPlayed"`
	CreatedBy     string `gorm:"size:100" json:"createdBy"`
}

func (Level) TableName() string {
	return "levels"
}
