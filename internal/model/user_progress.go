package model

import "time"

// UserProgress is the single current attempt state for a (user, level) pair.
// A retry overwrites the row; the attempt number only moves forward.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel

	UserID      string `gorm:"size:36;not null;uniqueIndex:idx_progress_user_key,priority:1" json:"userId"`
	ProgressKey string `gorm:"size:64;not null;uniqueIndex:idx_progress_user_key,priority:2" json:"progressKey"`

	LevelID     uint     `gorm:"index;type:bigint unsigned" json:"levelId"`
	Category    Category `gorm:"size:32;index" json:"category"`
	Subpart     string   `gorm:"size:16;default:'none'" json:"subpart"`
	LevelNumber int      `json:"levelNumber"`

	AttemptNumber   int  `gorm:"not null" json:"attemptNumber"`
	Completed       bool `gorm:"default:false" json:"completed"`
	Stars           int  `json:"stars"`
	Points          int  `json:"points"`
	TimeUsedSeconds int  `json:"timeUsedSeconds"`

	CompletedAt time.Time `json:"completedAt"`
	WeekKey     string    `gorm:"size:12;index" json:"weekKey"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
