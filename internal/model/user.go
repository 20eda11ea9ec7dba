package model

import (
	"time"
)

type UserRole string

const (
	Player UserRole = "player"
	Admin  UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('player','admin');default:'player'" json:"role"`
	Language string   `gorm:"size:10;default:'en'" json:"language"`
	Avatar   string   `gorm:"size:255" json:"avatar"`

	LastLogin time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen  time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}
