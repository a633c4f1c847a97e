package models

import "time"

// Habit is a recurring action tracked by a streak. Streak maintenance lives
// in the progression service; LastCompleted drives the day-gap rule there.
type Habit struct {
	ID           string     `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string     `gorm:"index;not null" json:"user_id"`
	SkillID      *string    `gorm:"index" json:"skill_id,omitempty"`
	Name         string     `gorm:"not null" json:"name"`
	Streak       int        `gorm:"default:0" json:"streak"`
	LastCompleted *time.Time `json:"last_completed,omitempty"`
	ExpReward    int        `gorm:"default:10" json:"exp_reward"`
	ChronoReward int        `gorm:"default:1" json:"chrono_reward"`

	X        float64 `gorm:"default:0" json:"x"`
	Y        float64 `gorm:"default:0" json:"y"`
	Position int     `gorm:"default:0" json:"position"`

	Timestamps
}
