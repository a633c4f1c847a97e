package models

// Task is a one-off action completed at most once. The optional skill and
// identity tags each receive an independent exp credit on completion.
type Task struct {
	ID           string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID       string  `gorm:"index;not null" json:"user_id"`
	SkillID      *string `gorm:"index" json:"skill_id,omitempty"`
	IdentityID   *string `gorm:"index" json:"identity_id,omitempty"`
	Title        string  `gorm:"not null" json:"title"`
	Completed    bool    `gorm:"default:false" json:"completed"`
	ExpReward    int     `gorm:"default:10" json:"exp_reward"`
	ChronoReward int     `gorm:"default:1" json:"chrono_reward"`

	Timestamps
}
