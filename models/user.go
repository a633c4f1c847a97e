package models

// User is the account every other entity hangs off.
// ChronoPoints is the spendable currency; Exp is an unbounded accumulator
// that only explicit level-up calls drain (100 exp per level).
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	ChronoPoints int    `gorm:"default:0" json:"chrono_points"`
	Exp          int    `gorm:"default:0" json:"exp"`
	Level        int    `gorm:"default:1" json:"level"`

	Timestamps
}
