package models

// Reward is something a user promises themselves and buys with chrono
// points. Redemption is one-way and deducts Cost from the user's balance.
type Reward struct {
	ID       string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string `gorm:"index;not null" json:"user_id"`
	Name     string `gorm:"not null" json:"name"`
	Cost     int    `gorm:"not null" json:"cost"`
	Redeemed bool   `gorm:"default:false" json:"redeemed"`

	Timestamps
}
