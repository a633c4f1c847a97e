package models

// Identity is a top-level life area a user defines (e.g. "Athlete").
// It owns skills and optionally tasks, and carries the AI coach persona
// used when the coach is consulted at identity scope.
type Identity struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID         string `gorm:"index;not null" json:"user_id"`
	Name           string `gorm:"not null" json:"name"`
	Slug           string `gorm:"index" json:"slug"`
	Level          int    `gorm:"default:1" json:"level"`
	Exp            int    `gorm:"default:0" json:"exp"`
	AICoachPersona string `gorm:"type:text" json:"ai_coach_persona"`

	// Free-form board coordinates plus intra-section order.
	X        float64 `gorm:"default:0" json:"x"`
	Y        float64 `gorm:"default:0" json:"y"`
	Position int     `gorm:"default:0" json:"position"`

	Timestamps
}

// Skill is a sub-area nested under an Identity. It has no user_id of its
// own; ownership is always resolved through the parent identity.
type Skill struct {
	ID             string `gorm:"primaryKey;type:uuid" json:"id"`
	IdentityID     string `gorm:"index;not null" json:"identity_id"`
	Name           string `gorm:"not null" json:"name"`
	Level          int    `gorm:"default:1" json:"level"`
	Exp            int    `gorm:"default:0" json:"exp"`
	AICoachPersona string `gorm:"type:text" json:"ai_coach_persona"`

	X        float64 `gorm:"default:0" json:"x"`
	Y        float64 `gorm:"default:0" json:"y"`
	Position int     `gorm:"default:0" json:"position"`

	Timestamps
}
