package models

// ItemKind names the closed set of board item types the positioning
// endpoints operate on. Tasks and rewards never appear on the board.
type ItemKind string

const (
	ItemKindIdentities ItemKind = "identities"
	ItemKindSkills     ItemKind = "skills"
	ItemKindHabits     ItemKind = "habits"
)

func (k ItemKind) IsValid() bool {
	switch k {
	case ItemKindIdentities, ItemKindSkills, ItemKindHabits:
		return true
	default:
		return false
	}
}
