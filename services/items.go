package services

import (
	"life-os-api/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ItemService moves identities, skills and habits around the board.
type ItemService struct {
	DB *gorm.DB
}

func NewItemService(db *gorm.DB) *ItemService {
	return &ItemService{DB: db}
}

// ItemUpdate is one positioning change. X/Y pairs move the item on the
// board; NewSection+Position reorder it within its section. A batch entry
// additionally names the item it applies to.
type ItemUpdate struct {
	X          *float64         `json:"x,omitempty"`
	Y          *float64         `json:"y,omitempty"`
	NewSection *models.ItemKind `json:"new_section,omitempty"`
	Position   *int             `json:"position,omitempty"`
}

type BatchItem struct {
	ID     string          `json:"id"`
	Kind   models.ItemKind `json:"kind"`
	Update ItemUpdate      `json:"update"`
}

// ItemResult mirrors one batch entry, in input order.
type ItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// SetPosition overwrites the item's free-form board coordinates.
func (s *ItemService) SetPosition(kind models.ItemKind, id string, x, y float64, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return setPosition(tx, kind, id, x, y, userID)
	})
}

// ChangeSection updates the item's intra-section order index. Moving an
// item to a section of a different kind is rejected outright.
func (s *ItemService) ChangeSection(kind models.ItemKind, id string, newSection models.ItemKind, position int, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return changeSection(tx, kind, id, newSection, position, userID)
	})
}

// BatchUpdate applies heterogeneous positioning updates in one call. Each
// item fails or succeeds on its own; all successes commit together at the
// end, and results come back in input order.
func (s *ItemService) BatchUpdate(items []BatchItem, userID string) ([]ItemResult, error) {
	results := make([]ItemResult, 0, len(items))
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, entry := range items {
			if err := applyItemUpdate(tx, entry, userID); err != nil {
				results = append(results, ItemResult{ID: entry.ID, Success: false, Message: err.Error()})
				continue
			}
			results = append(results, ItemResult{ID: entry.ID, Success: true})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Info().Int("items", len(items)).Str("user_id", userID).Msg("batch item update applied")
	return results, nil
}

func applyItemUpdate(tx *gorm.DB, entry BatchItem, userID string) error {
	u := entry.Update
	switch {
	case u.X != nil && u.Y != nil:
		return setPosition(tx, entry.Kind, entry.ID, *u.X, *u.Y, userID)
	case u.NewSection != nil && u.Position != nil:
		return changeSection(tx, entry.Kind, entry.ID, *u.NewSection, *u.Position, userID)
	default:
		return ErrInvalidOperation
	}
}

func setPosition(tx *gorm.DB, kind models.ItemKind, id string, x, y float64, userID string) error {
	item, err := findBoardItem(tx, kind, id)
	if err != nil {
		return err
	}
	if err := authorize(tx, item, userID); err != nil {
		return err
	}
	return tx.Model(item).Updates(map[string]any{"x": x, "y": y}).Error
}

func changeSection(tx *gorm.DB, kind models.ItemKind, id string, newSection models.ItemKind, position int, userID string) error {
	item, err := findBoardItem(tx, kind, id)
	if err != nil {
		return err
	}
	if err := authorize(tx, item, userID); err != nil {
		return err
	}
	if newSection != kind {
		return ErrInvalidOperation
	}
	return tx.Model(item).Update("position", position).Error
}
