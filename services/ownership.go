package services

import (
	"errors"
	"fmt"

	"life-os-api/models"

	"gorm.io/gorm"
)

// findBoardItem resolves a board item by its declared kind. The kind set is
// closed; an unknown kind is the caller's validation failure, not ours.
func findBoardItem(tx *gorm.DB, kind models.ItemKind, id string) (any, error) {
	var item any
	switch kind {
	case models.ItemKindIdentities:
		item = &models.Identity{}
	case models.ItemKindSkills:
		item = &models.Skill{}
	case models.ItemKindHabits:
		item = &models.Habit{}
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", ErrInvalidOperation, kind)
	}
	if err := tx.First(item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// ownerOf walks to the user that ultimately owns the entity. Skills have no
// user_id; their owner is the parent identity's owner, and a missing parent
// counts as NotFound.
func ownerOf(tx *gorm.DB, item any) (string, error) {
	switch v := item.(type) {
	case *models.Identity:
		return v.UserID, nil
	case *models.Habit:
		return v.UserID, nil
	case *models.Task:
		return v.UserID, nil
	case *models.Skill:
		var identity models.Identity
		if err := tx.First(&identity, "id = ?", v.IdentityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return "", ErrNotFound
			}
			return "", err
		}
		return identity.UserID, nil
	default:
		return "", fmt.Errorf("ownership check on unsupported entity %T", item)
	}
}

// authorize fails with ErrForbidden unless userID ultimately owns item.
// It must run before every mutation on an already-resolved entity.
func authorize(tx *gorm.DB, item any, userID string) error {
	owner, err := ownerOf(tx, item)
	if err != nil {
		return err
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}
