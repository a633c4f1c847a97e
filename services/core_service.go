package services

import (
	"errors"

	"life-os-api/models"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CoreService covers creation, listing and cascading deletion of the owned
// entity tree, plus reward redemption.
type CoreService struct {
	DB *gorm.DB
}

func NewCoreService(db *gorm.DB) *CoreService {
	return &CoreService{DB: db}
}

// --- Identities ---

func (s *CoreService) CreateIdentity(userID, name, persona string) (*models.Identity, error) {
	identity := models.Identity{
		UserID:         userID,
		Name:           name,
		Slug:           slug.Make(name),
		Level:          1,
		AICoachPersona: persona,
	}
	if err := s.DB.Create(&identity).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *CoreService) ListIdentities(userID string) ([]models.Identity, error) {
	var identities []models.Identity
	err := s.DB.Where("user_id = ?", userID).Order("position ASC, created_at ASC").Find(&identities).Error
	return identities, err
}

// DeleteIdentity removes the identity, its skills (with their habits and
// tasks) and its directly-owned tasks, all in one transaction.
func (s *CoreService) DeleteIdentity(identityID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var identity models.Identity
		if err := tx.Where("id = ? AND user_id = ?", identityID, userID).First(&identity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var skills []models.Skill
		if err := tx.Where("identity_id = ?", identityID).Find(&skills).Error; err != nil {
			return err
		}
		for _, sk := range skills {
			if err := deleteSkillCascade(tx, sk.ID); err != nil {
				return err
			}
		}

		if err := tx.Where("identity_id = ?", identityID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&identity).Error; err != nil {
			return err
		}
		log.Info().Str("identity_id", identityID).Int("skills", len(skills)).Msg("identity deleted (cascade)")
		return nil
	})
}

// --- Skills ---

func (s *CoreService) CreateSkill(userID, identityID, name, persona string) (*models.Skill, error) {
	var identity models.Identity
	err := s.DB.Where("id = ? AND user_id = ?", identityID, userID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	skill := models.Skill{
		IdentityID:     identityID,
		Name:           name,
		Level:          1,
		AICoachPersona: persona,
	}
	if err := s.DB.Create(&skill).Error; err != nil {
		return nil, err
	}
	return &skill, nil
}

func (s *CoreService) ListSkills(userID, identityID string) ([]models.Skill, error) {
	var skills []models.Skill
	err := s.DB.Joins("JOIN identities ON identities.id = skills.identity_id AND identities.deleted_at IS NULL").
		Where("skills.identity_id = ? AND identities.user_id = ?", identityID, userID).
		Order("skills.position ASC, skills.created_at ASC").
		Find(&skills).Error
	return skills, err
}

// DeleteSkill removes the skill and its habits and tasks.
func (s *CoreService) DeleteSkill(skillID, userID string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var skill models.Skill
		err := tx.Joins("JOIN identities ON identities.id = skills.identity_id AND identities.deleted_at IS NULL").
			Where("skills.id = ? AND identities.user_id = ?", skillID, userID).
			First(&skill).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return deleteSkillCascade(tx, skill.ID)
	})
}

func deleteSkillCascade(tx *gorm.DB, skillID string) error {
	if err := tx.Where("skill_id = ?", skillID).Delete(&models.Habit{}).Error; err != nil {
		return err
	}
	if err := tx.Where("skill_id = ?", skillID).Delete(&models.Task{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Skill{}, "id = ?", skillID).Error
}

// --- Habits ---

// CreateHabit creates a habit for the user. A skill tag must point at one
// of the user's own skills; cross-tenant references are rejected as absent.
func (s *CoreService) CreateHabit(userID, name string, skillID *string, expReward, chronoReward int) (*models.Habit, error) {
	if skillID != nil {
		if err := s.checkSkillOwned(*skillID, userID); err != nil {
			return nil, err
		}
	}
	if expReward <= 0 {
		expReward = 10
	}
	if chronoReward <= 0 {
		chronoReward = 1
	}

	habit := models.Habit{
		UserID:       userID,
		SkillID:      skillID,
		Name:         name,
		ExpReward:    expReward,
		ChronoReward: chronoReward,
	}
	if err := s.DB.Create(&habit).Error; err != nil {
		return nil, err
	}
	return &habit, nil
}

func (s *CoreService) ListHabits(userID string) ([]models.Habit, error) {
	var habits []models.Habit
	err := s.DB.Where("user_id = ?", userID).Order("position ASC, created_at ASC").Find(&habits).Error
	return habits, err
}

// --- Tasks ---

func (s *CoreService) CreateTask(userID, title string, skillID, identityID *string, expReward, chronoReward int) (*models.Task, error) {
	if skillID != nil {
		if err := s.checkSkillOwned(*skillID, userID); err != nil {
			return nil, err
		}
	}
	if identityID != nil {
		var identity models.Identity
		err := s.DB.Where("id = ? AND user_id = ?", *identityID, userID).First(&identity).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	}
	if expReward <= 0 {
		expReward = 10
	}
	if chronoReward <= 0 {
		chronoReward = 1
	}

	task := models.Task{
		UserID:       userID,
		SkillID:      skillID,
		IdentityID:   identityID,
		Title:        title,
		ExpReward:    expReward,
		ChronoReward: chronoReward,
	}
	if err := s.DB.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (s *CoreService) ListTasks(userID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// --- Rewards ---

func (s *CoreService) CreateReward(userID, name string, cost int) (*models.Reward, error) {
	reward := models.Reward{UserID: userID, Name: name, Cost: cost}
	if err := s.DB.Create(&reward).Error; err != nil {
		return nil, err
	}
	return &reward, nil
}

func (s *CoreService) ListRewards(userID string) ([]models.Reward, error) {
	var rewards []models.Reward
	err := s.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&rewards).Error
	return rewards, err
}

// RedeemReward marks the reward redeemed and deducts its cost from the
// user's chrono points, in one transaction. Double redemption and
// insufficient balance both fail without touching state.
func (s *CoreService) RedeemReward(rewardID, userID string) (int, error) {
	var balance int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var reward models.Reward
		if err := tx.Where("id = ? AND user_id = ?", rewardID, userID).First(&reward).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reward.Redeemed {
			return ErrInvalidOperation
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		if user.ChronoPoints < reward.Cost {
			return ErrInvalidOperation
		}

		user.ChronoPoints -= reward.Cost
		reward.Redeemed = true
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		if err := tx.Save(&reward).Error; err != nil {
			return err
		}

		balance = user.ChronoPoints
		log.Info().Str("reward_id", rewardID).Int("cost", reward.Cost).Msg("reward redeemed")
		return nil
	})
	return balance, err
}

func (s *CoreService) checkSkillOwned(skillID, userID string) error {
	var skill models.Skill
	err := s.DB.Joins("JOIN identities ON identities.id = skills.identity_id AND identities.deleted_at IS NULL").
		Where("skills.id = ? AND identities.user_id = ?", skillID, userID).
		First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
