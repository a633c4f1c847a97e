package services

import (
	"errors"
	"time"

	"life-os-api/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ExpPerLevel is how much exp one level costs. Level-ups drain exp in
// ExpPerLevel chunks until less than one chunk remains.
const ExpPerLevel = 100

// nextStreak applies the day-gap rule: first-ever completion starts the
// streak at 1, a gap of more than one full day resets it to 1, anything
// shorter increments it. Completing twice within the same day increments
// twice; the endpoint is deliberately not idempotent (see DESIGN.md).
func nextStreak(streak int, lastCompleted *time.Time, now time.Time) int {
	if lastCompleted == nil {
		return 1
	}
	if now.Sub(*lastCompleted)/(24*time.Hour) > 1 {
		return 1
	}
	return streak + 1
}

// drainLevels consumes ExpPerLevel per level until exp runs short.
// Multi-level jumps in one call are expected.
func drainLevels(level, exp int) (newLevel, newExp, gained int) {
	for exp >= ExpPerLevel {
		level++
		exp -= ExpPerLevel
		gained++
	}
	return level, exp, gained
}

// ProgressionService owns the reward/streak/level rules. Every mutation is
// one transaction; there is no cross-request row locking beyond that, so
// two truly concurrent completions can double-apply just like the system
// this replaces.
type ProgressionService struct {
	DB *gorm.DB
}

func NewProgressionService(db *gorm.DB) *ProgressionService {
	return &ProgressionService{DB: db}
}

// CompleteHabit advances the habit's streak and credits the owner (and the
// tagged skill, if any). Returns the new streak.
func (s *ProgressionService) CompleteHabit(habitID, userID string) (int, error) {
	var streak int
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var habit models.Habit
		if err := tx.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		now := time.Now().UTC()
		habit.Streak = nextStreak(habit.Streak, habit.LastCompleted, now)
		habit.LastCompleted = &now
		if err := tx.Save(&habit).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		user.Exp += habit.ExpReward
		user.ChronoPoints += habit.ChronoReward
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		// The skill earns the same exp reward; there is no separate
		// skill-level reward field.
		if habit.SkillID != nil {
			var skill models.Skill
			err := tx.First(&skill, "id = ?", *habit.SkillID).Error
			if err == nil {
				skill.Exp += habit.ExpReward
				if err := tx.Save(&skill).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		streak = habit.Streak
		log.Info().
			Str("habit_id", habit.ID).
			Str("user_id", userID).
			Int("streak", habit.Streak).
			Int("exp_reward", habit.ExpReward).
			Msg("habit completed")
		return nil
	})
	return streak, err
}

// CompleteTask flips the task to completed and credits the owner plus the
// tagged skill and identity, each by the full exp reward. A second call is
// a no-op; changed reports whether this call did the completion.
func (s *ProgressionService) CompleteTask(taskID, userID string) (bool, error) {
	var changed bool
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		if err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if task.Completed {
			return nil
		}

		task.Completed = true
		if err := tx.Save(&task).Error; err != nil {
			return err
		}

		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}
		user.Exp += task.ExpReward
		user.ChronoPoints += task.ChronoReward
		if err := tx.Save(&user).Error; err != nil {
			return err
		}

		if task.SkillID != nil {
			var skill models.Skill
			err := tx.First(&skill, "id = ?", *task.SkillID).Error
			if err == nil {
				skill.Exp += task.ExpReward
				if err := tx.Save(&skill).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		if task.IdentityID != nil {
			var identity models.Identity
			err := tx.First(&identity, "id = ?", *task.IdentityID).Error
			if err == nil {
				identity.Exp += task.ExpReward
				if err := tx.Save(&identity).Error; err != nil {
					return err
				}
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}

		changed = true
		log.Info().
			Str("task_id", task.ID).
			Str("user_id", userID).
			Int("exp_reward", task.ExpReward).
			Msg("task completed")
		return nil
	})
	return changed, err
}

// LevelUpResult reports how far a level-up call got. Gained == 0 means the
// entity had less than ExpPerLevel banked and nothing changed.
type LevelUpResult struct {
	Gained   int
	NewLevel int
}

// LevelUpIdentity drains the identity's exp into levels. Level-ups are
// always an explicit client action; reward credits never trigger them, so
// exp can sit at 100+ between a completion and the next call here.
func (s *ProgressionService) LevelUpIdentity(identityID, userID string) (LevelUpResult, error) {
	var res LevelUpResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var identity models.Identity
		if err := tx.Where("id = ? AND user_id = ?", identityID, userID).First(&identity).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		identity.Level, identity.Exp, res.Gained = drainLevels(identity.Level, identity.Exp)
		res.NewLevel = identity.Level
		if res.Gained == 0 {
			return nil
		}
		if err := tx.Save(&identity).Error; err != nil {
			return err
		}
		log.Info().
			Str("identity_id", identity.ID).
			Int("levels_gained", res.Gained).
			Int("new_level", identity.Level).
			Msg("identity leveled up")
		return nil
	})
	return res, err
}

// LevelUpSkill is the skill flavor; ownership runs through the parent
// identity since skills carry no user_id of their own.
func (s *ProgressionService) LevelUpSkill(skillID, userID string) (LevelUpResult, error) {
	var res LevelUpResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
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

		skill.Level, skill.Exp, res.Gained = drainLevels(skill.Level, skill.Exp)
		res.NewLevel = skill.Level
		if res.Gained == 0 {
			return nil
		}
		if err := tx.Save(&skill).Error; err != nil {
			return err
		}
		log.Info().
			Str("skill_id", skill.ID).
			Int("levels_gained", res.Gained).
			Int("new_level", skill.Level).
			Msg("skill leveled up")
		return nil
	})
	return res, err
}
