package services

import (
	"context"
	"errors"
	"fmt"

	"life-os-api/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CoachContext is the read-only snapshot grounding a coach call: the user's
// progression numbers, their pending task titles and their habit streaks.
type CoachContext struct {
	UserLevel    int           `json:"user_level"`
	UserExp      int           `json:"user_exp"`
	ChronoPoints int           `json:"chrono_points"`
	PendingTasks []string      `json:"pending_tasks"`
	ActiveHabits []HabitStreak `json:"recent_habits"`
}

type HabitStreak struct {
	Name   string `json:"name"`
	Streak int    `json:"streak"`
}

// CoachClient is the external text-generation collaborator. The production
// implementation lives in coach_client.go; tests substitute a fake.
type CoachClient interface {
	Advise(ctx context.Context, persona, userInput string, snapshot CoachContext) (string, error)
}

// CoachService builds context snapshots and relays them to the coach.
// It never writes; a failed coach call cannot leave partial state behind.
type CoachService struct {
	DB     *gorm.DB
	Client CoachClient
}

func NewCoachService(db *gorm.DB, client CoachClient) *CoachService {
	return &CoachService{DB: db, Client: client}
}

// BuildContext assembles the snapshot inside one read transaction so the
// numbers and lists describe a single moment even under concurrent writes.
// identityID narrows the pending tasks; skillID narrows tasks and habits.
func (s *CoachService) BuildContext(userID string, identityID, skillID *string) (CoachContext, error) {
	var snapshot CoachContext
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		snapshot.UserLevel = user.Level
		snapshot.UserExp = user.Exp
		snapshot.ChronoPoints = user.ChronoPoints

		taskQuery := tx.Model(&models.Task{}).
			Where("user_id = ? AND completed = ?", userID, false)
		if identityID != nil {
			taskQuery = taskQuery.Where("identity_id = ?", *identityID)
		}
		if skillID != nil {
			taskQuery = taskQuery.Where("skill_id = ?", *skillID)
		}
		var tasks []models.Task
		if err := taskQuery.Order("created_at ASC").Find(&tasks).Error; err != nil {
			return err
		}
		snapshot.PendingTasks = make([]string, 0, len(tasks))
		for _, t := range tasks {
			snapshot.PendingTasks = append(snapshot.PendingTasks, t.Title)
		}

		habitQuery := tx.Model(&models.Habit{}).Where("user_id = ?", userID)
		if skillID != nil {
			habitQuery = habitQuery.Where("skill_id = ?", *skillID)
		}
		var habits []models.Habit
		if err := habitQuery.Order("created_at ASC").Find(&habits).Error; err != nil {
			return err
		}
		snapshot.ActiveHabits = make([]HabitStreak, 0, len(habits))
		for _, h := range habits {
			snapshot.ActiveHabits = append(snapshot.ActiveHabits, HabitStreak{Name: h.Name, Streak: h.Streak})
		}
		return nil
	})
	return snapshot, err
}

// CoachIdentity answers at identity scope, using the identity's persona.
func (s *CoachService) CoachIdentity(ctx context.Context, identityID, userID, userInput string) (string, error) {
	var identity models.Identity
	err := s.DB.Where("id = ? AND user_id = ?", identityID, userID).First(&identity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	snapshot, err := s.BuildContext(userID, &identity.ID, nil)
	if err != nil {
		return "", err
	}
	return s.advise(ctx, identity.AICoachPersona, userInput, snapshot)
}

// CoachSkill answers at skill scope; ownership runs through the parent
// identity as everywhere else.
func (s *CoachService) CoachSkill(ctx context.Context, skillID, userID, userInput string) (string, error) {
	var skill models.Skill
	err := s.DB.Joins("JOIN identities ON identities.id = skills.identity_id AND identities.deleted_at IS NULL").
		Where("skills.id = ? AND identities.user_id = ?", skillID, userID).
		First(&skill).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	snapshot, err := s.BuildContext(userID, nil, &skill.ID)
	if err != nil {
		return "", err
	}
	return s.advise(ctx, skill.AICoachPersona, userInput, snapshot)
}

// advise runs after the snapshot is fully built; the collaborator call
// holds no database state and is bounded by the request context.
func (s *CoachService) advise(ctx context.Context, persona, userInput string, snapshot CoachContext) (string, error) {
	answer, err := s.Client.Advise(ctx, persona, userInput, snapshot)
	if err != nil {
		log.Error().Err(err).Msg("coach call failed")
		return "", fmt.Errorf("%w: %v", ErrCoachUnavailable, err)
	}
	return answer, nil
}
