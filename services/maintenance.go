package services

import (
	"time"

	"life-os-api/models"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// purgeAfter is how long soft-deleted rows linger before being dropped for
// real.
const purgeAfter = 30 * 24 * time.Hour

// StartMaintenanceScheduler runs a daily purge of rows soft-deleted more
// than purgeAfter ago. Purely housekeeping; nothing in the API depends on
// it.
func StartMaintenanceScheduler(db *gorm.DB) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Error().Err(err).Msg("maintenance scheduler init failed")
		return
	}
	sched.Start()

	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(func() {
			cutoff := time.Now().Add(-purgeAfter)
			for _, model := range []any{
				&models.Habit{},
				&models.Task{},
				&models.Skill{},
				&models.Identity{},
				&models.Reward{},
			} {
				res := db.Unscoped().
					Where("deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
					Delete(model)
				if res.Error != nil {
					log.Error().Err(res.Error).Msg("purge failed")
					continue
				}
				if res.RowsAffected > 0 {
					log.Info().Int64("rows", res.RowsAffected).Msgf("purged %T", model)
				}
			}
		}),
	)
}
