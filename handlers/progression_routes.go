package handlers

import (
	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressionRoutes(app *fiber.App, progressionService *services.ProgressionService, authRequired fiber.Handler) {
	secured := app.Group("/", authRequired)

	secured.Post("/habits/:id/complete", func(c *fiber.Ctx) error {
		streak, err := progressionService.CompleteHabit(c.Params("id"), userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "streak": streak})
	})

	secured.Post("/tasks/:id/complete", func(c *fiber.Ctx) error {
		// Re-completing a finished task is a success no-op, never an error.
		if _, err := progressionService.CompleteTask(c.Params("id"), userID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	})

	secured.Post("/identities/:id/level-up", func(c *fiber.Ctx) error {
		res, err := progressionService.LevelUpIdentity(c.Params("id"), userID(c))
		if err != nil {
			return fail(c, err)
		}
		if res.Gained == 0 {
			return c.JSON(fiber.Map{"status": "no_change"})
		}
		return c.JSON(fiber.Map{
			"status":        "success",
			"levels_gained": res.Gained,
			"new_level":     res.NewLevel,
		})
	})

	secured.Post("/skills/:id/level-up", func(c *fiber.Ctx) error {
		res, err := progressionService.LevelUpSkill(c.Params("id"), userID(c))
		if err != nil {
			return fail(c, err)
		}
		if res.Gained == 0 {
			return c.JSON(fiber.Map{"status": "no_change"})
		}
		return c.JSON(fiber.Map{
			"status":        "success",
			"levels_gained": res.Gained,
			"new_level":     res.NewLevel,
		})
	})
}
