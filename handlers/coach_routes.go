package handlers

import (
	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCoachRoutes(app *fiber.App, coachService *services.CoachService, authRequired fiber.Handler) {
	secured := app.Group("/", authRequired)

	parse := func(c *fiber.Ctx) (string, error) {
		var req struct {
			UserInput string `json:"user_input"`
		}
		if err := c.BodyParser(&req); err != nil {
			return "", err
		}
		return req.UserInput, nil
	}

	secured.Post("/identities/:id/ai-coach", func(c *fiber.Ctx) error {
		userInput, err := parse(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		answer, err := coachService.CoachIdentity(c.Context(), c.Params("id"), userID(c), userInput)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"response": answer})
	})

	secured.Post("/skills/:id/ai-coach", func(c *fiber.Ctx) error {
		userInput, err := parse(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		answer, err := coachService.CoachSkill(c.Context(), c.Params("id"), userID(c), userInput)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"response": answer})
	})
}
