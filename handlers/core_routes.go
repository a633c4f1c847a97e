package handlers

import (
	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupCoreRoutes(app *fiber.App, coreService *services.CoreService, authRequired fiber.Handler) {
	secured := app.Group("/", authRequired)

	// Identities
	secured.Post("/identities", func(c *fiber.Ctx) error {
		var req struct {
			Name           string `json:"name"`
			AICoachPersona string `json:"ai_coach_persona"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		identity, err := coreService.CreateIdentity(userID(c), req.Name, req.AICoachPersona)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(identity)
	})

	secured.Get("/identities", func(c *fiber.Ctx) error {
		identities, err := coreService.ListIdentities(userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(identities)
	})

	secured.Delete("/identities/:id", func(c *fiber.Ctx) error {
		if err := coreService.DeleteIdentity(c.Params("id"), userID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	})

	// Skills
	secured.Post("/skills", func(c *fiber.Ctx) error {
		var req struct {
			IdentityID     string `json:"identity_id"`
			Name           string `json:"name"`
			AICoachPersona string `json:"ai_coach_persona"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.IdentityID == "" || req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identity_id and name are required"})
		}
		skill, err := coreService.CreateSkill(userID(c), req.IdentityID, req.Name, req.AICoachPersona)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(skill)
	})

	secured.Get("/skills", func(c *fiber.Ctx) error {
		identityID := c.Query("identity_id")
		if identityID == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "identity_id query parameter is required"})
		}
		skills, err := coreService.ListSkills(userID(c), identityID)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(skills)
	})

	secured.Delete("/skills/:id", func(c *fiber.Ctx) error {
		if err := coreService.DeleteSkill(c.Params("id"), userID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success"})
	})

	// Habits
	secured.Post("/habits", func(c *fiber.Ctx) error {
		var req struct {
			Name         string  `json:"name"`
			SkillID      *string `json:"skill_id"`
			ExpReward    int     `json:"exp_reward"`
			ChronoReward int     `json:"chrono_reward"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name is required"})
		}
		habit, err := coreService.CreateHabit(userID(c), req.Name, req.SkillID, req.ExpReward, req.ChronoReward)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(habit)
	})

	secured.Get("/habits", func(c *fiber.Ctx) error {
		habits, err := coreService.ListHabits(userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(habits)
	})

	// Tasks
	secured.Post("/tasks", func(c *fiber.Ctx) error {
		var req struct {
			Title        string  `json:"title"`
			SkillID      *string `json:"skill_id"`
			IdentityID   *string `json:"identity_id"`
			ExpReward    int     `json:"exp_reward"`
			ChronoReward int     `json:"chrono_reward"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Title == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "title is required"})
		}
		task, err := coreService.CreateTask(userID(c), req.Title, req.SkillID, req.IdentityID, req.ExpReward, req.ChronoReward)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(task)
	})

	secured.Get("/tasks", func(c *fiber.Ctx) error {
		tasks, err := coreService.ListTasks(userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(tasks)
	})

	// Rewards
	secured.Post("/rewards", func(c *fiber.Ctx) error {
		var req struct {
			Name string `json:"name"`
			Cost int    `json:"cost"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Name == "" || req.Cost < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name and a non-negative cost are required"})
		}
		reward, err := coreService.CreateReward(userID(c), req.Name, req.Cost)
		if err != nil {
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(reward)
	})

	secured.Get("/rewards", func(c *fiber.Ctx) error {
		rewards, err := coreService.ListRewards(userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(rewards)
	})

	secured.Post("/rewards/:id/redeem", func(c *fiber.Ctx) error {
		balance, err := coreService.RedeemReward(c.Params("id"), userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"status": "success", "chrono_points": balance})
	})
}
