package handlers

import (
	"errors"

	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, authRequired fiber.Handler) {
	app.Post("/users", func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if req.Username == "" || req.Email == "" || req.Password == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username, email and password are required"})
		}

		user, err := authService.Register(req.Username, req.Email, req.Password)
		if err != nil {
			if errors.Is(err, services.ErrInvalidOperation) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "username or email already registered"})
			}
			return fail(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(user)
	})

	login := func(c *fiber.Ctx) error {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}

		token, err := authService.Login(req.Username, req.Password)
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(fiber.Map{"access_token": token, "token_type": "bearer"})
	}
	app.Post("/auth/login", login)
	app.Post("/token", login)

	app.Get("/users/me", authRequired, func(c *fiber.Ctx) error {
		user, err := authService.GetUser(userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(user)
	})
}
