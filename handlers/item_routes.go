package handlers

import (
	"life-os-api/models"
	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
)

func SetupItemRoutes(app *fiber.App, itemService *services.ItemService, authRequired fiber.Handler) {
	secured := app.Group("/items", authRequired)

	secured.Patch("/:id/position", func(c *fiber.Ctx) error {
		var req struct {
			Kind models.ItemKind `json:"kind"`
			X    float64         `json:"x"`
			Y    float64         `json:"y"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if !req.Kind.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown item kind"})
		}
		if err := itemService.SetPosition(req.Kind, c.Params("id"), req.X, req.Y, userID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(services.ItemResult{ID: c.Params("id"), Success: true})
	})

	secured.Patch("/:id/section", func(c *fiber.Ctx) error {
		var req struct {
			Kind       models.ItemKind `json:"kind"`
			NewSection models.ItemKind `json:"new_section"`
			Position   int             `json:"position"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		if !req.Kind.IsValid() || !req.NewSection.IsValid() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "unknown item kind"})
		}
		if err := itemService.ChangeSection(req.Kind, c.Params("id"), req.NewSection, req.Position, userID(c)); err != nil {
			return fail(c, err)
		}
		return c.JSON(services.ItemResult{ID: c.Params("id"), Success: true})
	})

	secured.Post("/batch", func(c *fiber.Ctx) error {
		var req struct {
			Items []services.BatchItem `json:"items"`
		}
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid JSON"})
		}
		results, err := itemService.BatchUpdate(req.Items, userID(c))
		if err != nil {
			return fail(c, err)
		}
		return c.JSON(results)
	})
}
