package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"life-os-api/config"
	"life-os-api/handlers"
	"life-os-api/middleware"
	"life-os-api/models"
	"life-os-api/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("no .env file found, reading environment variables directly")
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration invalid")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Identity{},
		&models.Skill{},
		&models.Habit{},
		&models.Task{},
		&models.Reward{},
	); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	app := fiber.New(fiber.Config{
		AppName: "Life OS API",
	})

	// Trim spaces around each configured origin before handing to fiber.
	origins := strings.Split(cfg.AllowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	authService := services.NewAuthService(db, cfg.SecretKey, time.Duration(cfg.AccessTokenExpireMinutes)*time.Minute)
	coreService := services.NewCoreService(db)
	progressionService := services.NewProgressionService(db)
	itemService := services.NewItemService(db)
	coachClient := services.NewOpenAICoachClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	coachService := services.NewCoachService(db, coachClient)

	authRequired := middleware.AuthRequired(db, []byte(cfg.SecretKey))

	handlers.SetupAuthRoutes(app, authService, authRequired)
	handlers.SetupCoreRoutes(app, coreService, authRequired)
	handlers.SetupProgressionRoutes(app, progressionService, authRequired)
	handlers.SetupCoachRoutes(app, coachService, authRequired)
	handlers.SetupItemRoutes(app, itemService, authRequired)

	services.StartMaintenanceScheduler(db)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Error().Err(err).Msg("server error")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("server running")

	<-ctx.Done()
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
