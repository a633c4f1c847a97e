package config

import (
	"fmt"

	"github.com/joeshaw/envdecode"
)

// Config holds everything the service reads from the environment.
// main.go loads .env via godotenv before calling Load.
type Config struct {
	DatabaseURL    string `env:"DATABASE_URL,required"`
	SecretKey      string `env:"SECRET_KEY,required"`
	OpenAIAPIKey   string `env:"OPENAI_API_KEY"`
	OpenAIModel    string `env:"OPENAI_MODEL,default=gpt-4o"`
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=http://localhost:3000"`
	Port           string `env:"PORT,default=8000"`

	// Lifetime of issued access tokens, in minutes.
	AccessTokenExpireMinutes int `env:"ACCESS_TOKEN_EXPIRE_MINUTES,default=30"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.StrictDecode(&cfg); err != nil {
		return nil, fmt.Errorf("decode environment: %w", err)
	}
	return &cfg, nil
}
