package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds the configuration for the meal server.
type Config struct {
	// Server settings
	Port     string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Redis (draft store + list-query cache)
	RedisAddr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Firestore (permanent meal store)
	FirebaseProjectID       string `envconfig:"FIREBASE_PROJECT_ID" required:"true"`
	FirebaseCredentialsFile string `envconfig:"GOOGLE_APPLICATION_CREDENTIALS"`

	// OpenAI (meal generation)
	OpenAIAPIKey  string        `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel   string        `envconfig:"OPENAI_MODEL" default:"gpt-4o-mini"`
	OpenAITimeout time.Duration `envconfig:"OPENAI_TIMEOUT" default:"90s"`

	// Draft lifecycle
	DraftTTL time.Duration `envconfig:"DRAFT_TTL" default:"24h"`

	// List-query cache
	MealListCacheTTL time.Duration `envconfig:"MEAL_LIST_CACHE_TTL" default:"5m"`

	// Notifier hardening: maximum live subscriptions per owner.
	MaxSubscriptionsPerUser int `envconfig:"MAX_SUBSCRIPTIONS_PER_USER" default:"8"`

	// JWT secret used to verify already-issued bearer tokens.
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`
}

// LoadConfig loads the configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load meal-server configuration: %w", err)
	}
	return &cfg, nil
}
