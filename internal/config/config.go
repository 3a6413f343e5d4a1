package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	ServerPort string `envconfig:"SERVER_PORT" default:"8080"`
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"nexus"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"nexus_dev_password"`
	DBName     string `envconfig:"DB_NAME" default:"nexus"`

	JWTSecret string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// Header carrying the real-time credential on the WebSocket
	// handshake. Deliberately separate from the HTTP Authorization
	// header so both channels stay independently configurable.
	WSAuthHeader string `envconfig:"WS_AUTH_HEADER" default:"X-Authorization"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	EphemeralTTL    time.Duration `envconfig:"EPHEMERAL_TTL" default:"24h"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"1h"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
