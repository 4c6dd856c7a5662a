package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBUser     string `envconfig:"DB_USER" default:"mlingo_user"`
	DBPassword string `envconfig:"DB_PASSWORD" default:"mlingo_pass"`
	DBName     string `envconfig:"DB_NAME" default:"mlingo"`
	DBSSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	RedisURL string `envconfig:"REDIS_URL" default:""`
	NatsURL  string `envconfig:"NATS_URL" default:""`

	MailFrom string `envconfig:"MAIL_FROM" default:"noreply@mlingo.app"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}
