package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Config struct {
	ServeAddress   string        `envconfig:"SERVE_ADDRESS" default:":8080"`
	DatabaseURL    string        `envconfig:"POSTGRES_URL" required:"true"`
	AuthSecret     string        `envconfig:"AUTH_SECRET" required:"true"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	SessionTTL     time.Duration `envconfig:"SESSION_TTL" default:"720h"`
}

// Load reads ./.env when present and then the process environment.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("No .env file found, relying on system env")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "read environment")
	}
	return cfg, nil
}

// InitDB opens the postgres connection. Every action issues exactly one
// statement, so gorm's implicit write transaction is disabled.
func InitDB(cfg Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect postgres database")
	}
	return db, nil
}
