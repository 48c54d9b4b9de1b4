package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port            string        `env:"PORT" env-default:"5000"`
	MongoURI        string        `env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	DBName          string        `env:"DB_NAME" env-default:"SDP"`
	JWTSecret       string        `env:"JWT_SECRET"`
	TokenTTL        time.Duration `env:"TOKEN_TTL" env-default:"20m"`
	CORSOrigin      string        `env:"CORS_ORIGIN" env-default:"http://localhost:3000"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" env-default:"5s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	LogLevel        string        `env:"LOG_LEVEL" env-default:"info"`
	GinMode         string        `env:"GIN_MODE" env-default:"release"`
}

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the .env file.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, err
	}
	cfg.MongoURI = strings.TrimSpace(cfg.MongoURI)
	cfg.JWTSecret = strings.TrimSpace(cfg.JWTSecret)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is empty")
	}
	if c.MongoURI == "" {
		return errors.New("MONGO_URI is empty")
	}
	if c.DBName == "" {
		return errors.New("DB_NAME is empty")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be > 0")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be > 0")
	}
	return nil
}

func (c Config) Addr() string {
	return ":" + c.Port
}
