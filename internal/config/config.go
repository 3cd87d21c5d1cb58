package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"SERVER_PORT" envDefault:"8080"`

	DBDriver string `env:"DB_DRIVER" envDefault:"mysql"`
	DBDSN    string `env:"DB_DSN" envDefault:"user:password@tcp(localhost:3306)/todos?charset=utf8mb4&parseTime=True&loc=Local"`
	ResetDB  bool   `env:"RESET_DB" envDefault:"false"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD"`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret     string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION" envDefault:"24h"`
	JWTAudHeader  string        `env:"JWT_AUD_HEADER" envDefault:"JWT-Aud"`
	PurgeInterval time.Duration `env:"ALLOWLIST_PURGE_INTERVAL" envDefault:"1h"`
	UserCacheTTL  time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`
	LogLevel      string        `env:"LOG_LEVEL" envDefault:"info"`
	SwaggerHost   string        `env:"SWAGGER_HOST"`
}

// Load builds Config from the environment. A .env file in the working
// directory is read first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.JWTExpiration <= 0 {
		return nil, fmt.Errorf("JWT_EXPIRATION must be positive, got %s", cfg.JWTExpiration)
	}
	if cfg.PurgeInterval <= 0 {
		return nil, fmt.Errorf("ALLOWLIST_PURGE_INTERVAL must be positive, got %s", cfg.PurgeInterval)
	}
	return cfg, nil
}
