package config

import (
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type DBConfig struct {
	Url string `envconfig:"URL"`
}

type JwtConfig struct {
	Secret string        `envconfig:"SECRET_KEY" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"15m"`
}

type RedisConfig struct {
	URL string `envconfig:"URL"`
}

type CacheConfig struct {
	TTL time.Duration `envconfig:"TTL" default:"5m"`
}

type RateLimitConfig struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type AppConfig struct {
	Env       string          `envconfig:"APP_ENV" default:"development"`
	Host      string          `envconfig:"APP_HOST" default:"localhost"`
	Port      int             `envconfig:"APP_PORT" default:"3000"`
	DB        DBConfig        `envconfig:"DATABASE"`
	Jwt       JwtConfig       `envconfig:"JWT"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	Cache     CacheConfig     `envconfig:"CACHE"`
	RateLimit RateLimitConfig `envconfig:"RATE_LIMIT"`
}

// Load reads configuration from the environment, optionally seeded from a
// .env file. A missing .env file is not an error.
func Load(logger *slog.Logger, envFilePath ...string) (*AppConfig, error) {
	var err error
	if len(envFilePath) > 0 && envFilePath[0] != "" {
		err = godotenv.Load(envFilePath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		logger.Warn("No .env file found, using system environment variables")
	} else {
		logger.Info("Environment variables loaded from .env file")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	logger.Info("App config loaded",
		"env", cfg.Env,
		"jwt_expiry", cfg.Jwt.Expiry,
		"cache_ttl", cfg.Cache.TTL,
		"rate_limit_max_requests", cfg.RateLimit.MaxRequests,
		"rate_limit_window", cfg.RateLimit.Window,
	)
	return &cfg, nil
}
