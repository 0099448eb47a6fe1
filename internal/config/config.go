package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"

	defaultPort     = "3000"
	defaultBaseURL  = "/api"
	defaultTokenTTL = 168 * time.Hour
	defaultSQLite   = "taskmanager.db"
)

// Default allowed origins for development
var defaultOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

type Config struct {
	Port           string
	BaseURL        string
	DBDriver       string
	DatabaseURL    string
	JWTSecret      string
	TokenTTL       time.Duration
	CookieDomain   string
	AllowedOrigins []string
}

// Load reads the configuration from the environment. godotenv.Load should
// already have run so values from .env are visible here.
func Load() (*Config, error) {
	cfg := &Config{
		Port:         getEnv("PORT", defaultPort),
		BaseURL:      strings.TrimRight(getEnv("BASE_URL", defaultBaseURL), "/"),
		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		TokenTTL:     defaultTokenTTL,
		CookieDomain: os.Getenv("COOKIE_DOMAIN"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	switch cfg.DBDriver {
	case DriverPostgres, DriverMySQL:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
		}
	case DriverSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLite
		}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}

	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid TOKEN_TTL %q: %w", raw, err)
		}
		if ttl <= 0 {
			return nil, fmt.Errorf("TOKEN_TTL must be positive, got %s", ttl)
		}
		cfg.TokenTTL = ttl
	}

	cfg.AllowedOrigins = allowedOrigins()

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func allowedOrigins() []string {
	origins := make([]string, len(defaultOrigins))
	copy(origins, defaultOrigins)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}

	return origins
}
