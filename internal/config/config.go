package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Roster backends accepted in ROSTER_BACKEND.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMySQL    = "mysql"
)

// defaultPorts is used when DB_PORT is unset.
var defaultPorts = map[string]string{
	BackendPostgres: "5432",
	BackendMySQL:    "3306",
}

type Config struct {
	Port           string
	AllowedOrigins []string
	Backend        string
	SQLitePath     string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	RateLimit      int // requests per minute per client, 0 disables
	LogDir         string
}

// Load reads the configuration from the environment. Variables are first
// loaded from files, or from ./.env when no file is named; values already set
// in the environment win.
func Load(files ...string) (*Config, error) {
	if len(files) > 0 {
		if err := godotenv.Load(files...); err != nil {
			return nil, fmt.Errorf("load env files: %w", err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{
		Port:           getenv("APP_PORT", "8080"),
		AllowedOrigins: splitList(getenv("CORS_ORIGINS", "http://localhost:3000")),
		Backend:        strings.ToLower(getenv("ROSTER_BACKEND", BackendMemory)),
		SQLitePath:     getenv("SQLITE_PATH", ":memory:"),
		DBHost:         getenv("DB_HOST", "localhost"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		LogDir:         os.Getenv("LOG_DIR"),
	}

	switch cfg.Backend {
	case BackendMemory, BackendSQLite, BackendPostgres, BackendMySQL:
	default:
		return nil, fmt.Errorf("unknown ROSTER_BACKEND %q", cfg.Backend)
	}
	if cfg.DBPort == "" {
		cfg.DBPort = defaultPorts[cfg.Backend]
	}

	rateLimit, err := strconv.Atoi(getenv("RATE_LIMIT_PER_MINUTE", "300"))
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT_PER_MINUTE %q", os.Getenv("RATE_LIMIT_PER_MINUTE"))
	}
	cfg.RateLimit = rateLimit

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
