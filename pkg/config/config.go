package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// DATABASE_URL enables the Postgres reservation mirror; leave it empty to
	// run sheet-only. DIRECT_URL is used for migrations when the runtime URL
	// goes through a pooler (PgBouncer et al).
	DatabaseURL string
	DirectURL   string

	Sheet SheetConfig
	Auth  AuthConfig

	// AllowedOrigins is the CORS allowlist for the public reservation
	// endpoints, called from the school frontend on a separate domain.
	AllowedOrigins []string
}

type SheetConfig struct {
	// Path of the workbook that acts as the record of truth.
	Path string
	// Name of the sheet holding the reservation grid.
	Name string
}

type AuthConfig struct {
	// Secret verifies the HS256 identity tokens issued by the school portal.
	Secret string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		Sheet: SheetConfig{
			Path: os.Getenv("SHEET_PATH"),
			Name: env("SHEET_NAME", "특별실예약"),
		},
		Auth: AuthConfig{
			Secret: os.Getenv("AUTH_SECRET"),
		},
		AllowedOrigins: envList("ALLOWED_ORIGINS", "http://localhost:5173"),
	}
}

// Validate runs once at process start. A service that boots without a
// workbook or an auth secret can only fail later on a live request, so fail
// here instead.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Sheet.Path) == "" {
		return fmt.Errorf("SHEET_PATH is required")
	}
	if strings.TrimSpace(c.Sheet.Name) == "" {
		return fmt.Errorf("SHEET_NAME must not be empty")
	}
	if c.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET is required")
	}
	return nil
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
