package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Database
	DBDriver   string // "sqlite" (default) or "postgres"
	DBPath     string // sqlite file path
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Session
	SessionSecret string
	SessionCookie string
	SessionExpiry time.Duration

	// Admin approval
	AdminEmail          string
	AdminApprovalSecret string

	// Email (Resend)
	ResendAPIKey string
	FromEmail    string
	AppURL       string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string
	AITimeout    time.Duration

	// Token TTLs
	VerificationTokenExpiry  time.Duration
	PasswordResetTokenExpiry time.Duration
	MagicLinkTokenExpiry     time.Duration

	// Server
	Port        string
	CORSOrigins string
	Environment string
}

func Load() *Config {
	return &Config{
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		DBPath:     getEnv("DB_PATH", "kanban.db"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "kanban"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionCookie: getEnv("SESSION_COOKIE", "kanban_session"),
		SessionExpiry: parseDuration(getEnv("SESSION_EXPIRY", "24h"), 24*time.Hour),

		AdminEmail:          getEnv("ADMIN_EMAIL", ""),
		AdminApprovalSecret: getEnv("ADMIN_APPROVAL_SECRET", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		FromEmail:    getEnv("FROM_EMAIL", "noreply@example.com"),
		AppURL:       getEnv("APP_URL", "http://localhost:8080"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:    parseDuration(getEnv("AI_TIMEOUT", "60s"), 60*time.Second),

		VerificationTokenExpiry:  parseDuration(getEnv("VERIFICATION_TOKEN_EXPIRY", "24h"), 24*time.Hour),
		PasswordResetTokenExpiry: parseDuration(getEnv("PASSWORD_RESET_TOKEN_EXPIRY", "1h"), time.Hour),
		MagicLinkTokenExpiry:     parseDuration(getEnv("MAGIC_LINK_TOKEN_EXPIRY", "15m"), 15*time.Minute),

		Port:        getEnv("PORT", "8080"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
		Environment: getEnv("APP_ENV", "development"),
	}
}

// Validate enforces the startup invariants the server cannot run without.
func (c *Config) Validate() error {
	if len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters")
	}
	return nil
}

// ApprovalSecret is the key used to sign admin approve/reject links. It
// falls back to the session secret when no dedicated secret is configured.
func (c *Config) ApprovalSecret() string {
	if c.AdminApprovalSecret != "" {
		return c.AdminApprovalSecret
	}
	return c.SessionSecret
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) PostgresDSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
