package services

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.Column{},
		&models.Card{},
		&models.Comment{},
		&models.Tag{},
		&models.CardTag{},
		&models.Template{},
		&models.EmailVerificationToken{},
		&models.PasswordResetToken{},
		&models.MagicLinkToken{},
	))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		SessionSecret:            strings.Repeat("s", 32),
		SessionCookie:            "kanban_session",
		SessionExpiry:            24 * time.Hour,
		AppURL:                   "http://localhost:8080",
		FromEmail:                "noreply@example.com",
		VerificationTokenExpiry:  24 * time.Hour,
		PasswordResetTokenExpiry: time.Hour,
		MagicLinkTokenExpiry:     15 * time.Minute,
		OpenAIModel:              "gpt-4o-mini",
		AITimeout:                5 * time.Second,
	}
}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()
	return NewAuthService(db, cfg, NewEmailService(cfg)), db
}

// registerApproved runs the full registration path and flips the flags an
// admin normally would, returning a login-ready user.
func registerApproved(t *testing.T, auth *AuthService, db *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := auth.Register(email, "Password1", "Test User")
	require.NoError(t, err)

	require.NoError(t, db.Model(user).Update("email_verified", true).Error)
	approved, err := auth.Approve(user.ID)
	require.NoError(t, err)
	return approved
}
