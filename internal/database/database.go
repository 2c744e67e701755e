package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vanskyhawk/kanban/internal/config"
	"github.com/vanskyhawk/kanban/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the configured store. The default is an embedded SQLite
// file in WAL mode; DB_DRIVER=postgres switches to a server deployment.
func Connect(cfg *config.Config) error {
	var err error
	gormCfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	switch cfg.DBDriver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.PostgresDSN()), gormCfg)
	default:
		dsn := cfg.DBPath + "?_journal_mode=WAL&_busy_timeout=5000"
		DB, err = gorm.Open(sqlite.Open(dsn), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.DBDriver == "postgres" {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
	} else {
		// SQLite serializes writers; a single connection avoids lock errors.
		sqlDB.SetMaxOpenConns(1)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	slog.Info("database connected", "driver", cfg.DBDriver)
	return nil
}

// Migrate runs AutoMigrate for all models.
func Migrate() error {
	return DB.AutoMigrate(
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
		&models.SystemLog{},
	)
}

func Ping() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
