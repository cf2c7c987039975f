package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/config"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/database/migrations"
	"github.com/vladimiradmaev/pet-diabetes-tracker/internal/logger"
)

// EventRecord is the row shape of the eventos table.
type EventRecord struct {
	ID            string    `gorm:"primaryKey;size:24"`
	Fecha         string    `gorm:"size:10;not null"`
	Hora          string    `gorm:"size:5;not null"`
	Tipo          string    `gorm:"size:16;not null"`
	Valor         string    `gorm:"not null;default:''"`
	Notas         string    `gorm:"not null;default:''"`
	MarcaTiempo   string    `gorm:"size:32;not null;index"`
	FechaCreacion time.Time `gorm:"autoCreateTime"`
}

func (EventRecord) TableName() string {
	return "eventos"
}

// Open connects with the configured driver and runs pending migrations.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := prepare(db, cfg); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "driver", cfg.Driver)
	return db, nil
}

// migrate is replaced in tests.
var migrate = func(db *gorm.DB) error {
	if err := migrations.LoadSQLMigrations(); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := migrations.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func prepare(db *gorm.DB, cfg config.DBConfig) error {
	if cfg.Driver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("failed to get sql handle: %w", err)
		}
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	}
	return migrate(db)
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		return postgres.Open(dsn), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Lazy is the shared store connection: the first caller opens it and later
// callers reuse it. A failed attempt is not cached, so the next call retries.
type Lazy struct {
	mu   sync.Mutex
	db   *gorm.DB
	open func() (*gorm.DB, error)
}

// NewLazy defers Open(cfg) until the first DB call.
func NewLazy(cfg config.DBConfig) *Lazy {
	return &Lazy{open: func() (*gorm.DB, error) { return Open(cfg) }}
}

// NewLazyFunc defers open until the first DB call.
func NewLazyFunc(open func() (*gorm.DB, error)) *Lazy {
	return &Lazy{open: open}
}

// DB returns the shared connection, establishing it if needed.
func (l *Lazy) DB(ctx context.Context) (*gorm.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		logger.Debug("Using existing database connection")
		return l.db.WithContext(ctx), nil
	}

	db, err := l.open()
	if err != nil {
		logger.Error("Error connecting to database", "error", err)
		return nil, err
	}
	l.db = db
	return db.WithContext(ctx), nil
}

// Close releases the connection if one was opened.
func (l *Lazy) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	l.db = nil
	return sqlDB.Close()
}
