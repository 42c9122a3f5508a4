// Package sqlite provides a core.Storage backed by a single SQLite table
// through GORM and the pure-Go glebarez driver.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/aretw0/jot/pkg/core"
)

// entry is one key/value row.
type entry struct {
	Key       string `gorm:"column:key;primaryKey"`
	Value     string `gorm:"column:value;not null"`
	UpdatedAt time.Time
}

// TableName implements gorm's tabler.
func (entry) TableName() string {
	return "kv_entries"
}

// Config holds the configuration for the SQLite storage.
type Config struct {
	// Path of the database file. Ignored when InMemory is set.
	Path     string
	InMemory bool
	// Debug logs every SQL statement.
	Debug  bool
	Logger *slog.Logger
}

// Storage implements core.Storage on top of a kv_entries table.
type Storage struct {
	db     *gorm.DB
	config Config
}

// Open creates or opens the database and migrates the schema.
func Open(cfg Config) (*Storage, error) {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	dsn := cfg.Path
	if cfg.InMemory {
		dsn = ":memory:"
	} else {
		if dsn == "" {
			return nil, errors.New("path is required for persistent database")
		}
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	logMode := logger.Silent
	if cfg.Debug {
		logMode = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access database handle: %w", err)
	}
	// SQLite has a single writer; an in-memory database also lives in one connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := db.AutoMigrate(&entry{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	cfg.Logger.Debug("sqlite storage opened", "path", dsn)
	return &Storage{db: db, config: cfg}, nil
}

// Close closes the database connection.
func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get implements core.Storage.
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	return get(s.db.WithContext(ctx), key)
}

// Set implements core.Storage.
func (s *Storage) Set(ctx context.Context, key string, value string) error {
	return put(s.db.WithContext(ctx), key, value)
}

// Update implements core.Updater inside a single transaction.
func (s *Storage) Update(ctx context.Context, key string, fn core.UpdateFunc) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		old, ok, err := get(tx, key)
		if err != nil {
			return err
		}
		next, err := fn(old, ok)
		if err != nil {
			return err
		}
		return put(tx, key, next)
	})
}

// ComponentType implements introspection.Component.
func (s *Storage) ComponentType() string {
	return "sqlite"
}

func get(db *gorm.DB, key string) (string, bool, error) {
	var e entry
	err := db.Where("`key` = ?", key).Take(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return e.Value, true, nil
}

func put(db *gorm.DB, key, value string) error {
	e := entry{Key: key, Value: value, UpdatedAt: time.Now()}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

var (
	_ core.Storage = (*Storage)(nil)
	_ core.Updater = (*Storage)(nil)
)
