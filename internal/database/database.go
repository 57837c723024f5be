package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/killallgit/podradio/internal/logging"
	"github.com/killallgit/podradio/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

// Initialize creates a new database connection with the provided configuration
func Initialize(dbPath string, verbose bool) (*DB, error) {
	// Ensure the database directory exists
	dir := filepath.Dir(dbPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// Configure GORM logger
	logLevel := logger.Error
	if verbose {
		logLevel = logger.Info
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}

	// Open database connection
	db, err := gorm.Open(sqlite.Open(dbPath), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL database to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// every sqlite connection to an in-memory database sees its own schema
	if dbPath == "" || dbPath == ":memory:" {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetConnMaxLifetime(0)
	}

	return &DB{DB: db}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is working
func (db *DB) HealthCheck() error {
	if db == nil || db.DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying SQL database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}

// AutoMigrate runs GORM auto migration for the provided models
func (db *DB) AutoMigrate(dst ...any) error {
	if err := db.DB.AutoMigrate(dst...); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	logging.Debug("database migrated", "models", len(dst))
	return nil
}

// InitializeWithMigrations opens the database and migrates the registry tables
func InitializeWithMigrations(dbPath string, verbose bool) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path is not configured")
	}

	db, err := Initialize(dbPath, verbose)
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// DropAll removes every registry table
func (db *DB) DropAll() error {
	all := models.AllModels()
	if err := db.Migrator().DropTable(all...); err != nil {
		return fmt.Errorf("drop tables failed: %w", err)
	}
	logging.Debug("database tables dropped", "models", len(all))
	return nil
}

// TableStatus reports whether a registry table exists and how many rows it holds
type TableStatus struct {
	Table  string
	Exists bool
	Rows   int64
}

// Status inspects every registry table
func (db *DB) Status() ([]TableStatus, error) {
	var out []TableStatus
	for _, m := range models.AllModels() {
		stmt := &gorm.Statement{DB: db.DB}
		if err := stmt.Parse(m); err != nil {
			return nil, fmt.Errorf("failed to parse model: %w", err)
		}

		status := TableStatus{Table: stmt.Schema.Table, Exists: db.Migrator().HasTable(m)}
		if status.Exists {
			if err := db.Model(m).Count(&status.Rows).Error; err != nil {
				return nil, fmt.Errorf("failed to count %s: %w", status.Table, err)
			}
		}
		out = append(out, status)
	}
	return out, nil
}
