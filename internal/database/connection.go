package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"eventbroker/internal/config"
)

// DB wraps the sql connection pool
type DB struct {
	*sql.DB
}

// NewConnection opens a Postgres connection pool and verifies it with a ping.
func NewConnection(cfg config.DatabaseConfig) (*DB, error) {
	var dsn string

	if cfg.URL != "" {
		dsn = cfg.URL
	} else {
		dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// RunMigrations runs all pending database migrations
func (db *DB) RunMigrations() error {
	return NewMigrator(db.DB).RunMigrations()
}

// GetMigrationStatus prints the current migration status
func (db *DB) GetMigrationStatus() error {
	return NewMigrator(db.DB).GetMigrationStatus()
}
