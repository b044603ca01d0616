package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/themobileprof/rantrack-be/internal/symptoms"
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// Config holds database configuration
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN renders the config as a lib/pq connection string
func (cfg Config) DSN() string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode,
	)
}

// New creates a new database connection
func New(cfg Config) (*DB, error) {
	return open(cfg.DSN(), cfg)
}

// NewFromURL connects using a postgres:// URL, applying pool settings from cfg
func NewFromURL(url string, cfg Config) (*DB, error) {
	return open(url, cfg)
}

func open(dsn string, cfg Config) (*DB, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConnections > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConnections)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{sqlDB}, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// User represents a user in the database
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Entry sources
const (
	SourceRant    = "rant"
	SourceCheckin = "checkin"
	SourceLive    = "live"
	SourceRepeat  = "repeat"
)

// Entry is one saved journal entry with its extraction result
type Entry struct {
	ID             string
	UserID         string
	Text           string
	Source         string
	Result         symptoms.ExtractionResult
	Categories     []string
	RepeatPrevious bool
	CreatedAt      time.Time
}

// CustomLemma is one user-defined word -> category mapping
type CustomLemma struct {
	Word      string    `json:"word"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"createdAt"`
}

// SymptomCount is one (category, severity) bucket over a user's entries
type SymptomCount struct {
	Category string
	Severity string
	Count    int
}
