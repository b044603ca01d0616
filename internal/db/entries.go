package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const maxListLimit = 100

// SaveEntry stores an entry, assigning its ID
func (db *DB) SaveEntry(ctx context.Context, entry *Entry) error {
	query := `
		INSERT INTO entries (id, user_id, text, source, result, categories, repeat_previous)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	result, err := json.Marshal(entry.Result)
	if err != nil {
		return fmt.Errorf("failed to encode extraction result: %w", err)
	}
	if entry.Categories == nil {
		entry.Categories = entry.Result.Categories()
	}
	if entry.Source == "" {
		entry.Source = SourceRant
	}

	entry.ID = uuid.NewString()
	err = db.QueryRowContext(ctx, query,
		entry.ID, entry.UserID, entry.Text, entry.Source, result,
		pq.Array(entry.Categories), entry.RepeatPrevious,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return nil
}

const entryColumns = `id, user_id, text, source, result, categories, repeat_previous, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*Entry, error) {
	entry := &Entry{}
	var result []byte
	err := row.Scan(
		&entry.ID, &entry.UserID, &entry.Text, &entry.Source, &result,
		pq.Array(&entry.Categories), &entry.RepeatPrevious, &entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(result, &entry.Result); err != nil {
		return nil, fmt.Errorf("failed to decode extraction result for entry %s: %w", entry.ID, err)
	}
	return entry, nil
}

// GetEntry retrieves one of the user's entries
func (db *DB) GetEntry(ctx context.Context, userID, id string) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE id = $1 AND user_id = $2`

	entry, err := scanEntry(db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

// GetLatestEntry returns the user's most recent entry
func (db *DB) GetLatestEntry(ctx context.Context, userID string) (*Entry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	entry, err := scanEntry(db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest entry: %w", err)
	}
	return entry, nil
}

// ListEntries returns the user's entries, newest first
func (db *DB) ListEntries(ctx context.Context, userID string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	query := `
		SELECT ` + entryColumns + `
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, *entry)
	}
	return entries, rows.Err()
}

// DeleteEntry removes one of the user's entries
func (db *DB) DeleteEntry(ctx context.Context, userID, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetSymptomCounts counts symptoms by category and severity in entries
// created at or after since
func (db *DB) GetSymptomCounts(ctx context.Context, userID string, since time.Time) ([]SymptomCount, error) {
	query := `
		SELECT s->>'category', COALESCE(s->>'severity', ''), COUNT(*)
		FROM entries e, jsonb_array_elements(e.result->'symptoms') AS s
		WHERE e.user_id = $1 AND e.created_at >= $2
		GROUP BY 1, 2
		ORDER BY 3 DESC, 1, 2
	`

	rows, err := db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count symptoms: %w", err)
	}
	defer rows.Close()

	counts := []SymptomCount{}
	for rows.Next() {
		var c SymptomCount
		if err := rows.Scan(&c.Category, &c.Severity, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan symptom count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
