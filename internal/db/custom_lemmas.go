package db

import (
	"context"
	"fmt"
)

// GetCustomLemmas returns the user's vocabulary as word -> category
func (db *DB) GetCustomLemmas(ctx context.Context, userID string) (map[string]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT word, category FROM custom_lemmas WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get custom lemmas: %w", err)
	}
	defer rows.Close()

	lemmas := make(map[string]string)
	for rows.Next() {
		var word, category string
		if err := rows.Scan(&word, &category); err != nil {
			return nil, fmt.Errorf("failed to scan custom lemma: %w", err)
		}
		lemmas[word] = category
	}
	return lemmas, rows.Err()
}

// ListCustomLemmas returns the user's vocabulary entries ordered by word
func (db *DB) ListCustomLemmas(ctx context.Context, userID string) ([]CustomLemma, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT word, category, created_at
		FROM custom_lemmas
		WHERE user_id = $1
		ORDER BY word
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list custom lemmas: %w", err)
	}
	defer rows.Close()

	lemmas := []CustomLemma{}
	for rows.Next() {
		var l CustomLemma
		if err := rows.Scan(&l.Word, &l.Category, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan custom lemma: %w", err)
		}
		lemmas = append(lemmas, l)
	}
	return lemmas, rows.Err()
}

// UpsertCustomLemma adds a word or repoints it at a new category
func (db *DB) UpsertCustomLemma(ctx context.Context, userID, word, category string) error {
	query := `
		INSERT INTO custom_lemmas (user_id, word, category)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, word) DO UPDATE SET category = EXCLUDED.category
	`

	if _, err := db.ExecContext(ctx, query, userID, word, category); err != nil {
		return fmt.Errorf("failed to save custom lemma: %w", err)
	}
	return nil
}

// DeleteCustomLemma removes a word from the user's vocabulary
func (db *DB) DeleteCustomLemma(ctx context.Context, userID, word string) error {
	res, err := db.ExecContext(ctx,
		`DELETE FROM custom_lemmas WHERE user_id = $1 AND word = $2`, userID, word)
	if err != nil {
		return fmt.Errorf("failed to delete custom lemma: %w", err)
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
