package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
)

// DefaultHistoryLimit caps ListByUser when no limit is given.
const DefaultHistoryLimit = 50

// HistoryRepository handles PostgreSQL operations for generated recipe history
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create inserts a history entry and fills in its ID and creation time.
func (r *HistoryRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	recipeJSON, err := json.Marshal(entry.Recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal recipe: %w", err)
	}

	query := `
		INSERT INTO recipe_history (id, firebase_uid, preferences, recipe)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err = r.db.QueryRowContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Preferences,
		recipeJSON,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create history entry: %w", err)
	}
	return nil
}

// ListByUser returns a user's most recent entries, newest first.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}

	query := `
		SELECT id, firebase_uid, preferences, recipe, created_at
		FROM recipe_history
		WHERE firebase_uid = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	entries := []domain.HistoryEntry{}
	for rows.Next() {
		var e domain.HistoryEntry
		var recipeJSON []byte
		if err := rows.Scan(&e.ID, &e.UserID, &e.Preferences, &recipeJSON, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		if err := json.Unmarshal(recipeJSON, &e.Recipe); err != nil {
			return nil, fmt.Errorf("failed to unmarshal recipe: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}
