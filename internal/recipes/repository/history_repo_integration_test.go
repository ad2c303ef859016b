package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeecraft/coffeecraft-backend/internal/recipes/domain"
	"github.com/coffeecraft/coffeecraft-backend/internal/storage/postgres"
)

// setupTestPostgres applies the schema and returns a database/sql handle.
// Skips the test unless TEST_DB_DSN is set.
func setupTestPostgres(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set, skipping PostgreSQL integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.Connect(ctx, dsn)
	require.NoError(t, err)
	defer conn.Close(ctx)
	require.NoError(t, postgres.EnsureSchema(ctx, conn))

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.PingContext(ctx))
	t.Cleanup(func() { _ = db.Close() })

	return db
}

func TestHistoryRepository_Postgres(t *testing.T) {
	db := setupTestPostgres(t)
	repo := NewHistoryRepository(db)
	ctx := context.Background()

	uid := "it-" + time.Now().UTC().Format("20060102150405.000000000")
	t.Cleanup(func() {
		_, _ = db.ExecContext(context.Background(), `DELETE FROM recipe_history WHERE firebase_uid = $1`, uid)
	})

	first := &domain.HistoryEntry{
		UserID:      uid,
		Preferences: "strong",
		Recipe:      domain.Recipe{ID: "custom-1", Name: "Custom Classic Espresso", Category: domain.CategoryEspresso},
	}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotEmpty(t, first.ID)
	assert.False(t, first.CreatedAt.IsZero())

	second := &domain.HistoryEntry{
		UserID:      uid,
		Preferences: "sweet",
		Recipe:      domain.Recipe{ID: "custom-2", Name: "Custom Pour Over", Category: domain.CategoryBrewing},
	}
	require.NoError(t, repo.Create(ctx, second))

	entries, err := repo.ListByUser(ctx, uid, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "custom-2", entries[0].Recipe.ID)
	assert.Equal(t, "custom-1", entries[1].Recipe.ID)

	entries, err = repo.ListByUser(ctx, uid, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
