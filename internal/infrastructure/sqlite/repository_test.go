package sqlite

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/infrastructure/migrations"
)

func setupDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	// Every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)

	require.NoError(t, migrations.Up(db.DB, migrations.DriverSQLite, "../../../migrations/sqlite"))
	return db
}

func TestSQLiteRepository_GetShortLinks(t *testing.T) {
	db := setupDB(t)
	repo := NewShortLinkRepository(db)
	t.Cleanup(func() { _ = repo.Close() })
	ctx := context.Background()

	empty, err := repo.GetShortLinks(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	_, err = db.Exec(`INSERT INTO short_links (short_code, url) VALUES (?, ?), (?, ?)`,
		"def", "https://example.com/def",
		"abc", "https://example.com/abc",
	)
	require.NoError(t, err)

	links, err := repo.GetShortLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShortLinkItem{
		{ShortCode: "def", URL: "https://example.com/def"},
		{ShortCode: "abc", URL: "https://example.com/abc"},
	}, links)
}

func TestSQLiteRepository_HealthCheck(t *testing.T) {
	db := setupDB(t)
	repo := NewShortLinkRepository(db)

	assert.NoError(t, repo.HealthCheck(context.Background()))
	require.NoError(t, repo.Close())
	assert.Error(t, repo.HealthCheck(context.Background()))

	var nilRepo ShortLinkRepository
	assert.Error(t, nilRepo.HealthCheck(context.Background()))
	assert.NoError(t, nilRepo.Close())
}

func TestSQLiteRepository_QueryError(t *testing.T) {
	db, err := sqlx.Connect("sqlite3", ":memory:")
	require.NoError(t, err)
	repo := NewShortLinkRepository(db)
	t.Cleanup(func() { _ = repo.Close() })

	// No migrations, so the table is missing
	_, err = repo.GetShortLinks(context.Background())
	assert.ErrorContains(t, err, "failed to list short links")
}
