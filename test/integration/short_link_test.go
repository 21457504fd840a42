package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/xlu/internal/application"
	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/infrastructure/cache"
	postgresRepo "github.com/sp3dr4/xlu/internal/infrastructure/postgres"
	redisRepo "github.com/sp3dr4/xlu/internal/infrastructure/redis"
)

func TestPostgresStore_CachedLookup_Integration(t *testing.T) {
	db := SetupPostgres(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO short_links (short_code, url) VALUES ($1, $2), ($3, $4)`,
		"abc", "https://example.com/abc",
		"def", "https://example.com/def",
	)
	require.NoError(t, err)

	store := postgresRepo.NewShortLinkRepository(db)
	require.NoError(t, store.HealthCheck(ctx))

	repo, err := cache.NewCachedShortLinkRepository(testLogger(), store)
	require.NoError(t, err)

	links, err := repo.GetShortLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.ShortLinkItem{
		{ShortCode: "abc", URL: "https://example.com/abc"},
		{ShortCode: "def", URL: "https://example.com/def"},
	}, links)

	// Rows added after population stay invisible until the cache empties
	_, err = db.Exec(`INSERT INTO short_links (short_code, url) VALUES ($1, $2)`, "ghi", "https://example.com/ghi")
	require.NoError(t, err)

	item, err := repo.GetByShortCode(ctx, "ghi")
	require.NoError(t, err)
	assert.Nil(t, item)

	item, err = repo.GetByShortCode(ctx, "abc")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "https://example.com/abc", item.URL)
}

func TestPostgresStore_EmptyTable_RepopulatesEachRead_Integration(t *testing.T) {
	db := SetupPostgres(t)
	ctx := context.Background()

	repo, err := cache.NewCachedShortLinkRepository(testLogger(), postgresRepo.NewShortLinkRepository(db))
	require.NoError(t, err)

	links, err := repo.GetShortLinks(ctx)
	require.NoError(t, err)
	assert.Empty(t, links)

	_, err = db.Exec(`INSERT INTO short_links (short_code, url) VALUES ($1, $2)`, "late", "https://example.com/late")
	require.NoError(t, err)

	item, err := repo.GetByShortCode(ctx, "late")
	require.NoError(t, err)
	require.NotNil(t, item)
	assert.Equal(t, "https://example.com/late", item.URL)
}

func TestRedisStore_ServiceResolve_Integration(t *testing.T) {
	client := SetupRedis(t)
	ctx := context.Background()

	require.NoError(t, client.HSet(ctx, redisKey,
		"zeta", "https://example.com/zeta",
		"alpha", "https://example.com/alpha",
	).Err())

	store := redisRepo.NewShortLinkRepository(client, redisKey, testLogger())
	require.NoError(t, store.HealthCheck(ctx))

	repo, err := cache.NewCachedShortLinkRepository(testLogger(), store)
	require.NoError(t, err)
	service := application.NewShortLinkService(repo, nil)

	links, err := service.ListShortLinks(ctx)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "alpha", links[0].ShortCode)
	assert.Equal(t, "zeta", links[1].ShortCode)

	item, err := service.Resolve(ctx, "zeta")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/zeta", item.URL)

	_, err = service.Resolve(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrShortLinkNotFound)
}
