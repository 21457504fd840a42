package application

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/infrastructure/cache"
	"github.com/sp3dr4/xlu/internal/infrastructure/memory"
	"github.com/sp3dr4/xlu/internal/pkg/metrics"
)

type discardLogger struct{}

func (discardLogger) Warn(string, ...any) {}
func (discardLogger) Info(string, ...any) {}

// countingRegistry records business counters on top of the no-op registry
type countingRegistry struct {
	metrics.NoOpRegistry
	redirects int
	notFound  int
}

func (c *countingRegistry) IncRedirects() { c.redirects++ }
func (c *countingRegistry) IncNotFound()  { c.notFound++ }

type failingRepository struct {
	err error
}

func (f failingRepository) GetShortLinks(context.Context) ([]domain.ShortLinkItem, error) {
	return nil, f.err
}

func (f failingRepository) GetByShortCode(context.Context, string) (*domain.ShortLinkItem, error) {
	return nil, f.err
}

func newTestService(t *testing.T) (*ShortLinkService, *countingRegistry) {
	t.Helper()

	store, err := memory.NewShortLinkRepository([]domain.ShortLinkItem{
		{ShortCode: "gh", URL: "https://github.com"},
		{ShortCode: "go", URL: "https://go.dev"},
	})
	require.NoError(t, err)

	repo, err := cache.NewCachedShortLinkRepository(discardLogger{}, store)
	require.NoError(t, err)

	registry := &countingRegistry{}
	return NewShortLinkService(repo, registry), registry
}

func TestShortLinkService_ListShortLinks(t *testing.T) {
	service, _ := newTestService(t)

	links, err := service.ListShortLinks(context.Background())
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "gh", links[0].ShortCode)
	assert.Equal(t, "go", links[1].ShortCode)
}

func TestShortLinkService_Resolve(t *testing.T) {
	service, registry := newTestService(t)
	ctx := context.Background()

	item, err := service.Resolve(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "https://go.dev", item.URL)

	_, err = service.Resolve(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrShortLinkNotFound)

	assert.Equal(t, 1, registry.redirects)
	assert.Equal(t, 1, registry.notFound)
}

func TestShortLinkService_Resolve_InvalidCodes(t *testing.T) {
	service, registry := newTestService(t)

	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"too long", strings.Repeat("a", 65)},
		{"non ascii", "héllo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Resolve(context.Background(), tt.code)
			assert.ErrorIs(t, err, domain.ErrInvalidShortCode)

			var validationErrors validator.ValidationErrors
			assert.ErrorAs(t, err, &validationErrors)
		})
	}

	assert.Zero(t, registry.redirects)
	assert.Zero(t, registry.notFound)
}

func TestShortLinkService_RepositoryError(t *testing.T) {
	repoErr := errors.New("database unavailable")
	service := NewShortLinkService(failingRepository{err: repoErr}, nil)

	_, err := service.Resolve(context.Background(), "go")
	assert.ErrorIs(t, err, repoErr)

	_, err = service.ListShortLinks(context.Background())
	assert.ErrorIs(t, err, repoErr)
}
