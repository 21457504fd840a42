package memory

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sp3dr4/xlu/internal/domain"
)

func TestMemoryRepository_GetShortLinks(t *testing.T) {
	links := []domain.ShortLinkItem{
		{ShortCode: "gh", URL: "https://github.com"},
		{ShortCode: "go", URL: "https://go.dev"},
	}

	repo, err := NewShortLinkRepository(links)
	require.NoError(t, err)

	got, err := repo.GetShortLinks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, links, got)

	// Mutating the result must not leak into the repository
	got[0].URL = "https://example.com"
	again, err := repo.GetShortLinks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://github.com", again[0].URL)
}

func TestMemoryRepository_Empty(t *testing.T) {
	repo, err := NewShortLinkRepository(nil)
	require.NoError(t, err)

	got, err := repo.GetShortLinks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.NoError(t, repo.HealthCheck(context.Background()))
	assert.NoError(t, repo.Close())
}

func TestMemoryRepository_InvalidLinks(t *testing.T) {
	tests := []struct {
		name  string
		links []domain.ShortLinkItem
	}{
		{"missing short code", []domain.ShortLinkItem{{URL: "https://go.dev"}}},
		{"missing url", []domain.ShortLinkItem{{ShortCode: "go"}}},
		{"malformed url", []domain.ShortLinkItem{{ShortCode: "go", URL: "not-a-url"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, err := NewShortLinkRepository(tt.links)
			assert.Nil(t, repo)

			var validationErrors validator.ValidationErrors
			assert.ErrorAs(t, err, &validationErrors)
		})
	}
}

func TestMemoryRepository_ReservedCodes(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		reserved []string
	}{
		{"health route", "health", nil},
		{"links route", "links", nil},
		{"swagger route", "swagger", nil},
		{"custom metrics path", "stats", []string{"stats"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := []domain.ShortLinkItem{
				{ShortCode: "go", URL: "https://go.dev"},
				{ShortCode: tt.code, URL: "https://example.com"},
			}

			repo, err := NewShortLinkRepository(links, tt.reserved...)
			assert.Nil(t, repo)
			assert.ErrorIs(t, err, domain.ErrReservedShortCode)
			assert.ErrorContains(t, err, "position 1")
		})
	}

	repo, err := NewShortLinkRepository([]domain.ShortLinkItem{{ShortCode: "stats", URL: "https://example.com"}})
	require.NoError(t, err)
	assert.NotNil(t, repo)
}
