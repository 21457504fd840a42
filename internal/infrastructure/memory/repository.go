package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"

	"github.com/sp3dr4/xlu/internal/domain"
)

// ShortLinkRepository serves a fixed set of short links, typically the
// links section of the configuration file. The set never changes after
// construction, so reads need no locking.
type ShortLinkRepository struct {
	links []domain.ShortLinkItem
}

// NewShortLinkRepository validates links and rejects codes that collide with
// the router's own paths. reserved adds codes on top of the built-in ones,
// such as a custom metrics path.
func NewShortLinkRepository(links []domain.ShortLinkItem, reserved ...string) (*ShortLinkRepository, error) {
	validate := validator.New()
	for i, link := range links {
		if err := validate.Struct(link); err != nil {
			return nil, fmt.Errorf("invalid short link at position %d: %w", i, err)
		}
		if domain.IsReservedShortCode(link.ShortCode) || slices.Contains(reserved, link.ShortCode) {
			return nil, fmt.Errorf("invalid short link at position %d: %w: %q", i, domain.ErrReservedShortCode, link.ShortCode)
		}
	}

	return &ShortLinkRepository{
		links: slices.Clone(links),
	}, nil
}

func (r *ShortLinkRepository) GetShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	links := make([]domain.ShortLinkItem, len(r.links))
	copy(links, r.links)
	return links, nil
}

func (r *ShortLinkRepository) Close() error {
	return nil
}

func (r *ShortLinkRepository) HealthCheck(ctx context.Context) error {
	return nil
}
