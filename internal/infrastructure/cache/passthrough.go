package cache

import (
	"context"

	"github.com/sp3dr4/xlu/internal/domain"
)

// PassThroughRepository serves every read straight from the source.
// Used when caching is disabled
type PassThroughRepository struct {
	repo domain.ShortLinkSource
}

func NewPassThroughRepository(repo domain.ShortLinkSource) (*PassThroughRepository, error) {
	if isNil(repo) {
		return nil, domain.NewInvalidArgumentError("repo")
	}
	return &PassThroughRepository{repo: repo}, nil
}

func (r *PassThroughRepository) GetShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	items, err := r.repo.GetShortLinks(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		// Keep the non-nil contract of the cached repository
		return []domain.ShortLinkItem{}, nil
	}
	return items, nil
}

func (r *PassThroughRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.ShortLinkItem, error) {
	if shortCode == "" {
		return nil, nil
	}

	items, err := r.repo.GetShortLinks(ctx)
	if err != nil {
		return nil, err
	}
	return newLinkSet(items).find(shortCode), nil
}
