package domain

import "context"

// ShortLinkSource supplies the complete, authoritative set of short links.
type ShortLinkSource interface {
	GetShortLinks(ctx context.Context) ([]ShortLinkItem, error)
}

// ShortLinkStore is a backing source that owns external resources.
type ShortLinkStore interface {
	ShortLinkSource
	Close() error
	HealthCheck(ctx context.Context) error
}

// ShortLinkRepository is the read side served to the application.
// GetByShortCode returns nil, nil when no item matches.
type ShortLinkRepository interface {
	GetShortLinks(ctx context.Context) ([]ShortLinkItem, error)
	GetByShortCode(ctx context.Context, shortCode string) (*ShortLinkItem, error)
}
