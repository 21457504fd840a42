package sqlite

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sp3dr4/xlu/internal/domain"
)

type ShortLinkRepository struct {
	db *sqlx.DB
}

func NewShortLinkRepository(db *sqlx.DB) *ShortLinkRepository {
	return &ShortLinkRepository{db: db}
}

func (r *ShortLinkRepository) GetShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	links := []domain.ShortLinkItem{}
	query := `SELECT short_code, url FROM short_links ORDER BY id`

	if err := r.db.SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("failed to list short links: %w", err)
	}

	return links, nil
}

func (r *ShortLinkRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *ShortLinkRepository) HealthCheck(ctx context.Context) error {
	if r.db == nil {
		return errors.New("database connection is nil")
	}
	return r.db.PingContext(ctx)
}
