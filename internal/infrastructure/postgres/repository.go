package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

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
		return nil, r.handlePostgreSQLError(err, "list short links")
	}

	slog.Debug("Short links loaded", "count", len(links))
	return links, nil
}

// handlePostgreSQLError converts PostgreSQL-specific errors into descriptive errors
func (r *ShortLinkRepository) handlePostgreSQLError(err error, operation string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		slog.Error("PostgreSQL error",
			"operation", operation,
			"code", pqErr.Code,
			"message", pqErr.Message,
			"detail", pqErr.Detail,
		)

		switch pqErr.Code {
		case "42P01": // undefined_table
			return fmt.Errorf("%s: schema not migrated: %w", operation, err)
		case "08000", "08003", "08006": // connection errors
			return fmt.Errorf("%s: database connection error: %w", operation, err)
		case "57014": // query_canceled
			return fmt.Errorf("%s: query canceled: %w", operation, err)
		default:
			return fmt.Errorf("%s: database error [%s]: %w", operation, pqErr.Code, err)
		}
	}

	return fmt.Errorf("%s: %w", operation, err)
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
