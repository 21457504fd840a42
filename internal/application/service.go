package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"github.com/sp3dr4/xlu/internal/domain"
	"github.com/sp3dr4/xlu/internal/pkg/logging"
	"github.com/sp3dr4/xlu/internal/pkg/metrics"
)

const shortCodeRules = "required,max=64,printascii"

type ShortLinkService struct {
	repo     domain.ShortLinkRepository
	metrics  metrics.Registry
	validate *validator.Validate
}

func NewShortLinkService(repo domain.ShortLinkRepository, metricsRegistry metrics.Registry) *ShortLinkService {
	if metricsRegistry == nil {
		metricsRegistry = metrics.NewNoOpRegistry()
	}
	return &ShortLinkService{
		repo:     repo,
		metrics:  metricsRegistry,
		validate: validator.New(),
	}
}

// ListShortLinks returns every known short link in source order.
func (s *ShortLinkService) ListShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	return s.repo.GetShortLinks(ctx)
}

// Resolve looks up the target of shortCode. It returns
// domain.ErrInvalidShortCode for malformed codes and
// domain.ErrShortLinkNotFound when no link matches.
func (s *ShortLinkService) Resolve(ctx context.Context, shortCode string) (*domain.ShortLinkItem, error) {
	if err := s.validate.Var(shortCode, shortCodeRules); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidShortCode, err)
	}

	item, err := s.repo.GetByShortCode(ctx, shortCode)
	if err != nil {
		return nil, err
	}
	if item == nil {
		s.metrics.IncNotFound()
		logging.FromContext(ctx).Debug("Short code not found", slog.String("short_code", shortCode))
		return nil, domain.ErrShortLinkNotFound
	}

	s.metrics.IncRedirects()
	return item, nil
}
