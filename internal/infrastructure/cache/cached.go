// Package cache provides read-through decorators over a short link source.
package cache

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/sp3dr4/xlu/internal/domain"
)

// Messages written when the cache has to go back to its source. The count is
// passed as the numShortLinks attribute.
const (
	PopulatingMessage = "No short links in cache -- populating from repo"
	PopulatedMessage  = "After populating from cache, there are now {numShortLinks} short links"

	populateKey = "populate"
)

// Logger is the subset of *slog.Logger the cache reports through.
type Logger interface {
	Warn(msg string, args ...any)
	Info(msg string, args ...any)
}

// CachedShortLinkRepository keeps the full set of short links in memory and
// loads it from the wrapped source whenever the in-memory set is empty.
// An empty result is not remembered: the next read fetches again.
type CachedShortLinkRepository struct {
	logger Logger
	repo   domain.ShortLinkSource

	mu    sync.RWMutex
	links *linkSet
	group singleflight.Group
}

// NewCachedShortLinkRepository wraps repo without reading from it. Both
// arguments are required; a nil value, including a typed nil pointer, yields
// an *domain.InvalidArgumentError naming the parameter.
func NewCachedShortLinkRepository(logger Logger, repo domain.ShortLinkSource) (*CachedShortLinkRepository, error) {
	if isNil(logger) {
		return nil, domain.NewInvalidArgumentError("logger")
	}
	if isNil(repo) {
		return nil, domain.NewInvalidArgumentError("repo")
	}

	return &CachedShortLinkRepository{
		logger: logger,
		repo:   repo,
	}, nil
}

// GetShortLinks returns every cached item in the order the source produced
// them. The returned slice is never nil and is safe to modify.
func (c *CachedShortLinkRepository) GetShortLinks(ctx context.Context) ([]domain.ShortLinkItem, error) {
	links, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return links.list(), nil
}

// GetByShortCode returns the item for shortCode, or nil when there is none.
// A miss against a populated set does not trigger a reload.
func (c *CachedShortLinkRepository) GetByShortCode(ctx context.Context, shortCode string) (*domain.ShortLinkItem, error) {
	if shortCode == "" {
		return nil, nil
	}

	links, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return links.find(shortCode), nil
}

func (c *CachedShortLinkRepository) load(ctx context.Context) (*linkSet, error) {
	if links := c.current(); !links.empty() {
		return links, nil
	}
	return c.populate(ctx)
}

func (c *CachedShortLinkRepository) current() *linkSet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.links
}

// populate replaces the cached set with a fresh copy from the source.
// Concurrent callers share a single fetch. The fetch runs detached from the
// cancellation of the caller that started it, and each caller stops waiting
// when its own context is done.
func (c *CachedShortLinkRepository) populate(ctx context.Context) (*linkSet, error) {
	ch := c.group.DoChan(populateKey, func() (any, error) {
		if links := c.current(); !links.empty() {
			return links, nil
		}

		c.logger.Warn(PopulatingMessage)

		items, err := c.repo.GetShortLinks(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		links := newLinkSet(items)
		c.mu.Lock()
		c.links = links
		c.mu.Unlock()

		c.logger.Info(PopulatedMessage, "numShortLinks", links.len())
		return links, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*linkSet), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// linkSet is an immutable snapshot of the source contents.
type linkSet struct {
	items []domain.ShortLinkItem
	index map[string]int
}

// newLinkSet keeps the position of the first occurrence of a code and the
// target of its last occurrence.
func newLinkSet(items []domain.ShortLinkItem) *linkSet {
	set := &linkSet{
		items: make([]domain.ShortLinkItem, 0, len(items)),
		index: make(map[string]int, len(items)),
	}
	for _, item := range items {
		if i, ok := set.index[item.ShortCode]; ok {
			set.items[i] = item
			continue
		}
		set.index[item.ShortCode] = len(set.items)
		set.items = append(set.items, item)
	}
	return set
}

func (s *linkSet) empty() bool {
	return s == nil || len(s.items) == 0
}

func (s *linkSet) len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

func (s *linkSet) list() []domain.ShortLinkItem {
	if s == nil {
		return []domain.ShortLinkItem{}
	}
	return slices.Clone(s.items)
}

func (s *linkSet) find(shortCode string) *domain.ShortLinkItem {
	if s == nil {
		return nil
	}
	i, ok := s.index[shortCode]
	if !ok {
		return nil
	}
	item := s.items[i]
	return &item
}

// isNil also catches typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
