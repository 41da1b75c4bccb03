package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PropertySetCache memoises the property set chosen for each category.
// It is scoped to a single run and is not safe for concurrent use.
type PropertySetCache struct {
	chosen map[string]uuid.UUID
}

// NewPropertySetCache returns an empty cache.
func NewPropertySetCache() *PropertySetCache {
	return &PropertySetCache{chosen: make(map[string]uuid.UUID)}
}

// Lookup returns the property set resolved for category, if any.
func (c *PropertySetCache) Lookup(category string) (uuid.UUID, bool) {
	id, ok := c.chosen[category]
	return id, ok
}

// Store records the property set resolved for category.
func (c *PropertySetCache) Store(category string, id uuid.UUID) {
	c.chosen[category] = id
}

// Len returns the number of resolved categories.
func (c *PropertySetCache) Len() int { return len(c.chosen) }

// ResolvePropertySet returns the property set new crawled properties of cat are created
// in: the one holding the most crawled properties. The answer is cached for the rest of
// the run, even if populations change afterwards.
func (r *Reconciler) ResolvePropertySet(ctx context.Context, cat *metastore.Category) (uuid.UUID, error) {
	if id, ok := r.cache.Lookup(cat.Name); ok {
		return id, nil
	}
	if len(cat.PropertySets) == 0 {
		return uuid.Nil, errs.New(errs.UnknownCategory, "category has no property sets").WithEntity("category", cat.Name)
	}

	best, bestCount := uuid.Nil, -1
	for _, id := range cat.PropertySets {
		n, err := r.store.CountCrawledProperties(ctx, id)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to count crawled properties of category %s: %w", cat.Name, err)
		}
		// Ties keep the earliest property set. The tie-break looks accidental but is
		// kept: moving new crawled properties to another set has operational impact.
		if n > bestCount {
			best, bestCount = id, n
		}
	}

	r.cache.Store(cat.Name, best)
	r.logger.Debug("resolved property set",
		zap.String("category", cat.Name),
		zap.String("property_set", best.String()),
		zap.Int("crawled_properties", bestCount),
	)
	return best, nil
}
