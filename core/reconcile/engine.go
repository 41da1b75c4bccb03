package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"

	"go.uber.org/zap"
)

// Reconciler applies declared entities to a metadata store.
// Calls are sequential; later reconciles rely on earlier ones being committed.
type Reconciler struct {
	store   metastore.Store
	cache   *PropertySetCache
	logger  *zap.Logger
	journal []Change
}

// New returns a Reconciler. A nil cache starts a fresh run; a nil logger discards logs.
func New(store metastore.Store, cache *PropertySetCache, logger *zap.Logger) *Reconciler {
	if cache == nil {
		cache = NewPropertySetCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{store: store, cache: cache, logger: logger}
}

// Changes returns the journal recorded so far.
func (r *Reconciler) Changes() []Change {
	out := make([]Change, len(r.journal))
	copy(out, r.journal)
	return out
}

func (r *Reconciler) record(kind Kind, name string, action Action, fields ...string) {
	r.journal = append(r.journal, Change{Kind: kind, Name: name, Action: action, Fields: fields})
	if action == ActionUnchanged {
		r.logger.Debug("unchanged", zap.String("kind", string(kind)), zap.String("name", name))
		return
	}
	r.logger.Info(string(action),
		zap.String("kind", string(kind)),
		zap.String("name", name),
		zap.Strings("fields", fields),
	)
}

// lookupCrawled finds the crawled property with the given name in category.
// Name alone is not unique, so matches from other categories are dropped. More than
// one match is a store invariant violation.
func (r *Reconciler) lookupCrawled(ctx context.Context, ref CrawledRef) (*metastore.CrawledProperty, error) {
	found, err := r.store.FindCrawledProperties(ctx, ref.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up crawled property %s: %w", ref, err)
	}

	var matches []metastore.CrawledProperty
	for _, cp := range found {
		if cp.Category == ref.Category {
			matches = append(matches, cp)
		}
	}

	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		return nil, errs.New(errs.AmbiguousCrawledProperty, "%d crawled properties match", len(matches)).
			WithEntity("crawled property", ref.String())
	}
}
