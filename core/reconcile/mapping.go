package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"

	"go.uber.org/zap"
)

func mappingName(managed string, ref CrawledRef) string {
	return ref.String() + " -> " + managed
}

func containsKey(keys []metastore.CrawledPropertyKey, key metastore.CrawledPropertyKey) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}

// CreateMapping maps the crawled property ref onto the managed property. Existing
// mappings are left as they are.
func (r *Reconciler) CreateMapping(ctx context.Context, managed string, ref CrawledRef) error {
	name := mappingName(managed, ref)

	cp, err := r.lookupCrawled(ctx, ref)
	if err != nil {
		return err
	}
	if cp == nil {
		return errs.New(errs.CrawledPropertyNotFound, "cannot map onto %q", managed).
			WithEntity("crawled property", ref.String())
	}

	current, err := r.store.ListCrawledMappings(ctx, managed)
	if err != nil {
		return fmt.Errorf("failed to list mappings of %s: %w", managed, err)
	}
	if containsKey(current, cp.CrawledPropertyKey) {
		r.record(KindCrawledMapping, name, ActionUnchanged)
		return nil
	}

	mp, err := r.store.GetManagedProperty(ctx, managed)
	if err != nil {
		return fmt.Errorf("failed to get managed property %s: %w", managed, err)
	}
	if mp == nil {
		return errs.New(errs.ManagedPropertyNotFound, "cannot map %s", ref).
			WithEntity("managed property", managed)
	}

	if err := r.store.CreateCrawledMapping(ctx, managed, cp.CrawledPropertyKey); err != nil {
		return fmt.Errorf("failed to map %s: %w", name, err)
	}
	r.record(KindCrawledMapping, name, ActionCreated)
	return nil
}

// RemoveMapping removes the mapping of ref onto the managed property. Missing managed
// properties, crawled properties or mappings are not errors.
func (r *Reconciler) RemoveMapping(ctx context.Context, managed string, ref CrawledRef) error {
	name := mappingName(managed, ref)

	mp, err := r.store.GetManagedProperty(ctx, managed)
	if err != nil {
		return fmt.Errorf("failed to get managed property %s: %w", managed, err)
	}
	if mp == nil {
		r.logger.Debug("managed property absent, nothing to unmap", zap.String("name", name))
		return nil
	}

	cp, err := r.lookupCrawled(ctx, ref)
	if err != nil {
		return err
	}
	if cp == nil {
		r.logger.Debug("crawled property absent, nothing to unmap", zap.String("name", name))
		return nil
	}

	current, err := r.store.ListCrawledMappings(ctx, managed)
	if err != nil {
		return fmt.Errorf("failed to list mappings of %s: %w", managed, err)
	}
	if !containsKey(current, cp.CrawledPropertyKey) {
		r.logger.Debug("mapping already absent", zap.String("name", name))
		return nil
	}

	if err := r.store.DeleteCrawledMapping(ctx, managed, cp.CrawledPropertyKey); err != nil {
		return fmt.Errorf("failed to unmap %s: %w", name, err)
	}
	r.record(KindCrawledMapping, name, ActionRemoved)
	return nil
}

// ReconcileMappings makes the crawled mappings of the managed property exactly desired:
// every desired mapping is created, then every current mapping whose (name, category)
// is not desired is removed.
func (r *Reconciler) ReconcileMappings(ctx context.Context, managed string, desired []CrawledRef) error {
	want := make(map[CrawledRef]struct{}, len(desired))
	for _, ref := range desired {
		if err := r.CreateMapping(ctx, managed, ref); err != nil {
			return err
		}
		want[ref] = struct{}{}
	}

	current, err := r.store.ListCrawledMappings(ctx, managed)
	if err != nil {
		return fmt.Errorf("failed to list mappings of %s: %w", managed, err)
	}
	for _, key := range current {
		ref := CrawledRef{Name: key.Name, Category: key.Category}
		if _, ok := want[ref]; ok {
			continue
		}
		if err := r.store.DeleteCrawledMapping(ctx, managed, key); err != nil {
			return fmt.Errorf("failed to unmap %s: %w", mappingName(managed, ref), err)
		}
		r.record(KindCrawledMapping, mappingName(managed, ref), ActionRemoved)
	}
	return nil
}
