package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"
	"search-schema/core/registry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EnsureCategory gets or creates the named crawled-property category. New categories
// start with a freshly generated property set.
func (r *Reconciler) EnsureCategory(ctx context.Context, name string) (*metastore.Category, error) {
	cat, err := r.store.GetCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", name, err)
	}
	if cat != nil {
		r.record(KindCategory, name, ActionUnchanged)
		return cat, nil
	}

	cat, err = r.store.CreateCategory(ctx, name, uuid.New())
	if err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", name, err)
	}
	r.record(KindCategory, name, ActionCreated, "property_set")
	return cat, nil
}

// EnsureCrawledProperty creates the declared crawled property in its category's
// resolved property set. Existing crawled properties are never modified.
func (r *Reconciler) EnsureCrawledProperty(ctx context.Context, spec CrawledPropertySpec) error {
	ref := spec.Ref()

	cat, err := r.store.GetCategory(ctx, spec.Category)
	if err != nil {
		return fmt.Errorf("failed to get category %s: %w", spec.Category, err)
	}
	if cat == nil {
		return errs.New(errs.UnknownCategory, "category %q does not exist", spec.Category).
			WithEntity("crawled property", ref.String())
	}

	propertySet, err := r.ResolvePropertySet(ctx, cat)
	if err != nil {
		return err
	}

	existing, err := r.lookupCrawled(ctx, ref)
	if err != nil {
		return err
	}
	if existing != nil {
		r.logger.Debug("crawled property exists, type is not updated",
			zap.String("name", ref.String()),
			zap.String("type", registry.CrawledTypes.Name(existing.Type)),
		)
		r.record(KindCrawledProperty, ref.String(), ActionUnchanged)
		return nil
	}

	if spec.Type == nil {
		return errs.New(errs.InvalidParameter, "type is required to create a crawled property").
			WithEntity("crawled property", ref.String())
	}
	typ, err := registry.CrawledTypes.Parse(*spec.Type)
	if err != nil {
		return errs.Wrap(errs.InvalidParameter, err, "invalid type").WithEntity("crawled property", ref.String())
	}

	cp := metastore.CrawledProperty{
		CrawledPropertyKey: metastore.CrawledPropertyKey{
			Name:        spec.Name,
			Category:    spec.Category,
			PropertySet: propertySet,
		},
		Type: typ,
	}
	if _, err := r.store.CreateCrawledProperty(ctx, cp); err != nil {
		return fmt.Errorf("failed to create crawled property %s: %w", ref, err)
	}
	r.record(KindCrawledProperty, ref.String(), ActionCreated, "type")
	return nil
}
