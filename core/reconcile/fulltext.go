package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"

	"go.uber.org/zap"
)

// DefaultIndexDescription returns the description given to indexes created without one.
func DefaultIndexDescription(name string) string {
	return fmt.Sprintf("Full-text index %s", name)
}

// DefaultFullTextIndex returns the single index the store marks as default.
func (r *Reconciler) DefaultFullTextIndex(ctx context.Context) (*metastore.FullTextIndex, error) {
	indexes, err := r.store.ListFullTextIndexes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list full-text indexes: %w", err)
	}

	var defaults []metastore.FullTextIndex
	for _, idx := range indexes {
		if idx.IsDefault {
			defaults = append(defaults, idx)
		}
	}
	if len(defaults) != 1 {
		return nil, errs.New(errs.NoDefaultIndex, "expected exactly one default full-text index, found %d", len(defaults))
	}
	return &defaults[0], nil
}

// ReconcileFullTextIndex gets or creates the declared index and applies the supplied
// fields that differ. The returned index carries the resolved name.
func (r *Reconciler) ReconcileFullTextIndex(ctx context.Context, spec FullTextIndexSpec) (*metastore.FullTextIndex, error) {
	var (
		idx *metastore.FullTextIndex
		err error
	)
	if spec.Name == "" {
		idx, err = r.DefaultFullTextIndex(ctx)
		if err != nil {
			return nil, err
		}
	} else {
		idx, err = r.store.GetFullTextIndex(ctx, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to get full-text index %s: %w", spec.Name, err)
		}
	}

	if idx == nil {
		create := metastore.FullTextIndex{Name: spec.Name, Description: DefaultIndexDescription(spec.Name)}
		fields := []string{}
		if spec.Description != nil && *spec.Description != "" {
			create.Description = *spec.Description
			fields = append(fields, "description")
		}
		if spec.Stemming != nil {
			create.Stemming = *spec.Stemming
			fields = append(fields, "stemming")
		}
		created, err := r.store.CreateFullTextIndex(ctx, create)
		if err != nil {
			return nil, fmt.Errorf("failed to create full-text index %s: %w", spec.Name, err)
		}
		r.record(KindFullTextIndex, created.Name, ActionCreated, fields...)
		return created, nil
	}

	var (
		u      metastore.FullTextIndexUpdate
		fields []string
	)
	if spec.Description != nil && *spec.Description != idx.Description {
		u.Description = spec.Description
		fields = append(fields, "description")
	}
	if spec.Stemming != nil && *spec.Stemming != idx.Stemming {
		u.Stemming = spec.Stemming
		fields = append(fields, "stemming")
	}
	if u.Empty() {
		r.record(KindFullTextIndex, idx.Name, ActionUnchanged)
		return idx, nil
	}

	if err := r.store.UpdateFullTextIndex(ctx, idx.Name, u); err != nil {
		return nil, fmt.Errorf("failed to update full-text index %s: %w", idx.Name, err)
	}
	if u.Description != nil {
		idx.Description = *u.Description
	}
	if u.Stemming != nil {
		idx.Stemming = *u.Stemming
	}
	r.record(KindFullTextIndex, idx.Name, ActionUpdated, fields...)
	return idx, nil
}

// RemoveFullTextIndex deletes the named index. Absent indexes and the default index
// are left alone without error.
func (r *Reconciler) RemoveFullTextIndex(ctx context.Context, name string) error {
	if name == "" {
		r.logger.Debug("default full-text index is never removed")
		return nil
	}

	idx, err := r.store.GetFullTextIndex(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get full-text index %s: %w", name, err)
	}
	if idx == nil {
		r.logger.Debug("full-text index already absent", zap.String("name", name))
		return nil
	}
	if idx.IsDefault {
		r.logger.Debug("default full-text index is never removed", zap.String("name", name))
		return nil
	}

	if err := r.store.DeleteFullTextIndex(ctx, name); err != nil {
		return fmt.Errorf("failed to delete full-text index %s: %w", name, err)
	}
	r.record(KindFullTextIndex, name, ActionRemoved)
	return nil
}
