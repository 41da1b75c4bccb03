package reconcile

import (
	"context"
	"fmt"

	"search-schema/core/errs"
	"search-schema/core/metastore"
	"search-schema/core/registry"

	"go.uber.org/zap"
)

// MaxLevel is the highest full-text importance level.
const MaxLevel = 7

// managedOptions is a ManagedPropertySpec with every enumerated name resolved.
type managedOptions struct {
	typ     registry.ManagedType
	level   int
	sort    *registry.SortMode
	summary *registry.SummaryMode
}

func invalidParameter(name, param string, cause error) error {
	return errs.Wrap(errs.InvalidParameter, cause, "invalid %s", param).WithEntity("managed property", name)
}

// validateManaged resolves and range-checks spec before anything touches the store.
func validateManaged(spec ManagedPropertySpec) (managedOptions, error) {
	var opts managedOptions

	typ, err := registry.ManagedTypes.Parse(spec.Type)
	if err != nil {
		return opts, invalidParameter(spec.Name, "type", err)
	}
	opts.typ = typ

	if spec.Level != nil {
		opts.level = *spec.Level
	}
	if opts.level < 0 || opts.level > MaxLevel {
		return opts, &errs.Error{
			Code:   errs.InvalidParameter,
			Entity: fmt.Sprintf("managed property %q", spec.Name),
			Msg:    fmt.Sprintf("level must be between 0 and %d", MaxLevel),
			Value:  fmt.Sprint(opts.level),
		}
	}

	if spec.Sort != nil {
		sort, err := registry.SortModes.Parse(*spec.Sort)
		if err != nil {
			return opts, invalidParameter(spec.Name, "sort", err)
		}
		opts.sort = &sort
	}

	if spec.Summary != nil {
		summary, err := registry.SummaryModes.Parse(*spec.Summary)
		if err != nil {
			return opts, invalidParameter(spec.Name, "summary", err)
		}
		opts.summary = &summary
	}

	return opts, nil
}

// diffManaged returns the update that brings mp to spec, and the names of the fields it
// touches.
func diffManaged(mp *metastore.ManagedProperty, spec ManagedPropertySpec, opts managedOptions) (metastore.ManagedPropertyUpdate, []string) {
	var (
		u      metastore.ManagedPropertyUpdate
		fields []string
	)
	if spec.Description != nil && *spec.Description != mp.Description {
		u.Description = spec.Description
		fields = append(fields, "description")
	}
	if opts.sort != nil && *opts.sort != mp.SortMode {
		u.SortMode = opts.sort
		fields = append(fields, "sort")
	}
	if spec.Queryable != nil && *spec.Queryable != mp.Queryable {
		u.Queryable = spec.Queryable
		fields = append(fields, "queryable")
	}
	if spec.Refinable != nil && *spec.Refinable != mp.Refinable {
		u.Refinable = spec.Refinable
		fields = append(fields, "refinable")
	}
	if spec.Stemming != nil && *spec.Stemming != mp.Stemming {
		u.Stemming = spec.Stemming
		fields = append(fields, "stemming")
	}
	if spec.MergeCrawled != nil && *spec.MergeCrawled != mp.MergeCrawled {
		u.MergeCrawled = spec.MergeCrawled
		fields = append(fields, "merge")
	}
	if opts.summary != nil && *opts.summary != mp.SummaryMode {
		u.SummaryMode = opts.summary
		fields = append(fields, "summary")
	}
	return u, fields
}

// ReconcileManagedProperty gets or creates the declared managed property, applies the
// supplied options that differ in one update, reconciles its mapping into index, and
// gives dynamic-summary properties a result fallback pointing at themselves.
//
// A stored property with another type is never migrated: the call fails with
// errs.TypeImmutableConflict before any write.
func (r *Reconciler) ReconcileManagedProperty(ctx context.Context, spec ManagedPropertySpec, index string) error {
	opts, err := validateManaged(spec)
	if err != nil {
		return err
	}

	mp, err := r.store.GetManagedProperty(ctx, spec.Name)
	if err != nil {
		return fmt.Errorf("failed to get managed property %s: %w", spec.Name, err)
	}

	action := ActionUnchanged
	if mp != nil && mp.Type != opts.typ {
		msg := fmt.Sprintf("stored type is %s; delete and recreate the property to change it",
			registry.ManagedTypes.Name(mp.Type))
		return &errs.Error{
			Code:   errs.TypeImmutableConflict,
			Entity: fmt.Sprintf("managed property %q", spec.Name),
			Msg:    msg,
			Value:  spec.Type,
		}
	}
	if mp == nil {
		mp, err = r.store.CreateManagedProperty(ctx, spec.Name, opts.typ)
		if err != nil {
			return fmt.Errorf("failed to create managed property %s: %w", spec.Name, err)
		}
		action = ActionCreated
	}

	u, fields := diffManaged(mp, spec, opts)
	if !u.Empty() {
		if err := r.store.UpdateManagedProperty(ctx, spec.Name, u); err != nil {
			return fmt.Errorf("failed to update managed property %s: %w", spec.Name, err)
		}
		if u.SummaryMode != nil {
			mp.SummaryMode = *u.SummaryMode
		}
		if action == ActionUnchanged {
			action = ActionUpdated
		}
	}

	if mp.SummaryMode == registry.SummaryDynamic && mp.ResultFallback == "" {
		self := spec.Name
		if err := r.store.UpdateManagedProperty(ctx, spec.Name, metastore.ManagedPropertyUpdate{ResultFallback: &self}); err != nil {
			return fmt.Errorf("failed to set result fallback of %s: %w", spec.Name, err)
		}
		fields = append(fields, "result_fallback")
		if action == ActionUnchanged {
			action = ActionUpdated
		}
	}
	r.record(KindManagedProperty, spec.Name, action, fields...)

	return r.reconcileIndexMapping(ctx, spec.Name, index, opts.level)
}

// reconcileIndexMapping creates, updates or removes the mapping of managed into index
// so that it matches level. Level 0 means no mapping.
func (r *Reconciler) reconcileIndexMapping(ctx context.Context, managed, index string, level int) error {
	mapping, err := r.store.GetFullTextIndexMapping(ctx, managed, index)
	if err != nil {
		return fmt.Errorf("failed to get mapping %s -> %s: %w", managed, index, err)
	}
	name := managed + " -> " + index

	switch {
	case mapping == nil && level > 0:
		if err := r.store.CreateFullTextIndexMapping(ctx, managed, index, level); err != nil {
			return fmt.Errorf("failed to map %s: %w", name, err)
		}
		r.record(KindFullTextIndexMapping, name, ActionCreated, "level")
	case mapping != nil && level == 0:
		if err := r.store.DeleteFullTextIndexMapping(ctx, managed, index); err != nil {
			return fmt.Errorf("failed to unmap %s: %w", name, err)
		}
		r.record(KindFullTextIndexMapping, name, ActionRemoved)
	case mapping != nil && mapping.Level != level:
		if err := r.store.UpdateFullTextIndexMapping(ctx, managed, index, level); err != nil {
			return fmt.Errorf("failed to update mapping %s: %w", name, err)
		}
		r.record(KindFullTextIndexMapping, name, ActionUpdated, "level")
	case mapping != nil:
		r.record(KindFullTextIndexMapping, name, ActionUnchanged)
	}
	return r.pruneIndexMappings(ctx, managed, index)
}

// pruneIndexMappings removes the mappings of managed into every index other than keep.
// A managed property is mapped into at most one full-text index.
func (r *Reconciler) pruneIndexMappings(ctx context.Context, managed, keep string) error {
	indexes, err := r.store.ListFullTextIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list full-text indexes: %w", err)
	}
	for _, idx := range indexes {
		if idx.Name == keep {
			continue
		}
		mapping, err := r.store.GetFullTextIndexMapping(ctx, managed, idx.Name)
		if err != nil {
			return fmt.Errorf("failed to get mapping %s -> %s: %w", managed, idx.Name, err)
		}
		if mapping == nil {
			continue
		}
		name := managed + " -> " + idx.Name
		if err := r.store.DeleteFullTextIndexMapping(ctx, managed, idx.Name); err != nil {
			return fmt.Errorf("failed to unmap %s: %w", name, err)
		}
		r.record(KindFullTextIndexMapping, name, ActionRemoved)
	}
	return nil
}

// RemoveManagedProperty deletes the named managed property; the store drops its
// mappings with it. An absent property is not an error.
func (r *Reconciler) RemoveManagedProperty(ctx context.Context, name string) error {
	mp, err := r.store.GetManagedProperty(ctx, name)
	if err != nil {
		return fmt.Errorf("failed to get managed property %s: %w", name, err)
	}
	if mp == nil {
		r.logger.Debug("managed property already absent", zap.String("name", name))
		return nil
	}
	if err := r.store.DeleteManagedProperty(ctx, name); err != nil {
		return fmt.Errorf("failed to delete managed property %s: %w", name, err)
	}
	r.record(KindManagedProperty, name, ActionRemoved)
	return nil
}
