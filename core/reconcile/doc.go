// Package reconcile drives the live metadata store toward a declared schema, one entity
// at a time.
//
// A Reconciler implements get-or-create-then-diff-and-update semantics for every entity
// kind of the search schema:
//
//   - Full-text indexes: ReconcileFullTextIndex, RemoveFullTextIndex
//   - Managed properties and their full-text index mapping: ReconcileManagedProperty,
//     RemoveManagedProperty
//   - Crawled-property categories: EnsureCategory
//   - Crawled properties: EnsureCrawledProperty
//   - Crawled-to-managed mappings: CreateMapping, RemoveMapping, ReconcileMappings
//
// Only fields explicitly supplied in a spec (non-nil pointers) take part in a diff, and a
// store update is issued only when at least one of them differs. Running the same specs
// twice therefore performs no writes the second time.
//
// # Property sets
//
// New crawled properties are created in the property set chosen by ResolvePropertySet.
// The choice is memoised per category in a PropertySetCache owned by the caller and
// scoped to one run.
//
// # Journal
//
// Every reconcile records a Change describing what happened to the entity. The caller
// reads them back with Changes to build its report.
//
// # Usage Example
//
//	r := reconcile.New(store, reconcile.NewPropertySetCache(), logger)
//	idx, err := r.ReconcileFullTextIndex(ctx, reconcile.FullTextIndexSpec{Name: ""})
//	err = r.ReconcileManagedProperty(ctx, spec, idx.Name)
package reconcile
