package deploy

import (
	"context"

	"search-schema/core/metastore"
	"search-schema/core/reconcile"
	"search-schema/feature/schema"

	"go.uber.org/zap"
)

// Service runs deploys and undeploys against a metadata store.
type Service struct {
	store  metastore.Store
	logger *zap.Logger
}

// NewService creates a new deploy service.
func NewService(store metastore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// walk is the state of one deploy or undeploy. The property-set cache lives and dies
// with it.
type walk struct {
	r       *reconcile.Reconciler
	report  *Report
	ensured map[string]struct{}
	stale   map[reconcile.CrawledRef]struct{}
}

func (s *Service) newWalk(mode Mode) *walk {
	return &walk{
		r:       reconcile.New(s.store, reconcile.NewPropertySetCache(), s.logger.With(zap.String("mode", string(mode)))),
		report:  &Report{Mode: mode},
		ensured: make(map[string]struct{}),
		stale:   make(map[reconcile.CrawledRef]struct{}),
	}
}

func (w *walk) finish(err error) (*Report, error) {
	w.report.Changes = w.r.Changes()
	return w.report, err
}

// Deploy makes the store match doc. The report is returned even when err is set.
func (s *Service) Deploy(ctx context.Context, doc *schema.Document) (*Report, error) {
	w := s.newWalk(ModeDeploy)
	for _, node := range doc.Indexes {
		if err := w.deployIndex(ctx, node); err != nil {
			return w.finish(err)
		}
	}
	return w.finish(nil)
}

func (w *walk) deployIndex(ctx context.Context, node schema.IndexNode) error {
	idx, err := w.r.ReconcileFullTextIndex(ctx, node.FullTextIndexSpec)
	if err != nil {
		return err
	}

	for _, mp := range node.ManagedProperties {
		if err := w.r.ReconcileManagedProperty(ctx, mp.ManagedPropertySpec, idx.Name); err != nil {
			return err
		}
		for _, cp := range mp.CrawledProperties {
			if err := w.ensureCategory(ctx, cp.Category); err != nil {
				return err
			}
			if err := w.r.EnsureCrawledProperty(ctx, cp); err != nil {
				return err
			}
		}
		if err := w.r.ReconcileMappings(ctx, mp.Name, mp.CrawledRefs()); err != nil {
			return err
		}
	}
	return nil
}

// ensureCategory ensures each category once per walk.
func (w *walk) ensureCategory(ctx context.Context, name string) error {
	if _, ok := w.ensured[name]; ok {
		return nil
	}
	if _, err := w.r.EnsureCategory(ctx, name); err != nil {
		return err
	}
	w.ensured[name] = struct{}{}
	return nil
}

// Undeploy removes the managed properties and non-default indexes doc declares.
// Absent entities are skipped, so an undeploy can be re-run safely.
func (s *Service) Undeploy(ctx context.Context, doc *schema.Document) (*Report, error) {
	w := s.newWalk(ModeUndeploy)
	for _, node := range doc.Indexes {
		for _, mp := range node.ManagedProperties {
			if err := w.r.RemoveManagedProperty(ctx, mp.Name); err != nil {
				return w.finish(err)
			}
			for _, ref := range mp.CrawledRefs() {
				w.markStale(ref)
			}
		}
		if err := w.r.RemoveFullTextIndex(ctx, node.Name); err != nil {
			return w.finish(err)
		}
	}
	return w.finish(nil)
}

func (w *walk) markStale(ref reconcile.CrawledRef) {
	if _, ok := w.stale[ref]; ok {
		return
	}
	w.stale[ref] = struct{}{}
	w.report.Stale = append(w.report.Stale, ref)
}
