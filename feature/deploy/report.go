package deploy

import "search-schema/core/reconcile"

// Mode is the direction of a run.
type Mode string

const (
	ModeDeploy   Mode = "deploy"
	ModeUndeploy Mode = "undeploy"
)

// Report describes what a run did.
type Report struct {
	Mode    Mode
	Changes []reconcile.Change
	// Stale lists crawled properties an undeploy left in place, deduplicated by
	// (category, name). They may still be referenced by other managed properties.
	Stale []reconcile.CrawledRef
}

// Summary counts changes per action.
type Summary struct {
	Created   int
	Updated   int
	Removed   int
	Unchanged int
}

// Summary tallies the report's changes.
func (r *Report) Summary() Summary {
	var s Summary
	for _, c := range r.Changes {
		switch c.Action {
		case reconcile.ActionCreated:
			s.Created++
		case reconcile.ActionUpdated:
			s.Updated++
		case reconcile.ActionRemoved:
			s.Removed++
		case reconcile.ActionUnchanged:
			s.Unchanged++
		}
	}
	return s
}

// Mutated reports whether the run changed the store.
func (r *Report) Mutated() bool {
	s := r.Summary()
	return s.Created+s.Updated+s.Removed > 0
}
