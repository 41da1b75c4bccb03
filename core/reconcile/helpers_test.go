package reconcile

import (
	"search-schema/core/metastore"
	"search-schema/core/metastore/memstore"
)

const defaultIndex = "DefaultIndex"

func ptr[T any](v T) *T { return &v }

// newStore returns a store holding only the default full-text index.
func newStore() *memstore.Store {
	s := memstore.New()
	s.AddFullTextIndex(metastore.FullTextIndex{Name: defaultIndex, Description: "default", IsDefault: true})
	return s
}

// ops renders the store's mutation log.
func ops(s *memstore.Store) []string {
	var out []string
	for _, m := range s.Mutations() {
		out = append(out, m.String())
	}
	return out
}
