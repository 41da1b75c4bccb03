// Package memstore is an in-memory metastore.Store that records every mutation it
// applies. Seeding helpers (Add*) bypass the mutation log so tests can describe an
// initial store state and then assert exactly which writes a run performed.
//
// A Store is not safe for concurrent use.
package memstore

import (
	"context"
	"fmt"
	"sort"

	"search-schema/core/metastore"
	"search-schema/core/registry"

	"github.com/google/uuid"
)

// Mutation describes one write applied to the store.
type Mutation struct {
	Op   string // create, update, delete
	Kind string
	Key  string
}

func (m Mutation) String() string {
	return m.Op + " " + m.Kind + " " + m.Key
}

type ftiKey struct {
	managed string
	index   string
}

// Store is an in-memory metadata store.
type Store struct {
	indexes    map[string]metastore.FullTextIndex
	managed    map[string]metastore.ManagedProperty
	ftiLevels  map[ftiKey]int
	categories map[string]metastore.Category
	crawled    []metastore.CrawledProperty
	mappings   map[string][]metastore.CrawledPropertyKey
	mutations  []Mutation
}

var _ metastore.Store = (*Store)(nil)

// New returns an empty store.
func New() *Store {
	return &Store{
		indexes:    make(map[string]metastore.FullTextIndex),
		managed:    make(map[string]metastore.ManagedProperty),
		ftiLevels:  make(map[ftiKey]int),
		categories: make(map[string]metastore.Category),
		mappings:   make(map[string][]metastore.CrawledPropertyKey),
	}
}

// Mutations returns the writes applied since creation or the last ResetMutations.
func (s *Store) Mutations() []Mutation {
	out := make([]Mutation, len(s.mutations))
	copy(out, s.mutations)
	return out
}

// ResetMutations clears the mutation log.
func (s *Store) ResetMutations() { s.mutations = nil }

func (s *Store) record(op, kind, key string) {
	s.mutations = append(s.mutations, Mutation{Op: op, Kind: kind, Key: key})
}

// AddFullTextIndex seeds an index.
func (s *Store) AddFullTextIndex(idx metastore.FullTextIndex) { s.indexes[idx.Name] = idx }

// AddManagedProperty seeds a managed property.
func (s *Store) AddManagedProperty(mp metastore.ManagedProperty) { s.managed[mp.Name] = mp }

// AddFullTextIndexMapping seeds an index mapping.
func (s *Store) AddFullTextIndexMapping(managed, index string, level int) {
	s.ftiLevels[ftiKey{managed, index}] = level
}

// AddCategory seeds a category with the given property sets.
func (s *Store) AddCategory(name string, sets ...uuid.UUID) {
	s.categories[name] = metastore.Category{Name: name, PropertySets: sets}
}

// AddCrawledProperty seeds a crawled property.
func (s *Store) AddCrawledProperty(cp metastore.CrawledProperty) { s.crawled = append(s.crawled, cp) }

// AddCrawledMapping seeds a crawled-to-managed mapping.
func (s *Store) AddCrawledMapping(managed string, key metastore.CrawledPropertyKey) {
	s.mappings[managed] = append(s.mappings[managed], key)
}

func (s *Store) ListFullTextIndexes(_ context.Context) ([]metastore.FullTextIndex, error) {
	out := make([]metastore.FullTextIndex, 0, len(s.indexes))
	for _, idx := range s.indexes {
		out = append(out, idx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) GetFullTextIndex(_ context.Context, name string) (*metastore.FullTextIndex, error) {
	idx, ok := s.indexes[name]
	if !ok {
		return nil, nil
	}
	return &idx, nil
}

func (s *Store) CreateFullTextIndex(_ context.Context, idx metastore.FullTextIndex) (*metastore.FullTextIndex, error) {
	if _, ok := s.indexes[idx.Name]; ok {
		return nil, fmt.Errorf("full-text index %q already exists", idx.Name)
	}
	idx.IsDefault = false
	s.indexes[idx.Name] = idx
	s.record("create", "full_text_index", idx.Name)
	return &idx, nil
}

func (s *Store) UpdateFullTextIndex(_ context.Context, name string, u metastore.FullTextIndexUpdate) error {
	idx, ok := s.indexes[name]
	if !ok {
		return metastore.ErrNotFound
	}
	if u.Description != nil {
		idx.Description = *u.Description
	}
	if u.Stemming != nil {
		idx.Stemming = *u.Stemming
	}
	s.indexes[name] = idx
	s.record("update", "full_text_index", name)
	return nil
}

func (s *Store) DeleteFullTextIndex(_ context.Context, name string) error {
	if _, ok := s.indexes[name]; !ok {
		return metastore.ErrNotFound
	}
	delete(s.indexes, name)
	for k := range s.ftiLevels {
		if k.index == name {
			delete(s.ftiLevels, k)
		}
	}
	s.record("delete", "full_text_index", name)
	return nil
}

func (s *Store) GetManagedProperty(_ context.Context, name string) (*metastore.ManagedProperty, error) {
	mp, ok := s.managed[name]
	if !ok {
		return nil, nil
	}
	return &mp, nil
}

func (s *Store) CreateManagedProperty(_ context.Context, name string, typ registry.ManagedType) (*metastore.ManagedProperty, error) {
	if _, ok := s.managed[name]; ok {
		return nil, fmt.Errorf("managed property %q already exists", name)
	}
	mp := metastore.ManagedProperty{Name: name, Type: typ}
	s.managed[name] = mp
	s.record("create", "managed_property", name)
	return &mp, nil
}

func (s *Store) UpdateManagedProperty(_ context.Context, name string, u metastore.ManagedPropertyUpdate) error {
	mp, ok := s.managed[name]
	if !ok {
		return metastore.ErrNotFound
	}
	if u.Description != nil {
		mp.Description = *u.Description
	}
	if u.SortMode != nil {
		mp.SortMode = *u.SortMode
	}
	if u.Queryable != nil {
		mp.Queryable = *u.Queryable
	}
	if u.Refinable != nil {
		mp.Refinable = *u.Refinable
	}
	if u.Stemming != nil {
		mp.Stemming = *u.Stemming
	}
	if u.MergeCrawled != nil {
		mp.MergeCrawled = *u.MergeCrawled
	}
	if u.SummaryMode != nil {
		mp.SummaryMode = *u.SummaryMode
	}
	if u.ResultFallback != nil {
		mp.ResultFallback = *u.ResultFallback
	}
	s.managed[name] = mp
	s.record("update", "managed_property", name)
	return nil
}

func (s *Store) DeleteManagedProperty(_ context.Context, name string) error {
	if _, ok := s.managed[name]; !ok {
		return metastore.ErrNotFound
	}
	delete(s.managed, name)
	delete(s.mappings, name)
	for k := range s.ftiLevels {
		if k.managed == name {
			delete(s.ftiLevels, k)
		}
	}
	s.record("delete", "managed_property", name)
	return nil
}

func (s *Store) GetFullTextIndexMapping(_ context.Context, managed, index string) (*metastore.FullTextIndexMapping, error) {
	level, ok := s.ftiLevels[ftiKey{managed, index}]
	if !ok {
		return nil, nil
	}
	return &metastore.FullTextIndexMapping{ManagedProperty: managed, FullTextIndex: index, Level: level}, nil
}

func (s *Store) CreateFullTextIndexMapping(_ context.Context, managed, index string, level int) error {
	k := ftiKey{managed, index}
	if _, ok := s.ftiLevels[k]; ok {
		return fmt.Errorf("mapping %s -> %s already exists", managed, index)
	}
	s.ftiLevels[k] = level
	s.record("create", "full_text_index_mapping", managed+"->"+index)
	return nil
}

func (s *Store) UpdateFullTextIndexMapping(_ context.Context, managed, index string, level int) error {
	k := ftiKey{managed, index}
	if _, ok := s.ftiLevels[k]; !ok {
		return metastore.ErrNotFound
	}
	s.ftiLevels[k] = level
	s.record("update", "full_text_index_mapping", managed+"->"+index)
	return nil
}

func (s *Store) DeleteFullTextIndexMapping(_ context.Context, managed, index string) error {
	k := ftiKey{managed, index}
	if _, ok := s.ftiLevels[k]; !ok {
		return metastore.ErrNotFound
	}
	delete(s.ftiLevels, k)
	s.record("delete", "full_text_index_mapping", managed+"->"+index)
	return nil
}

func (s *Store) GetCategory(_ context.Context, name string) (*metastore.Category, error) {
	cat, ok := s.categories[name]
	if !ok {
		return nil, nil
	}
	cat.PropertySets = append([]uuid.UUID(nil), cat.PropertySets...)
	return &cat, nil
}

func (s *Store) CreateCategory(_ context.Context, name string, propertySet uuid.UUID) (*metastore.Category, error) {
	if _, ok := s.categories[name]; ok {
		return nil, fmt.Errorf("category %q already exists", name)
	}
	cat := metastore.Category{Name: name, PropertySets: []uuid.UUID{propertySet}}
	s.categories[name] = cat
	s.record("create", "category", name)
	return &cat, nil
}

func (s *Store) CountCrawledProperties(_ context.Context, propertySet uuid.UUID) (int, error) {
	n := 0
	for _, cp := range s.crawled {
		if cp.PropertySet == propertySet {
			n++
		}
	}
	return n, nil
}

func (s *Store) FindCrawledProperties(_ context.Context, name string) ([]metastore.CrawledProperty, error) {
	var out []metastore.CrawledProperty
	for _, cp := range s.crawled {
		if cp.Name == name {
			out = append(out, cp)
		}
	}
	return out, nil
}

func (s *Store) CreateCrawledProperty(_ context.Context, cp metastore.CrawledProperty) (*metastore.CrawledProperty, error) {
	for _, existing := range s.crawled {
		if existing.CrawledPropertyKey == cp.CrawledPropertyKey {
			return nil, fmt.Errorf("crawled property %s:%s already exists", cp.Category, cp.Name)
		}
	}
	s.crawled = append(s.crawled, cp)
	s.record("create", "crawled_property", cp.Category+":"+cp.Name)
	return &cp, nil
}

func (s *Store) ListCrawledMappings(_ context.Context, managed string) ([]metastore.CrawledPropertyKey, error) {
	return append([]metastore.CrawledPropertyKey(nil), s.mappings[managed]...), nil
}

func (s *Store) CreateCrawledMapping(_ context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	for _, k := range s.mappings[managed] {
		if k == crawled {
			return fmt.Errorf("mapping %s:%s -> %s already exists", crawled.Category, crawled.Name, managed)
		}
	}
	s.mappings[managed] = append(s.mappings[managed], crawled)
	s.record("create", "crawled_mapping", crawled.Category+":"+crawled.Name+"->"+managed)
	return nil
}

func (s *Store) DeleteCrawledMapping(_ context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	keys := s.mappings[managed]
	for i, k := range keys {
		if k == crawled {
			s.mappings[managed] = append(keys[:i:i], keys[i+1:]...)
			s.record("delete", "crawled_mapping", crawled.Category+":"+crawled.Name+"->"+managed)
			return nil
		}
	}
	return metastore.ErrNotFound
}
