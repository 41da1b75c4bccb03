package mocks

import (
	"context"

	"search-schema/core/metastore"
	"search-schema/core/registry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of metastore.Store
type Store struct {
	mock.Mock
}

var _ metastore.Store = (*Store)(nil)

func (m *Store) ListFullTextIndexes(ctx context.Context) ([]metastore.FullTextIndex, error) {
	args := m.Called(ctx)
	idx, _ := args.Get(0).([]metastore.FullTextIndex)
	return idx, args.Error(1)
}

func (m *Store) GetFullTextIndex(ctx context.Context, name string) (*metastore.FullTextIndex, error) {
	args := m.Called(ctx, name)
	idx, _ := args.Get(0).(*metastore.FullTextIndex)
	return idx, args.Error(1)
}

func (m *Store) CreateFullTextIndex(ctx context.Context, idx metastore.FullTextIndex) (*metastore.FullTextIndex, error) {
	args := m.Called(ctx, idx)
	out, _ := args.Get(0).(*metastore.FullTextIndex)
	return out, args.Error(1)
}

func (m *Store) UpdateFullTextIndex(ctx context.Context, name string, u metastore.FullTextIndexUpdate) error {
	args := m.Called(ctx, name, u)
	return args.Error(0)
}

func (m *Store) DeleteFullTextIndex(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Store) GetManagedProperty(ctx context.Context, name string) (*metastore.ManagedProperty, error) {
	args := m.Called(ctx, name)
	mp, _ := args.Get(0).(*metastore.ManagedProperty)
	return mp, args.Error(1)
}

func (m *Store) CreateManagedProperty(ctx context.Context, name string, typ registry.ManagedType) (*metastore.ManagedProperty, error) {
	args := m.Called(ctx, name, typ)
	mp, _ := args.Get(0).(*metastore.ManagedProperty)
	return mp, args.Error(1)
}

func (m *Store) UpdateManagedProperty(ctx context.Context, name string, u metastore.ManagedPropertyUpdate) error {
	args := m.Called(ctx, name, u)
	return args.Error(0)
}

func (m *Store) DeleteManagedProperty(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *Store) GetFullTextIndexMapping(ctx context.Context, managed, index string) (*metastore.FullTextIndexMapping, error) {
	args := m.Called(ctx, managed, index)
	mapping, _ := args.Get(0).(*metastore.FullTextIndexMapping)
	return mapping, args.Error(1)
}

func (m *Store) CreateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error {
	args := m.Called(ctx, managed, index, level)
	return args.Error(0)
}

func (m *Store) UpdateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error {
	args := m.Called(ctx, managed, index, level)
	return args.Error(0)
}

func (m *Store) DeleteFullTextIndexMapping(ctx context.Context, managed, index string) error {
	args := m.Called(ctx, managed, index)
	return args.Error(0)
}

func (m *Store) GetCategory(ctx context.Context, name string) (*metastore.Category, error) {
	args := m.Called(ctx, name)
	cat, _ := args.Get(0).(*metastore.Category)
	return cat, args.Error(1)
}

func (m *Store) CreateCategory(ctx context.Context, name string, propertySet uuid.UUID) (*metastore.Category, error) {
	args := m.Called(ctx, name, propertySet)
	cat, _ := args.Get(0).(*metastore.Category)
	return cat, args.Error(1)
}

func (m *Store) CountCrawledProperties(ctx context.Context, propertySet uuid.UUID) (int, error) {
	args := m.Called(ctx, propertySet)
	return args.Int(0), args.Error(1)
}

func (m *Store) FindCrawledProperties(ctx context.Context, name string) ([]metastore.CrawledProperty, error) {
	args := m.Called(ctx, name)
	cps, _ := args.Get(0).([]metastore.CrawledProperty)
	return cps, args.Error(1)
}

func (m *Store) CreateCrawledProperty(ctx context.Context, cp metastore.CrawledProperty) (*metastore.CrawledProperty, error) {
	args := m.Called(ctx, cp)
	out, _ := args.Get(0).(*metastore.CrawledProperty)
	return out, args.Error(1)
}

func (m *Store) ListCrawledMappings(ctx context.Context, managed string) ([]metastore.CrawledPropertyKey, error) {
	args := m.Called(ctx, managed)
	keys, _ := args.Get(0).([]metastore.CrawledPropertyKey)
	return keys, args.Error(1)
}

func (m *Store) CreateCrawledMapping(ctx context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	args := m.Called(ctx, managed, crawled)
	return args.Error(0)
}

func (m *Store) DeleteCrawledMapping(ctx context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	args := m.Called(ctx, managed, crawled)
	return args.Error(0)
}
