package metastore

import (
	"context"
	"errors"

	"search-schema/core/registry"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an update or delete targets an absent entity.
var ErrNotFound = errors.New("metastore: entity not found")

// Store is the metadata store client. Every call is a blocking remote operation.
type Store interface {
	// ListFullTextIndexes returns all full-text indexes.
	ListFullTextIndexes(ctx context.Context) ([]FullTextIndex, error)
	// GetFullTextIndex returns the named index or nil.
	GetFullTextIndex(ctx context.Context, name string) (*FullTextIndex, error)
	// CreateFullTextIndex creates a non-default index.
	CreateFullTextIndex(ctx context.Context, idx FullTextIndex) (*FullTextIndex, error)
	// UpdateFullTextIndex applies the non-nil fields of u.
	UpdateFullTextIndex(ctx context.Context, name string, u FullTextIndexUpdate) error
	// DeleteFullTextIndex removes the index and its mappings.
	DeleteFullTextIndex(ctx context.Context, name string) error

	// GetManagedProperty returns the named managed property or nil.
	GetManagedProperty(ctx context.Context, name string) (*ManagedProperty, error)
	// CreateManagedProperty creates a managed property with default options.
	CreateManagedProperty(ctx context.Context, name string, typ registry.ManagedType) (*ManagedProperty, error)
	// UpdateManagedProperty applies the non-nil fields of u.
	UpdateManagedProperty(ctx context.Context, name string, u ManagedPropertyUpdate) error
	// DeleteManagedProperty removes the property together with all of its mappings.
	DeleteManagedProperty(ctx context.Context, name string) error

	// GetFullTextIndexMapping returns the mapping of a managed property into an index or nil.
	GetFullTextIndexMapping(ctx context.Context, managed, index string) (*FullTextIndexMapping, error)
	CreateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error
	UpdateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error
	DeleteFullTextIndexMapping(ctx context.Context, managed, index string) error

	// GetCategory returns the named category or nil.
	GetCategory(ctx context.Context, name string) (*Category, error)
	// CreateCategory creates a category associated with a single property set.
	CreateCategory(ctx context.Context, name string, propertySet uuid.UUID) (*Category, error)
	// CountCrawledProperties counts crawled properties stored under propertySet.
	CountCrawledProperties(ctx context.Context, propertySet uuid.UUID) (int, error)

	// FindCrawledProperties returns every crawled property with the given name, across
	// all categories and property sets.
	FindCrawledProperties(ctx context.Context, name string) ([]CrawledProperty, error)
	CreateCrawledProperty(ctx context.Context, cp CrawledProperty) (*CrawledProperty, error)

	// ListCrawledMappings returns the crawled properties mapped to a managed property.
	// An absent managed property has no mappings.
	ListCrawledMappings(ctx context.Context, managed string) ([]CrawledPropertyKey, error)
	CreateCrawledMapping(ctx context.Context, managed string, crawled CrawledPropertyKey) error
	DeleteCrawledMapping(ctx context.Context, managed string, crawled CrawledPropertyKey) error
}
