package metastore

import (
	"search-schema/core/registry"

	"github.com/google/uuid"
)

// FullTextIndex is a named full-text index partition. Exactly one index is the default.
type FullTextIndex struct {
	Name        string
	Description string
	Stemming    bool
	IsDefault   bool
}

// FullTextIndexUpdate carries the fields to change; nil fields are left unchanged.
type FullTextIndexUpdate struct {
	Description *string
	Stemming    *bool
}

// Empty reports whether the update changes nothing.
func (u FullTextIndexUpdate) Empty() bool {
	return u.Description == nil && u.Stemming == nil
}

// ManagedProperty is a typed, queryable schema field.
type ManagedProperty struct {
	Name         string
	Type         registry.ManagedType
	Description  string
	SortMode     registry.SortMode
	Queryable    bool
	Refinable    bool
	Stemming     bool
	MergeCrawled bool
	SummaryMode  registry.SummaryMode

	// ResultFallback names the property used for dynamic summaries; "" means none.
	ResultFallback string
}

// ManagedPropertyUpdate carries the fields to change; nil fields are left unchanged.
type ManagedPropertyUpdate struct {
	Description    *string
	SortMode       *registry.SortMode
	Queryable      *bool
	Refinable      *bool
	Stemming       *bool
	MergeCrawled   *bool
	SummaryMode    *registry.SummaryMode
	ResultFallback *string
}

// Empty reports whether the update changes nothing.
func (u ManagedPropertyUpdate) Empty() bool {
	return u.Description == nil && u.SortMode == nil && u.Queryable == nil &&
		u.Refinable == nil && u.Stemming == nil && u.MergeCrawled == nil &&
		u.SummaryMode == nil && u.ResultFallback == nil
}

// FullTextIndexMapping maps a managed property into a full-text index at an importance level.
type FullTextIndexMapping struct {
	ManagedProperty string
	FullTextIndex   string
	Level           int
}

// Category is a crawled-property category and the property sets it spans, in store order.
type Category struct {
	Name         string
	PropertySets []uuid.UUID
}

// CrawledPropertyKey identifies one crawled property in the store.
type CrawledPropertyKey struct {
	Name        string
	Category    string
	PropertySet uuid.UUID
}

// CrawledProperty is a raw piece of content metadata.
type CrawledProperty struct {
	CrawledPropertyKey
	Type registry.CrawledType
}
