package reconcile

// FullTextIndexSpec declares a full-text index. An empty Name selects the store's
// default index. Nil fields are left untouched.
type FullTextIndexSpec struct {
	Name        string
	Description *string
	Stemming    *bool
}

// ManagedPropertySpec declares a managed property. Name and Type are required; nil
// fields are left untouched, except Level where nil means 0 (not full-text mapped).
type ManagedPropertySpec struct {
	Name string
	// Type is a registry.ManagedTypes name. It is fixed once the property exists.
	Type        string
	Description *string
	// Level is the importance level (1-7) in the parent full-text index.
	Level        *int
	Queryable    *bool
	Refinable    *bool
	Stemming     *bool
	MergeCrawled *bool
	// Sort is a registry.SortModes name.
	Sort *string
	// Summary is a registry.SummaryModes name.
	Summary *string
}

// CrawledPropertySpec declares a crawled property. Type is only needed when the
// property does not exist yet.
type CrawledPropertySpec struct {
	Name     string
	Category string
	Type     *string
}

// Ref returns the identity of the crawled property.
func (s CrawledPropertySpec) Ref() CrawledRef {
	return CrawledRef{Name: s.Name, Category: s.Category}
}

// CrawledRef identifies a crawled property by name within its category.
type CrawledRef struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

func (r CrawledRef) String() string {
	return r.Category + ":" + r.Name
}

// Kind names an entity kind in the journal.
type Kind string

const (
	KindFullTextIndex        Kind = "full_text_index"
	KindManagedProperty      Kind = "managed_property"
	KindFullTextIndexMapping Kind = "full_text_index_mapping"
	KindCategory             Kind = "category"
	KindCrawledProperty      Kind = "crawled_property"
	KindCrawledMapping       Kind = "crawled_mapping"
)

// Action is what a reconcile did to an entity.
type Action string

const (
	ActionCreated   Action = "created"
	ActionUpdated   Action = "updated"
	ActionRemoved   Action = "removed"
	ActionUnchanged Action = "unchanged"
)

// Change is one journal entry.
type Change struct {
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Action Action `json:"action"`
	// Fields lists the changed fields for created and updated entities.
	Fields []string `json:"fields,omitempty"`
}
