package sqlstore

// FullTextIndexRow represents the 'full_text_indexes' table.
type FullTextIndexRow struct {
	Name        string `gorm:"column:name;primaryKey;size:190"`
	Description string `gorm:"column:description"`
	Stemming    bool   `gorm:"column:stemming"`
	IsDefault   bool   `gorm:"column:is_default;index"`
}

// TableName overrides the table name.
func (FullTextIndexRow) TableName() string {
	return "full_text_indexes"
}

// ManagedPropertyRow represents the 'managed_properties' table.
type ManagedPropertyRow struct {
	Name           string `gorm:"column:name;primaryKey;size:190"`
	Type           int    `gorm:"column:type"`
	Description    string `gorm:"column:description"`
	SortMode       int    `gorm:"column:sort_mode"`
	Queryable      bool   `gorm:"column:queryable"`
	Refinable      bool   `gorm:"column:refinable"`
	Stemming       bool   `gorm:"column:stemming"`
	MergeCrawled   bool   `gorm:"column:merge_crawled"`
	SummaryMode    int    `gorm:"column:summary_mode"`
	ResultFallback string `gorm:"column:result_fallback;size:190"`
}

// TableName overrides the table name.
func (ManagedPropertyRow) TableName() string {
	return "managed_properties"
}

// FullTextIndexMappingRow represents the 'full_text_index_mappings' table.
type FullTextIndexMappingRow struct {
	ManagedProperty string `gorm:"column:managed_property;primaryKey;size:190"`
	FullTextIndex   string `gorm:"column:full_text_index;primaryKey;size:190"`
	Level           int    `gorm:"column:level"`
}

// TableName overrides the table name.
func (FullTextIndexMappingRow) TableName() string {
	return "full_text_index_mappings"
}

// CategoryRow represents the 'crawled_property_categories' table.
type CategoryRow struct {
	Name string `gorm:"column:name;primaryKey;size:190"`
}

// TableName overrides the table name.
func (CategoryRow) TableName() string {
	return "crawled_property_categories"
}

// CategoryPropertySetRow associates a category with one property set.
// Position keeps the store order of a category's property sets.
type CategoryPropertySetRow struct {
	Category    string `gorm:"column:category;primaryKey;size:190"`
	PropertySet string `gorm:"column:property_set;primaryKey;size:36"`
	Position    int    `gorm:"column:position"`
}

// TableName overrides the table name.
func (CategoryPropertySetRow) TableName() string {
	return "category_property_sets"
}

// CrawledPropertyRow represents the 'crawled_properties' table.
type CrawledPropertyRow struct {
	Category    string `gorm:"column:category;primaryKey;size:190"`
	PropertySet string `gorm:"column:property_set;primaryKey;size:36;index"`
	Name        string `gorm:"column:name;primaryKey;size:190;index"`
	Type        int    `gorm:"column:type"`
}

// TableName overrides the table name.
func (CrawledPropertyRow) TableName() string {
	return "crawled_properties"
}

// CrawledMappingRow represents the 'crawled_property_mappings' table.
type CrawledMappingRow struct {
	ManagedProperty string `gorm:"column:managed_property;primaryKey;size:190"`
	Category        string `gorm:"column:category;primaryKey;size:190"`
	PropertySet     string `gorm:"column:property_set;primaryKey;size:36"`
	Name            string `gorm:"column:name;primaryKey;size:190"`
}

// TableName overrides the table name.
func (CrawledMappingRow) TableName() string {
	return "crawled_property_mappings"
}

// Models lists every table managed by Migrate.
func Models() []any {
	return []any{
		&FullTextIndexRow{},
		&ManagedPropertyRow{},
		&FullTextIndexMappingRow{},
		&CategoryRow{},
		&CategoryPropertySetRow{},
		&CrawledPropertyRow{},
		&CrawledMappingRow{},
	}
}
