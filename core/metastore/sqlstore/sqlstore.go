// Package sqlstore implements metastore.Store on top of gorm, so the metadata store can
// live in MySQL (production) or SQLite (local files and tests).
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"search-schema/core/metastore"
	"search-schema/core/registry"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultIndexName is the name of the default full-text index seeded by Migrate.
const DefaultIndexName = "DefaultIndex"

// Store is a gorm-backed metadata store.
type Store struct {
	db *gorm.DB
}

var _ metastore.Store = (*Store)(nil)

// New wraps an open gorm connection. Call Migrate once before first use.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates the store tables and seeds a default full-text index when none is
// marked default.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate store schema: %w", err)
	}

	var defaults int64
	if err := db.WithContext(ctx).Model(&FullTextIndexRow{}).Where("is_default = ?", true).Count(&defaults).Error; err != nil {
		return fmt.Errorf("failed to count default indexes: %w", err)
	}
	if defaults > 0 {
		return nil
	}

	row := FullTextIndexRow{
		Name:        DefaultIndexName,
		Description: "Default full-text index",
		IsDefault:   true,
	}
	if err := db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to seed default index: %w", err)
	}
	return nil
}

// first loads one row into dest and reports whether it was found.
func (s *Store) first(ctx context.Context, dest any, query string, args ...any) (bool, error) {
	err := s.db.WithContext(ctx).Where(query, args...).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// exists reports whether model has a row matching query.
func exists(tx *gorm.DB, model any, query string, args ...any) (bool, error) {
	var n int64
	if err := tx.Model(model).Where(query, args...).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// updateExisting applies updates to the row matching query, or returns ErrNotFound.
func (s *Store) updateExisting(ctx context.Context, model any, updates map[string]any, query string, args ...any) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ok, err := exists(tx, model, query, args...)
		if err != nil {
			return err
		}
		if !ok {
			return metastore.ErrNotFound
		}
		if len(updates) == 0 {
			return nil
		}
		return tx.Model(model).Where(query, args...).Updates(updates).Error
	})
}

// deleteExisting removes the row matching query, or returns ErrNotFound.
func deleteExisting(tx *gorm.DB, model any, query string, args ...any) error {
	res := tx.Where(query, args...).Delete(model)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return metastore.ErrNotFound
	}
	return nil
}

func toIndex(row FullTextIndexRow) metastore.FullTextIndex {
	return metastore.FullTextIndex{
		Name:        row.Name,
		Description: row.Description,
		Stemming:    row.Stemming,
		IsDefault:   row.IsDefault,
	}
}

func (s *Store) ListFullTextIndexes(ctx context.Context) ([]metastore.FullTextIndex, error) {
	var rows []FullTextIndexRow
	if err := s.db.WithContext(ctx).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list full-text indexes: %w", err)
	}
	out := make([]metastore.FullTextIndex, len(rows))
	for i, row := range rows {
		out[i] = toIndex(row)
	}
	return out, nil
}

func (s *Store) GetFullTextIndex(ctx context.Context, name string) (*metastore.FullTextIndex, error) {
	var row FullTextIndexRow
	ok, err := s.first(ctx, &row, "name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get full-text index %s: %w", name, err)
	}
	if !ok {
		return nil, nil
	}
	idx := toIndex(row)
	return &idx, nil
}

func (s *Store) CreateFullTextIndex(ctx context.Context, idx metastore.FullTextIndex) (*metastore.FullTextIndex, error) {
	row := FullTextIndexRow{
		Name:        idx.Name,
		Description: idx.Description,
		Stemming:    idx.Stemming,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create full-text index %s: %w", idx.Name, err)
	}
	created := toIndex(row)
	return &created, nil
}

func (s *Store) UpdateFullTextIndex(ctx context.Context, name string, u metastore.FullTextIndexUpdate) error {
	updates := map[string]any{}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.Stemming != nil {
		updates["stemming"] = *u.Stemming
	}
	if err := s.updateExisting(ctx, &FullTextIndexRow{}, updates, "name = ?", name); err != nil {
		return fmt.Errorf("failed to update full-text index %s: %w", name, err)
	}
	return nil
}

func (s *Store) DeleteFullTextIndex(ctx context.Context, name string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("full_text_index = ?", name).Delete(&FullTextIndexMappingRow{}).Error; err != nil {
			return err
		}
		return deleteExisting(tx, &FullTextIndexRow{}, "name = ?", name)
	})
	if err != nil {
		return fmt.Errorf("failed to delete full-text index %s: %w", name, err)
	}
	return nil
}

func toManaged(row ManagedPropertyRow) metastore.ManagedProperty {
	return metastore.ManagedProperty{
		Name:           row.Name,
		Type:           registry.ManagedType(row.Type),
		Description:    row.Description,
		SortMode:       registry.SortMode(row.SortMode),
		Queryable:      row.Queryable,
		Refinable:      row.Refinable,
		Stemming:       row.Stemming,
		MergeCrawled:   row.MergeCrawled,
		SummaryMode:    registry.SummaryMode(row.SummaryMode),
		ResultFallback: row.ResultFallback,
	}
}

func (s *Store) GetManagedProperty(ctx context.Context, name string) (*metastore.ManagedProperty, error) {
	var row ManagedPropertyRow
	ok, err := s.first(ctx, &row, "name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get managed property %s: %w", name, err)
	}
	if !ok {
		return nil, nil
	}
	mp := toManaged(row)
	return &mp, nil
}

func (s *Store) CreateManagedProperty(ctx context.Context, name string, typ registry.ManagedType) (*metastore.ManagedProperty, error) {
	row := ManagedPropertyRow{Name: name, Type: int(typ)}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create managed property %s: %w", name, err)
	}
	mp := toManaged(row)
	return &mp, nil
}

func (s *Store) UpdateManagedProperty(ctx context.Context, name string, u metastore.ManagedPropertyUpdate) error {
	updates := map[string]any{}
	if u.Description != nil {
		updates["description"] = *u.Description
	}
	if u.SortMode != nil {
		updates["sort_mode"] = int(*u.SortMode)
	}
	if u.Queryable != nil {
		updates["queryable"] = *u.Queryable
	}
	if u.Refinable != nil {
		updates["refinable"] = *u.Refinable
	}
	if u.Stemming != nil {
		updates["stemming"] = *u.Stemming
	}
	if u.MergeCrawled != nil {
		updates["merge_crawled"] = *u.MergeCrawled
	}
	if u.SummaryMode != nil {
		updates["summary_mode"] = int(*u.SummaryMode)
	}
	if u.ResultFallback != nil {
		updates["result_fallback"] = *u.ResultFallback
	}
	if err := s.updateExisting(ctx, &ManagedPropertyRow{}, updates, "name = ?", name); err != nil {
		return fmt.Errorf("failed to update managed property %s: %w", name, err)
	}
	return nil
}

func (s *Store) DeleteManagedProperty(ctx context.Context, name string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("managed_property = ?", name).Delete(&FullTextIndexMappingRow{}).Error; err != nil {
			return err
		}
		if err := tx.Where("managed_property = ?", name).Delete(&CrawledMappingRow{}).Error; err != nil {
			return err
		}
		return deleteExisting(tx, &ManagedPropertyRow{}, "name = ?", name)
	})
	if err != nil {
		return fmt.Errorf("failed to delete managed property %s: %w", name, err)
	}
	return nil
}

func (s *Store) GetFullTextIndexMapping(ctx context.Context, managed, index string) (*metastore.FullTextIndexMapping, error) {
	var row FullTextIndexMappingRow
	ok, err := s.first(ctx, &row, "managed_property = ? AND full_text_index = ?", managed, index)
	if err != nil {
		return nil, fmt.Errorf("failed to get mapping %s -> %s: %w", managed, index, err)
	}
	if !ok {
		return nil, nil
	}
	return &metastore.FullTextIndexMapping{
		ManagedProperty: row.ManagedProperty,
		FullTextIndex:   row.FullTextIndex,
		Level:           row.Level,
	}, nil
}

func (s *Store) CreateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error {
	row := FullTextIndexMappingRow{ManagedProperty: managed, FullTextIndex: index, Level: level}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to create mapping %s -> %s: %w", managed, index, err)
	}
	return nil
}

func (s *Store) UpdateFullTextIndexMapping(ctx context.Context, managed, index string, level int) error {
	err := s.updateExisting(ctx, &FullTextIndexMappingRow{}, map[string]any{"level": level},
		"managed_property = ? AND full_text_index = ?", managed, index)
	if err != nil {
		return fmt.Errorf("failed to update mapping %s -> %s: %w", managed, index, err)
	}
	return nil
}

func (s *Store) DeleteFullTextIndexMapping(ctx context.Context, managed, index string) error {
	err := deleteExisting(s.db.WithContext(ctx), &FullTextIndexMappingRow{},
		"managed_property = ? AND full_text_index = ?", managed, index)
	if err != nil {
		return fmt.Errorf("failed to delete mapping %s -> %s: %w", managed, index, err)
	}
	return nil
}

func (s *Store) GetCategory(ctx context.Context, name string) (*metastore.Category, error) {
	var row CategoryRow
	ok, err := s.first(ctx, &row, "name = ?", name)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", name, err)
	}
	if !ok {
		return nil, nil
	}

	var sets []CategoryPropertySetRow
	if err := s.db.WithContext(ctx).Where("category = ?", name).Order("position").Find(&sets).Error; err != nil {
		return nil, fmt.Errorf("failed to list property sets of category %s: %w", name, err)
	}

	cat := &metastore.Category{Name: row.Name, PropertySets: make([]uuid.UUID, 0, len(sets))}
	for _, set := range sets {
		id, err := uuid.Parse(set.PropertySet)
		if err != nil {
			return nil, fmt.Errorf("category %s has malformed property set %q: %w", name, set.PropertySet, err)
		}
		cat.PropertySets = append(cat.PropertySets, id)
	}
	return cat, nil
}

func (s *Store) CreateCategory(ctx context.Context, name string, propertySet uuid.UUID) (*metastore.Category, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&CategoryRow{Name: name}).Error; err != nil {
			return err
		}
		return tx.Create(&CategoryPropertySetRow{Category: name, PropertySet: propertySet.String()}).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create category %s: %w", name, err)
	}
	return &metastore.Category{Name: name, PropertySets: []uuid.UUID{propertySet}}, nil
}

func (s *Store) CountCrawledProperties(ctx context.Context, propertySet uuid.UUID) (int, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&CrawledPropertyRow{}).
		Where("property_set = ?", propertySet.String()).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count crawled properties in %s: %w", propertySet, err)
	}
	return int(n), nil
}

func toCrawled(row CrawledPropertyRow) (metastore.CrawledProperty, error) {
	id, err := uuid.Parse(row.PropertySet)
	if err != nil {
		return metastore.CrawledProperty{}, fmt.Errorf("crawled property %s has malformed property set %q: %w", row.Name, row.PropertySet, err)
	}
	return metastore.CrawledProperty{
		CrawledPropertyKey: metastore.CrawledPropertyKey{
			Name:        row.Name,
			Category:    row.Category,
			PropertySet: id,
		},
		Type: registry.CrawledType(row.Type),
	}, nil
}

func (s *Store) FindCrawledProperties(ctx context.Context, name string) ([]metastore.CrawledProperty, error) {
	var rows []CrawledPropertyRow
	if err := s.db.WithContext(ctx).Where("name = ?", name).Order("category, property_set").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find crawled property %s: %w", name, err)
	}
	out := make([]metastore.CrawledProperty, 0, len(rows))
	for _, row := range rows {
		cp, err := toCrawled(row)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	return out, nil
}

func (s *Store) CreateCrawledProperty(ctx context.Context, cp metastore.CrawledProperty) (*metastore.CrawledProperty, error) {
	row := CrawledPropertyRow{
		Category:    cp.Category,
		PropertySet: cp.PropertySet.String(),
		Name:        cp.Name,
		Type:        int(cp.Type),
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("failed to create crawled property %s:%s: %w", cp.Category, cp.Name, err)
	}
	return &cp, nil
}

func (s *Store) ListCrawledMappings(ctx context.Context, managed string) ([]metastore.CrawledPropertyKey, error) {
	var rows []CrawledMappingRow
	if err := s.db.WithContext(ctx).Where("managed_property = ?", managed).Order("category, name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list mappings of %s: %w", managed, err)
	}
	out := make([]metastore.CrawledPropertyKey, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.PropertySet)
		if err != nil {
			return nil, fmt.Errorf("mapping of %s has malformed property set %q: %w", managed, row.PropertySet, err)
		}
		out = append(out, metastore.CrawledPropertyKey{Name: row.Name, Category: row.Category, PropertySet: id})
	}
	return out, nil
}

func (s *Store) CreateCrawledMapping(ctx context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	row := CrawledMappingRow{
		ManagedProperty: managed,
		Category:        crawled.Category,
		PropertySet:     crawled.PropertySet.String(),
		Name:            crawled.Name,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("failed to map %s:%s -> %s: %w", crawled.Category, crawled.Name, managed, err)
	}
	return nil
}

func (s *Store) DeleteCrawledMapping(ctx context.Context, managed string, crawled metastore.CrawledPropertyKey) error {
	err := deleteExisting(s.db.WithContext(ctx), &CrawledMappingRow{},
		"managed_property = ? AND category = ? AND property_set = ? AND name = ?",
		managed, crawled.Category, crawled.PropertySet.String(), crawled.Name)
	if err != nil {
		return fmt.Errorf("failed to unmap %s:%s -> %s: %w", crawled.Category, crawled.Name, managed, err)
	}
	return nil
}
