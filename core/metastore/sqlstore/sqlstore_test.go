package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"search-schema/core/metastore"
	"search-schema/core/registry"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates a migrated in-memory SQLite store.
func setupTestDB(t *testing.T, dbName string) (*Store, *gorm.DB) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", dbName)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))
	return New(db), db
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestMigrate_SeedsSingleDefaultIndex(t *testing.T) {
	store, db := setupTestDB(t, "migrate_seed")
	ctx := context.Background()

	// A second migration must not seed another default.
	require.NoError(t, Migrate(ctx, db))

	indexes, err := store.ListFullTextIndexes(ctx)
	require.NoError(t, err)
	require.Len(t, indexes, 1)
	assert.Equal(t, DefaultIndexName, indexes[0].Name)
	assert.True(t, indexes[0].IsDefault)
}

func TestFullTextIndex_CRUD(t *testing.T) {
	store, _ := setupTestDB(t, "fti_crud")
	ctx := context.Background()

	created, err := store.CreateFullTextIndex(ctx, metastore.FullTextIndex{Name: "Products", Description: "products", IsDefault: true})
	require.NoError(t, err)
	assert.False(t, created.IsDefault, "created indexes are never default")

	desc := "product catalogue"
	require.NoError(t, store.UpdateFullTextIndex(ctx, "Products", metastore.FullTextIndexUpdate{Description: &desc}))

	got, err := store.GetFullTextIndex(ctx, "Products")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "product catalogue", got.Description)
	assert.False(t, got.Stemming)

	require.NoError(t, store.DeleteFullTextIndex(ctx, "Products"))
	got, err = store.GetFullTextIndex(ctx, "Products")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = store.DeleteFullTextIndex(ctx, "Products")
	assert.True(t, errors.Is(err, metastore.ErrNotFound))
	err = store.UpdateFullTextIndex(ctx, "Products", metastore.FullTextIndexUpdate{Description: &desc})
	assert.True(t, errors.Is(err, metastore.ErrNotFound))
}

func TestManagedProperty_PartialUpdate(t *testing.T) {
	store, _ := setupTestDB(t, "mp_update")
	ctx := context.Background()

	_, err := store.CreateManagedProperty(ctx, "Title", registry.ManagedText)
	require.NoError(t, err)

	queryable := true
	sortMode := registry.SortLatent
	require.NoError(t, store.UpdateManagedProperty(ctx, "Title", metastore.ManagedPropertyUpdate{
		Queryable: &queryable,
		SortMode:  &sortMode,
	}))

	// Setting a field back to its zero value must be persisted.
	off := false
	require.NoError(t, store.UpdateManagedProperty(ctx, "Title", metastore.ManagedPropertyUpdate{Queryable: &off}))

	got, err := store.GetManagedProperty(ctx, "Title")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, registry.ManagedText, got.Type)
	assert.Equal(t, registry.SortLatent, got.SortMode)
	assert.False(t, got.Queryable)
	assert.Equal(t, "", got.ResultFallback)
}

func TestDeleteManagedProperty_CascadesMappings(t *testing.T) {
	store, db := setupTestDB(t, "mp_cascade")
	ctx := context.Background()

	ps := uuid.New()
	_, err := store.CreateManagedProperty(ctx, "Author", registry.ManagedText)
	require.NoError(t, err)
	require.NoError(t, store.CreateFullTextIndexMapping(ctx, "Author", DefaultIndexName, 4))
	_, err = store.CreateCategory(ctx, "Office", ps)
	require.NoError(t, err)
	key := metastore.CrawledPropertyKey{Name: "ows_Author", Category: "Office", PropertySet: ps}
	_, err = store.CreateCrawledProperty(ctx, metastore.CrawledProperty{CrawledPropertyKey: key, Type: registry.CrawledText})
	require.NoError(t, err)
	require.NoError(t, store.CreateCrawledMapping(ctx, "Author", key))

	require.NoError(t, store.DeleteManagedProperty(ctx, "Author"))

	var ftiCount, crawledCount int64
	db.Model(&FullTextIndexMappingRow{}).Count(&ftiCount)
	db.Model(&CrawledMappingRow{}).Count(&crawledCount)
	assert.Zero(t, ftiCount)
	assert.Zero(t, crawledCount)

	// The crawled property itself survives.
	cps, err := store.FindCrawledProperties(ctx, "ows_Author")
	require.NoError(t, err)
	assert.Len(t, cps, 1)
}

func TestFullTextIndexMapping_Levels(t *testing.T) {
	store, _ := setupTestDB(t, "fti_mapping")
	ctx := context.Background()

	require.NoError(t, store.CreateFullTextIndexMapping(ctx, "Title", DefaultIndexName, 5))
	require.NoError(t, store.UpdateFullTextIndexMapping(ctx, "Title", DefaultIndexName, 3))

	m, err := store.GetFullTextIndexMapping(ctx, "Title", DefaultIndexName)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 3, m.Level)

	require.NoError(t, store.DeleteFullTextIndexMapping(ctx, "Title", DefaultIndexName))
	m, err = store.GetFullTextIndexMapping(ctx, "Title", DefaultIndexName)
	require.NoError(t, err)
	assert.Nil(t, m)

	err = store.UpdateFullTextIndexMapping(ctx, "Title", DefaultIndexName, 1)
	assert.True(t, errors.Is(err, metastore.ErrNotFound))
}

func TestCategory_PropertySetOrderAndCounts(t *testing.T) {
	store, db := setupTestDB(t, "category_sets")
	ctx := context.Background()

	first, second := uuid.New(), uuid.New()
	_, err := store.CreateCategory(ctx, "Web", first)
	require.NoError(t, err)
	// Categories gain extra property sets outside this tool; seed one directly.
	require.NoError(t, db.Create(&CategoryPropertySetRow{Category: "Web", PropertySet: second.String(), Position: 1}).Error)

	cat, err := store.GetCategory(ctx, "Web")
	require.NoError(t, err)
	require.NotNil(t, cat)
	assert.Equal(t, []uuid.UUID{first, second}, cat.PropertySets)

	for i := 0; i < 3; i++ {
		_, err := store.CreateCrawledProperty(ctx, metastore.CrawledProperty{
			CrawledPropertyKey: metastore.CrawledPropertyKey{Name: fmt.Sprintf("p%d", i), Category: "Web", PropertySet: second},
			Type:               registry.CrawledText,
		})
		require.NoError(t, err)
	}

	n, err := store.CountCrawledProperties(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	n, err = store.CountCrawledProperties(ctx, first)
	require.NoError(t, err)
	assert.Zero(t, n)

	missing, err := store.GetCategory(ctx, "Nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestFindCrawledProperties_AcrossCategories(t *testing.T) {
	store, _ := setupTestDB(t, "crawled_find")
	ctx := context.Background()

	for _, cat := range []string{"Basic", "Office"} {
		_, err := store.CreateCrawledProperty(ctx, metastore.CrawledProperty{
			CrawledPropertyKey: metastore.CrawledPropertyKey{Name: "Title", Category: cat, PropertySet: uuid.New()},
			Type:               registry.CrawledText,
		})
		require.NoError(t, err)
	}

	cps, err := store.FindCrawledProperties(ctx, "Title")
	require.NoError(t, err)
	require.Len(t, cps, 2)
	assert.Equal(t, "Basic", cps[0].Category)
	assert.Equal(t, "Office", cps[1].Category)
	assert.Equal(t, registry.CrawledText, cps[0].Type)
}

func TestCrawledMappings_CreateListDelete(t *testing.T) {
	store, _ := setupTestDB(t, "crawled_mappings")
	ctx := context.Background()

	a := metastore.CrawledPropertyKey{Name: "A", Category: "Basic", PropertySet: uuid.New()}
	b := metastore.CrawledPropertyKey{Name: "B", Category: "Basic", PropertySet: uuid.New()}
	require.NoError(t, store.CreateCrawledMapping(ctx, "Title", a))
	require.NoError(t, store.CreateCrawledMapping(ctx, "Title", b))

	keys, err := store.ListCrawledMappings(ctx, "Title")
	require.NoError(t, err)
	assert.Equal(t, []metastore.CrawledPropertyKey{a, b}, keys)

	require.NoError(t, store.DeleteCrawledMapping(ctx, "Title", a))
	keys, err = store.ListCrawledMappings(ctx, "Title")
	require.NoError(t, err)
	assert.Equal(t, []metastore.CrawledPropertyKey{b}, keys)

	err = store.DeleteCrawledMapping(ctx, "Title", a)
	assert.True(t, errors.Is(err, metastore.ErrNotFound))

	none, err := store.ListCrawledMappings(ctx, "Missing")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetManagedProperty_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `managed_properties`")).
		WillReturnError(fmt.Errorf("connection reset"))

	mp, err := store.GetManagedProperty(context.Background(), "Title")
	assert.Nil(t, mp)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get managed property Title")
	assert.Contains(t, err.Error(), "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetFullTextIndex_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := New(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `full_text_indexes`")).
		WillReturnRows(sqlmock.NewRows([]string{"name", "description", "stemming", "is_default"}))

	idx, err := store.GetFullTextIndex(context.Background(), "Missing")
	assert.NoError(t, err)
	assert.Nil(t, idx)
	assert.NoError(t, mock.ExpectationsWereMet())
}
