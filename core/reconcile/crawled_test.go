package reconcile

import (
	"context"
	"testing"

	"search-schema/core/errs"
	"search-schema/core/registry"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCategory(t *testing.T) {
	store := newStore()
	r := New(store, nil, nil)
	ctx := context.Background()

	cat, err := r.EnsureCategory(ctx, "Web")
	require.NoError(t, err)
	require.Len(t, cat.PropertySets, 1)
	assert.NotEqual(t, uuid.Nil, cat.PropertySets[0])
	assert.Equal(t, []string{"create category Web"}, ops(store))

	store.ResetMutations()
	again, err := r.EnsureCategory(ctx, "Web")
	require.NoError(t, err)
	assert.Equal(t, cat.PropertySets, again.PropertySets)
	assert.Empty(t, ops(store))
}

func TestEnsureCrawledProperty_CreatesInResolvedSet(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	store := newStore()
	store.AddCategory("Web", s1, s2)
	addCrawled(store, "Web", s2, "existing")
	r := New(store, nil, nil)
	ctx := context.Background()

	require.NoError(t, r.EnsureCrawledProperty(ctx, CrawledPropertySpec{Name: "title", Category: "Web", Type: ptr("text")}))
	assert.Equal(t, []string{"create crawled_property Web:title"}, ops(store))

	found, err := store.FindCrawledProperties(ctx, "title")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, s2, found[0].PropertySet)
	assert.Equal(t, registry.CrawledText, found[0].Type)
}

func TestEnsureCrawledProperty_ExistingIsNotModified(t *testing.T) {
	set := uuid.New()
	store := newStore()
	store.AddCategory("Web", set)
	addCrawled(store, "Web", set, "title")
	r := New(store, nil, nil)

	// The declared type differs and is ignored for existing properties.
	require.NoError(t, r.EnsureCrawledProperty(context.Background(), CrawledPropertySpec{Name: "title", Category: "Web", Type: ptr("integer")}))
	assert.Empty(t, ops(store))

	changes := r.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, ActionUnchanged, changes[0].Action)
}

func TestEnsureCrawledProperty_OtherCategoriesIgnored(t *testing.T) {
	web, files := uuid.New(), uuid.New()
	store := newStore()
	store.AddCategory("Web", web)
	store.AddCategory("Files", files)
	addCrawled(store, "Files", files, "title")
	r := New(store, nil, nil)

	require.NoError(t, r.EnsureCrawledProperty(context.Background(), CrawledPropertySpec{Name: "title", Category: "Web", Type: ptr("text")}))
	assert.Equal(t, []string{"create crawled_property Web:title"}, ops(store))
}

func TestEnsureCrawledProperty_Errors(t *testing.T) {
	set := uuid.New()

	tests := []struct {
		name string
		spec CrawledPropertySpec
		code errs.Code
	}{
		{
			name: "Unknown category",
			spec: CrawledPropertySpec{Name: "title", Category: "Missing", Type: ptr("text")},
			code: errs.UnknownCategory,
		},
		{
			name: "Missing type",
			spec: CrawledPropertySpec{Name: "title", Category: "Web"},
			code: errs.InvalidParameter,
		},
		{
			name: "Invalid type",
			spec: CrawledPropertySpec{Name: "title", Category: "Web", Type: ptr("varchar")},
			code: errs.InvalidParameter,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newStore()
			store.AddCategory("Web", set)
			r := New(store, nil, nil)

			err := r.EnsureCrawledProperty(context.Background(), tt.spec)
			assert.True(t, errs.Has(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), tt.spec.Ref().String())
			assert.Empty(t, ops(store))
		})
	}
}

func TestEnsureCrawledProperty_Ambiguous(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	store := newStore()
	store.AddCategory("Web", s1, s2)
	addCrawled(store, "Web", s1, "title")
	addCrawled(store, "Web", s2, "title")
	r := New(store, nil, nil)

	err := r.EnsureCrawledProperty(context.Background(), CrawledPropertySpec{Name: "title", Category: "Web", Type: ptr("text")})
	assert.True(t, errs.Has(err, errs.AmbiguousCrawledProperty))
	assert.Empty(t, ops(store))
}
