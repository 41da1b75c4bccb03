package schema

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"search-schema/core/errs"
	"search-schema/core/reconcile"
	"search-schema/core/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExamples(t *testing.T) {
	xmlDoc, err := Parse(mustExample(t, FormatXML), FormatXML)
	require.NoError(t, err)
	yamlDoc, err := Parse(mustExample(t, FormatYAML), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, xmlDoc, yamlDoc, "both example documents declare the same schema")

	require.Len(t, xmlDoc.Indexes, 2)
	assert.Equal(t, "", xmlDoc.Indexes[0].Name)
	assert.Equal(t, "Products", xmlDoc.Indexes[1].Name)

	title := xmlDoc.Indexes[1].ManagedProperties[0]
	assert.Equal(t, "ProductTitle", title.Name)
	assert.Equal(t, "dynamic", *title.Summary)
	assert.Equal(t, 7, *title.Level)
	assert.True(t, *title.Stemming)
	assert.Nil(t, title.Queryable)

	owner := xmlDoc.Indexes[0].ManagedProperties[0]
	assert.Equal(t, []reconcile.CrawledRef{
		{Name: "ows_Owner", Category: "SharePoint"},
		{Name: "Owner", Category: "Office"},
	}, owner.CrawledRefs())
	assert.Equal(t, "text", *owner.CrawledProperties[1].Type)
}

func mustExample(t *testing.T, f Format) []byte {
	t.Helper()
	data, err := Example(f)
	require.NoError(t, err)
	return data
}

func TestParseXML(t *testing.T) {
	data := `<Root>
  <FullTextIndex name="Docs">
    <ManagedProperty name="Size" type="integer" query="YES" refine="0" level="9" />
  </FullTextIndex>
</Root>`

	doc, err := Parse([]byte(data), FormatXML)
	require.NoError(t, err)

	mp := doc.Indexes[0].ManagedProperties[0]
	assert.True(t, *mp.Queryable)
	assert.False(t, *mp.Refinable)
	assert.Equal(t, 9, *mp.Level, "level range is checked when reconciling")
	assert.Nil(t, mp.Stemming)
	assert.Nil(t, mp.Description)
	assert.Nil(t, mp.Sort)
	assert.Nil(t, doc.Indexes[0].Description)
}

func TestParseXML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"Empty", "  ", "document is empty"},
		{"Wrong root", "<Schema/>", "malformed XML"},
		{"Malformed", "<Root><FullTextIndex></Root>", "malformed XML"},
		{
			"Managed property without name",
			`<Root><FullTextIndex><ManagedProperty type="text"/></FullTextIndex></Root>`,
			`"FullTextIndex[0]/ManagedProperty[0]": attribute name is required`,
		},
		{
			"Managed property without type",
			`<Root><FullTextIndex/><FullTextIndex><ManagedProperty name="A"/><ManagedProperty name="B"/></FullTextIndex></Root>`,
			`"FullTextIndex[1]/ManagedProperty[0]": attribute type is required`,
		},
		{
			"Crawled property without category",
			`<Root><FullTextIndex><ManagedProperty name="A" type="text"><CrawledProperty name="a" category="C"/><CrawledProperty name="b"/></ManagedProperty></FullTextIndex></Root>`,
			`"FullTextIndex[0]/ManagedProperty[0]/CrawledProperty[1]": attribute category is required`,
		},
		{
			"Crawled property without name",
			`<Root><FullTextIndex><ManagedProperty name="A" type="text"><CrawledProperty category="C"/></ManagedProperty></FullTextIndex></Root>`,
			`"FullTextIndex[0]/ManagedProperty[0]/CrawledProperty[0]": attribute name is required`,
		},
		{
			"Bad boolean",
			`<Root><FullTextIndex><ManagedProperty name="A" type="text" query="maybe"/></FullTextIndex></Root>`,
			"attribute query is not a boolean",
		},
		{
			"Bad index boolean",
			`<Root><FullTextIndex stemming="on"/></Root>`,
			`"FullTextIndex[0]": attribute stemming is not a boolean`,
		},
		{
			"Non-integer level",
			`<Root><FullTextIndex><ManagedProperty name="A" type="text" level="high"/></FullTextIndex></Root>`,
			`attribute level must be an integer (value "high")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatXML)
			require.Error(t, err)
			assert.True(t, errs.Has(err, errs.DocumentInvalid), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseYAML_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"Empty", "\n", "document is empty"},
		{"Missing root key", "indexes: []\n", "malformed YAML"},
		{"Root key absent", "# nothing\n{}\n", "key fullTextIndexes is required"},
		{"Unknown field", "fullTextIndexes:\n  - name: A\n    colour: red\n", "malformed YAML"},
		{"Non-integer level", "fullTextIndexes:\n  - managedProperties:\n      - name: A\n        type: text\n        level: high\n", "malformed YAML"},
		{
			"Missing type",
			"fullTextIndexes:\n  - managedProperties:\n      - name: A\n",
			`"FullTextIndex[0]/ManagedProperty[0]": attribute type is required`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			require.Error(t, err)
			assert.True(t, errs.Has(err, errs.DocumentInvalid), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBooleanLiterals(t *testing.T) {
	tests := []struct {
		literal string
		want    bool
	}{
		{"true", true},
		{"yes", true},
		{"1", true},
		{"TRUE", true},
		{"false", false},
		{"no", false},
		{"0", false},
	}

	for _, tt := range tests {
		t.Run(tt.literal, func(t *testing.T) {
			docs := map[Format]string{
				FormatXML: `<Root><FullTextIndex stemming="` + tt.literal + `"><ManagedProperty name="A" type="text" query="` + tt.literal +
					`" refine="` + tt.literal + `" stemming="` + tt.literal + `" merge="` + tt.literal + `"/></FullTextIndex></Root>`,
				FormatYAML: "fullTextIndexes:\n  - stemming: " + tt.literal + "\n    managedProperties:\n      - name: A\n        type: text\n" +
					"        query: " + tt.literal + "\n        refine: " + tt.literal + "\n        stemming: " + tt.literal +
					"\n        merge: " + tt.literal + "\n",
			}
			for format, data := range docs {
				doc, err := Parse([]byte(data), format)
				require.NoError(t, err, format)

				idx := doc.Indexes[0]
				mp := idx.ManagedProperties[0]
				for _, got := range []*bool{idx.Stemming, mp.Queryable, mp.Refinable, mp.Stemming, mp.MergeCrawled} {
					require.NotNil(t, got, format)
					assert.Equal(t, tt.want, *got, format)
				}
			}
		})
	}
}

func TestParseYAML_Booleans(t *testing.T) {
	t.Run("Quoted and commented", func(t *testing.T) {
		data := "fullTextIndexes:\n  - managedProperties:\n      - name: A\n        type: text\n        query: \"yes\"\n        refine: no # not refinable\n"
		doc, err := Parse([]byte(data), FormatYAML)
		require.NoError(t, err)

		mp := doc.Indexes[0].ManagedProperties[0]
		assert.True(t, *mp.Queryable)
		assert.False(t, *mp.Refinable)
		assert.Nil(t, mp.Stemming)
		assert.Nil(t, mp.MergeCrawled)
	})

	t.Run("Unknown literal", func(t *testing.T) {
		data := "fullTextIndexes:\n  - managedProperties:\n      - name: A\n        type: text\n        merge: maybe\n"
		_, err := Parse([]byte(data), FormatYAML)
		assert.True(t, errs.Has(err, errs.DocumentInvalid), "got %v", err)
		assert.Contains(t, err.Error(), `"FullTextIndex[0]/ManagedProperty[0]": attribute merge is not a boolean`)
		assert.Contains(t, err.Error(), "legal: true, false, yes, no, 1, 0")
	})
}

func TestValidate_DuplicateManagedProperty(t *testing.T) {
	data := `<Root>
  <FullTextIndex><ManagedProperty name="Title" type="text" level="3"/></FullTextIndex>
  <FullTextIndex name="Products"><ManagedProperty name="Title" type="text" level="5"/></FullTextIndex>
</Root>`

	_, err := Parse([]byte(data), FormatXML)
	assert.True(t, errs.Has(err, errs.DocumentInvalid), "got %v", err)
	assert.Contains(t, err.Error(), `"FullTextIndex[1]/ManagedProperty[0]": managed property "Title" is already declared at FullTextIndex[0]/ManagedProperty[0]`)
}

func TestParseYAML_EmptyIndexList(t *testing.T) {
	doc, err := Parse([]byte("fullTextIndexes: []\n"), FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, doc.Indexes)
}

func TestFormats(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("schema.yml"))
	assert.Equal(t, FormatYAML, FormatOf("s3://bucket/prod/schema.YAML"))
	assert.Equal(t, FormatXML, FormatOf("schema.xml"))
	assert.Equal(t, FormatXML, FormatOf("schema"))

	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseFormat("toml")
	assert.True(t, errs.Has(err, errs.InvalidEnumValue))
	assert.Contains(t, err.Error(), "legal: xml, yaml")

	_, err = Example("json")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("Local XML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.xml")
		require.NoError(t, os.WriteFile(path, mustExample(t, FormatXML), 0o600))

		doc, err := Load(ctx, path, nil)
		require.NoError(t, err)
		assert.Len(t, doc.Indexes, 2)
	})

	t.Run("Local YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "schema.yaml")
		require.NoError(t, os.WriteFile(path, mustExample(t, FormatYAML), 0o600))

		doc, err := Load(ctx, path, nil)
		require.NoError(t, err)
		assert.Len(t, doc.Indexes, 2)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(ctx, filepath.Join(t.TempDir(), "absent.xml"), nil)
		assert.ErrorContains(t, err, "failed to read document")
	})

	t.Run("Object storage", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", ctx, "schemas").Return(true, nil)
		client.On("GetObject", ctx, "schemas", "search.yaml", mock.Anything).
			Return(io.NopCloser(strings.NewReader(string(mustExample(t, FormatYAML)))), nil)

		doc, err := Load(ctx, "s3://schemas/search.yaml", client)
		require.NoError(t, err)
		assert.Len(t, doc.Indexes, 2)
		client.AssertExpectations(t)
	})

	t.Run("Object storage without client", func(t *testing.T) {
		_, err := Load(ctx, "s3://schemas/search.xml", nil)
		assert.ErrorContains(t, err, "no object storage configured")
	})
}
