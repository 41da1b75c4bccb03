package schema

import (
	"bytes"
	"strconv"
	"strings"

	"search-schema/core/errs"
	"search-schema/core/reconcile"

	"github.com/goccy/go-yaml"
)

type yamlRoot struct {
	Indexes *[]yamlIndex `yaml:"fullTextIndexes"`
}

type yamlIndex struct {
	Name        string         `yaml:"name"`
	Description *string        `yaml:"description"`
	Stemming    yamlBool       `yaml:"stemming"`
	Properties  []yamlProperty `yaml:"managedProperties"`
}

type yamlProperty struct {
	Name        string        `yaml:"name"`
	Type        string        `yaml:"type"`
	Description *string       `yaml:"description"`
	Sort        *string       `yaml:"sort"`
	Query       yamlBool      `yaml:"query"`
	Refine      yamlBool      `yaml:"refine"`
	Stemming    yamlBool      `yaml:"stemming"`
	Merge       yamlBool      `yaml:"merge"`
	Summary     *string       `yaml:"summary"`
	Level       *int          `yaml:"level"`
	Crawled     []yamlCrawled `yaml:"crawledProperties"`
}

type yamlCrawled struct {
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Type     *string `yaml:"type"`
}

// yamlBool keeps a boolean scalar as written so registry.Booleans decides what is
// legal, the same as for XML attributes. set is false when the key is absent.
type yamlBool struct {
	raw string
	set bool
}

func (b *yamlBool) UnmarshalYAML(data []byte) error {
	s := strings.TrimSpace(string(data))
	if i := strings.Index(s, " #"); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	} else {
		s = strings.Trim(s, "'")
	}
	b.raw, b.set = s, true
	return nil
}

func (b yamlBool) parse(path, attr string) (*bool, error) {
	if !b.set {
		return nil, nil
	}
	return parseBoolAttr(path, attr, &b.raw)
}

func parseYAML(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalid("Root", "document is empty")
	}

	var root yamlRoot
	if err := yaml.UnmarshalWithOptions(data, &root, yaml.DisallowUnknownField()); err != nil {
		return nil, errs.Wrap(errs.DocumentInvalid, err, "malformed YAML").WithEntity("element", "Root")
	}
	if root.Indexes == nil {
		return nil, invalid("Root", "key fullTextIndexes is required")
	}

	doc := &Document{Indexes: make([]IndexNode, 0, len(*root.Indexes))}
	for i, yi := range *root.Indexes {
		stemming, err := yi.Stemming.parse(indexPath(i), "stemming")
		if err != nil {
			return nil, err
		}
		node := IndexNode{FullTextIndexSpec: reconcile.FullTextIndexSpec{
			Name:        yi.Name,
			Description: yi.Description,
			Stemming:    stemming,
		}}
		for j, yp := range yi.Properties {
			mp, err := yp.node(propertyPath(i, j))
			if err != nil {
				return nil, err
			}
			for _, yc := range yp.Crawled {
				mp.CrawledProperties = append(mp.CrawledProperties, reconcile.CrawledPropertySpec{
					Name:     yc.Name,
					Category: yc.Category,
					Type:     yc.Type,
				})
			}
			node.ManagedProperties = append(node.ManagedProperties, mp)
		}
		doc.Indexes = append(doc.Indexes, node)
	}
	return doc, nil
}

func (yp yamlProperty) node(path string) (PropertyNode, error) {
	spec := reconcile.ManagedPropertySpec{
		Name:        yp.Name,
		Type:        yp.Type,
		Description: yp.Description,
		Level:       yp.Level,
		Sort:        yp.Sort,
		Summary:     yp.Summary,
	}

	bools := []struct {
		attr string
		raw  yamlBool
		dst  **bool
	}{
		{"query", yp.Query, &spec.Queryable},
		{"refine", yp.Refine, &spec.Refinable},
		{"stemming", yp.Stemming, &spec.Stemming},
		{"merge", yp.Merge, &spec.MergeCrawled},
	}
	for _, b := range bools {
		v, err := b.raw.parse(path, b.attr)
		if err != nil {
			return PropertyNode{}, err
		}
		*b.dst = v
	}
	return PropertyNode{ManagedPropertySpec: spec}, nil
}
