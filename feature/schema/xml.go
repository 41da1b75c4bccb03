package schema

import (
	"bytes"
	"encoding/xml"
	"strconv"

	"search-schema/core/errs"
	"search-schema/core/reconcile"
	"search-schema/core/registry"
)

type xmlRoot struct {
	XMLName xml.Name   `xml:"Root"`
	Indexes []xmlIndex `xml:"FullTextIndex"`
}

type xmlIndex struct {
	Name        *string       `xml:"name,attr"`
	Description *string       `xml:"description,attr"`
	Stemming    *string       `xml:"stemming,attr"`
	Properties  []xmlProperty `xml:"ManagedProperty"`
}

type xmlProperty struct {
	Name        *string      `xml:"name,attr"`
	Type        *string      `xml:"type,attr"`
	Description *string      `xml:"description,attr"`
	Sort        *string      `xml:"sort,attr"`
	Query       *string      `xml:"query,attr"`
	Refine      *string      `xml:"refine,attr"`
	Stemming    *string      `xml:"stemming,attr"`
	Merge       *string      `xml:"merge,attr"`
	Summary     *string      `xml:"summary,attr"`
	Level       *string      `xml:"level,attr"`
	Crawled     []xmlCrawled `xml:"CrawledProperty"`
}

type xmlCrawled struct {
	Name     *string `xml:"name,attr"`
	Category *string `xml:"category,attr"`
	Type     *string `xml:"type,attr"`
}

func parseXML(data []byte) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, invalid("Root", "document is empty")
	}

	var root xmlRoot
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, errs.Wrap(errs.DocumentInvalid, err, "malformed XML").WithEntity("element", "Root")
	}

	doc := &Document{Indexes: make([]IndexNode, 0, len(root.Indexes))}
	for i, xi := range root.Indexes {
		path := indexPath(i)
		stemming, err := parseBoolAttr(path, "stemming", xi.Stemming)
		if err != nil {
			return nil, err
		}
		node := IndexNode{FullTextIndexSpec: reconcile.FullTextIndexSpec{
			Name:        deref(xi.Name),
			Description: xi.Description,
			Stemming:    stemming,
		}}

		for j, xp := range xi.Properties {
			mp, err := xp.node(propertyPath(i, j))
			if err != nil {
				return nil, err
			}
			for _, xc := range xp.Crawled {
				mp.CrawledProperties = append(mp.CrawledProperties, reconcile.CrawledPropertySpec{
					Name:     deref(xc.Name),
					Category: deref(xc.Category),
					Type:     xc.Type,
				})
			}
			node.ManagedProperties = append(node.ManagedProperties, mp)
		}
		doc.Indexes = append(doc.Indexes, node)
	}
	return doc, nil
}

func (xp xmlProperty) node(path string) (PropertyNode, error) {
	spec := reconcile.ManagedPropertySpec{
		Name:        deref(xp.Name),
		Type:        deref(xp.Type),
		Description: xp.Description,
		Sort:        xp.Sort,
		Summary:     xp.Summary,
	}

	bools := []struct {
		attr string
		raw  *string
		dst  **bool
	}{
		{"query", xp.Query, &spec.Queryable},
		{"refine", xp.Refine, &spec.Refinable},
		{"stemming", xp.Stemming, &spec.Stemming},
		{"merge", xp.Merge, &spec.MergeCrawled},
	}
	for _, b := range bools {
		v, err := parseBoolAttr(path, b.attr, b.raw)
		if err != nil {
			return PropertyNode{}, err
		}
		*b.dst = v
	}

	if xp.Level != nil {
		level, err := strconv.Atoi(*xp.Level)
		if err != nil {
			e := invalid(path, "attribute level must be an integer")
			e.Value = *xp.Level
			return PropertyNode{}, e
		}
		spec.Level = &level
	}
	return PropertyNode{ManagedPropertySpec: spec}, nil
}

func parseBoolAttr(path, attr string, raw *string) (*bool, error) {
	if raw == nil {
		return nil, nil
	}
	v, err := registry.ParseBool(*raw)
	if err != nil {
		return nil, errs.Wrap(errs.DocumentInvalid, err, "attribute %s is not a boolean", attr).WithEntity("element", path)
	}
	return &v, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
