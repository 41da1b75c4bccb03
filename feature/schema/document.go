package schema

import (
	"fmt"
	"path/filepath"
	"strings"

	"search-schema/core/errs"
	"search-schema/core/reconcile"
)

// Format is a document encoding.
type Format string

const (
	FormatXML  Format = "xml"
	FormatYAML Format = "yaml"
)

// Formats lists the accepted document encodings.
var Formats = []Format{FormatXML, FormatYAML}

// ParseFormat accepts a format name, case-insensitively.
func ParseFormat(name string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(name, string(f)) {
			return f, nil
		}
	}
	return "", &errs.Error{
		Code:   errs.InvalidEnumValue,
		Entity: "document format",
		Value:  name,
		Legal:  []string{string(FormatXML), string(FormatYAML)},
	}
}

// FormatOf picks the encoding from a location's extension. Anything that is not
// .yaml or .yml is read as XML.
func FormatOf(location string) Format {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

// Document is a parsed desired-state document.
type Document struct {
	Indexes []IndexNode
}

// IndexNode is a full-text index and the managed properties declared under it.
type IndexNode struct {
	reconcile.FullTextIndexSpec
	ManagedProperties []PropertyNode
}

// PropertyNode is a managed property and the crawled properties mapped onto it.
type PropertyNode struct {
	reconcile.ManagedPropertySpec
	CrawledProperties []reconcile.CrawledPropertySpec
}

// CrawledRefs returns the identities of the node's crawled properties, in order.
func (p PropertyNode) CrawledRefs() []reconcile.CrawledRef {
	refs := make([]reconcile.CrawledRef, 0, len(p.CrawledProperties))
	for _, cp := range p.CrawledProperties {
		refs = append(refs, cp.Ref())
	}
	return refs
}

// Parse decodes data in the given format and validates the result.
func Parse(data []byte, format Format) (*Document, error) {
	var (
		doc *Document
		err error
	)
	switch format {
	case FormatXML:
		doc, err = parseXML(data)
	case FormatYAML:
		doc, err = parseYAML(data)
	default:
		f, perr := ParseFormat(string(format))
		if perr != nil {
			return nil, perr
		}
		return Parse(data, f)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func indexPath(i int) string { return fmt.Sprintf("FullTextIndex[%d]", i) }

func propertyPath(i, j int) string { return fmt.Sprintf("%s/ManagedProperty[%d]", indexPath(i), j) }

func crawledPath(i, j, k int) string {
	return fmt.Sprintf("%s/CrawledProperty[%d]", propertyPath(i, j), k)
}

func invalid(path, format string, args ...any) *errs.Error {
	return errs.New(errs.DocumentInvalid, format, args...).WithEntity("element", path)
}

// Validate checks the attributes every managed and crawled property must carry, and
// that each managed property is declared once.
func Validate(doc *Document) error {
	if doc == nil {
		return invalid("Root", "document is empty")
	}
	declared := make(map[string]string)
	for i, idx := range doc.Indexes {
		for j, mp := range idx.ManagedProperties {
			path := propertyPath(i, j)
			if mp.Name == "" {
				return invalid(path, "attribute name is required")
			}
			if mp.Type == "" {
				return invalid(path, "attribute type is required")
			}
			// A managed property belongs to at most one full-text index.
			if first, ok := declared[mp.Name]; ok {
				return invalid(path, "managed property %q is already declared at %s", mp.Name, first)
			}
			declared[mp.Name] = path
			for k, cp := range mp.CrawledProperties {
				path := crawledPath(i, j, k)
				if cp.Name == "" {
					return invalid(path, "attribute name is required")
				}
				if cp.Category == "" {
					return invalid(path, "attribute category is required")
				}
			}
		}
	}
	return nil
}
