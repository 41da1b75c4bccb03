// Package schema reads desired-state documents.
//
// A document is a tree of full-text indexes, their managed properties and the crawled
// properties mapped onto each managed property. It is written in XML (root element
// Root) or YAML (top-level key fullTextIndexes); both parse into the same Document,
// so reconciliation never sees the wire format.
//
// Parsing is syntactic only: required attributes are checked and literals typed, with
// every failure reported as errs.DocumentInvalid naming the element path, for example
// FullTextIndex[0]/ManagedProperty[1]. Enumerated names and level ranges are checked
// later by the reconcilers.
package schema
