// Package deploy walks a schema document and drives the metadata store towards it.
//
// Deploy reconciles, for every full-text index node: the index, then each managed
// property, the categories and crawled properties under it, and finally its crawled
// mappings. Undeploy removes the declared managed properties and non-default indexes
// and lists the crawled properties left behind; those are never deleted.
//
// Both walks stop at the first error. The store keeps whatever was reconciled up to that
// point, and the returned Report still describes it.
package deploy
