// Package metastore defines the client contract of the search metadata store and the
// entities it holds.
//
// The store owns all persistent state. Getters return (nil, nil) when the entity is
// absent; updates and deletes of absent entities return ErrNotFound. Implementations
// live in subpackages:
//
//   - memstore: in-memory store that records every mutation (used in tests).
//   - sqlstore: gorm-backed store on MySQL or SQLite.
//   - mocks: testify mock of Store.
package metastore
