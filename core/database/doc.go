// Package database opens the gorm connection backing the metadata store.
//
// Two drivers are supported: mysql for shared deployments and sqlite for a local
// database file. The schema itself is created by metastore/sqlstore.Migrate.
//
//	db, err := database.Connect(cfg.Store)
package database
