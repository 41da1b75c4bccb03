// Package config loads the tool's configuration.
//
// Values come from environment variables, optionally seeded from a .env file, on top of
// the defaults declared in `default` struct tags. Keys are nested by section and mapped
// from upper-case env names: STORE_DRIVER sets store.driver.
//
// Sections:
//   - Store: metadata store database (driver, host, port, credentials, name)
//   - Storage: S3/MinIO endpoint and credentials for s3:// documents
//   - Log: logging level and format
//
//	cfg, err := config.LoadConfig(".")
package config
