// Package storage reads schema documents from object storage.
//
// It wraps the MinIO Go client behind a two-method Client interface so document
// loading can be tested with core/storage/mocks. Both AWS S3 and self-hosted MinIO
// endpoints work.
//
// Locations use the form s3://bucket/key:
//
//	client, err := storage.NewClient(cfg.Storage)
//	data, err := storage.ReadObject(ctx, client, "s3://schemas/search.xml")
package storage
