package schema

import (
	"context"
	"fmt"
	"os"

	"search-schema/core/storage"
)

// Load reads and parses the document at location, a local path or an s3://bucket/key
// URI. The format follows the extension. client may be nil for local paths.
func Load(ctx context.Context, location string, client storage.Client) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if storage.IsURI(location) {
		if client == nil {
			return nil, fmt.Errorf("no object storage configured to read %s", location)
		}
		data, err = storage.ReadObject(ctx, client, location)
	} else {
		data, err = os.ReadFile(location)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", location, err)
	}

	return Parse(data, FormatOf(location))
}
