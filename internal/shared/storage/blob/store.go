package blob

import (
	"context"
	"io"
)

// Store is the blob-store collaborator: opaque references in, bytes out. The
// pipeline never inspects references beyond passing them back to Open.
type Store interface {
	Upload(ctx context.Context, fileName string, r io.Reader) (ref string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}
