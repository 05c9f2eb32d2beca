// Package objectstore is the image blob boundary. Uploads return the
// absolute URL the content documents reference. Nothing in the application
// deletes an uploaded object; replacing an image leaves the old blob
// behind.
package objectstore

import (
	"context"
	"io"
)

// ObjectStore stores uploaded binaries under slash-separated paths and
// resolves each stored object to an absolute, publicly fetchable URL.
type ObjectStore interface {
	// Upload stores the bytes read from r at path and returns the URL the
	// object is reachable at.
	Upload(ctx context.Context, path, contentType string, r io.Reader) (string, error)
}
