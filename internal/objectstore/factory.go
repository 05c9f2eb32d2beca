package objectstore

import (
	"context"
	"fmt"

	"github.com/moizhassan7/crisp-cms/internal/config"
)

// NewFromConfig creates an ObjectStore implementation based on the config type.
func NewFromConfig(ctx context.Context, cfg config.ObjectStoreConfig) (ObjectStore, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "s3":
		return NewS3Store(ctx, cfg)
	case "filesystem":
		return NewFileSystemStore(cfg.FSRoot, cfg.FSBaseURL)
	default:
		return nil, fmt.Errorf("unknown object store type: %s", cfg.Type)
	}
}
