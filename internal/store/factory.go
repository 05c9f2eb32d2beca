package store

import (
	"context"
	"fmt"

	"github.com/moizhassan7/crisp-cms/internal/config"
)

// NewFromConfig creates a Store implementation based on the store config type.
func NewFromConfig(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Type {
	case "memory":
		return NewMemoryStore(), nil
	case "mongo":
		if cfg.MongoURI == "" || cfg.MongoDatabase == "" {
			return nil, fmt.Errorf("mongo store requires mongo_uri and mongo_database to be set")
		}
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "postgres":
		return NewSQLStore(cfg)
	default:
		return nil, fmt.Errorf("unknown store type: %s", cfg.Type)
	}
}
