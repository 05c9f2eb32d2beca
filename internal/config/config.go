package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"
)

// Configuration is the full application configuration. It is normally read
// from a TOML file; every section has working defaults so a bare
// `crisp-cms serve` with a memory store comes up without any file at all.
type Configuration struct {
	Server      ServerConfig      `toml:"server"`
	Store       StoreConfig       `toml:"store"`
	ObjectStore ObjectStoreConfig `toml:"object_store"`
	Auth        AuthConfig        `toml:"auth"`
	Logging     LoggingConfig     `toml:"logging"`
	Contact     ContactConfig     `toml:"contact"`
}

type ServerConfig struct {
	Port         string        `toml:"port"`
	ReadTimeout  time.Duration `toml:"read_timeout"`
	WriteTimeout time.Duration `toml:"write_timeout"`
	IdleTimeout  time.Duration `toml:"idle_timeout"`
}

// StoreConfig selects the document store backend. This is a tagged union:
// the Type field determines which of the other fields are relevant.
type StoreConfig struct {
	Type string `toml:"type"` // "mongo", "postgres", or "memory"

	// Mongo-specific fields (only used when Type == "mongo")
	MongoURI      string `toml:"mongo_uri"`
	MongoDatabase string `toml:"mongo_database"`

	// Postgres-specific fields (only used when Type == "postgres")
	Host            string `toml:"host"`
	Port            string `toml:"port"`
	Username        string `toml:"username"`
	Password        string `toml:"password"`
	Name            string `toml:"name"`
	SSLMode         string `toml:"ssl_mode"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// ObjectStoreConfig selects the image blob backend, tagged-union style.
type ObjectStoreConfig struct {
	Type string `toml:"type"` // "s3", "filesystem", or "memory"

	// S3-specific fields (only used when Type == "s3")
	S3Bucket  string `toml:"s3_bucket"`
	S3Prefix  string `toml:"s3_prefix"`
	S3Region  string `toml:"s3_region"`
	S3BaseURL string `toml:"s3_base_url"` // overrides the default bucket URL, e.g. a CDN front

	// Filesystem-specific fields (only used when Type == "filesystem")
	FSRoot    string `toml:"fs_root"`
	FSBaseURL string `toml:"fs_base_url"`
}

type AuthConfig struct {
	CookieName     string        `toml:"cookie_name"`
	SessionTimeout time.Duration `toml:"session_timeout"`
}

type LoggingConfig struct {
	Level      string `toml:"level"`
	Production bool   `toml:"production"`
}

// ContactConfig feeds the static contact block of the landing payload.
type ContactConfig struct {
	CompanyName string `toml:"company_name"`
	Email       string `toml:"email"`
	Phone       string `toml:"phone"`
	Address     string `toml:"address"`
}

// Default returns a Configuration with every field set to its default.
func Default() *Configuration {
	return &Configuration{
		Server: ServerConfig{
			Port:         "8000",
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  120 * time.Second,
		},
		Store: StoreConfig{
			Type:            "memory",
			MongoURI:        "mongodb://localhost:27017",
			MongoDatabase:   "crisp",
			Host:            "localhost",
			Port:            "5432",
			Username:        "postgres",
			Password:        "password",
			Name:            "crisp_cms",
			SSLMode:         "disable",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 300,
		},
		ObjectStore: ObjectStoreConfig{
			Type:      "filesystem",
			FSRoot:    "uploads",
			FSBaseURL: "http://localhost:8000/uploads",
			S3Region:  "us-east-1",
		},
		Auth: AuthConfig{
			CookieName:     "crisp_session",
			SessionTimeout: 24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Contact: ContactConfig{
			CompanyName: "Crisp IT Solutions",
			Email:       "info@crisp-it.pk",
			Phone:       "+92 300 0000000",
			Address:     "Lahore, Pakistan",
		},
	}
}

// Load reads the TOML file at path on top of the defaults and then applies
// environment overrides. A missing file is not an error; the defaults are
// used as-is.
func Load(path string) (*Configuration, error) {
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv maps deployment environment variables over the loaded file.
func applyEnv(cfg *Configuration) {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&cfg.Server.Port, "PORT")
	set(&cfg.Store.Type, "STORE_TYPE")
	set(&cfg.Store.MongoURI, "MONGO_URI")
	set(&cfg.Store.MongoDatabase, "MONGO_DATABASE")
	set(&cfg.Store.Host, "POSTGRES_HOST")
	set(&cfg.Store.Password, "POSTGRES_PASSWORD")
	set(&cfg.ObjectStore.S3Bucket, "S3_BUCKET")
	set(&cfg.ObjectStore.S3Region, "S3_REGION")
}

// LogConfig writes the effective configuration with secrets redacted.
func LogConfig(cfg *Configuration, logger *zap.Logger) {
	logger.Info("Application configuration",
		zap.String("port", cfg.Server.Port),
		zap.Duration("read_timeout", cfg.Server.ReadTimeout),
		zap.Duration("write_timeout", cfg.Server.WriteTimeout),
		zap.String("store_type", cfg.Store.Type),
		zap.String("mongo_database", cfg.Store.MongoDatabase),
		zap.String("postgres_host", cfg.Store.Host),
		zap.String("postgres_name", cfg.Store.Name),
		zap.String("object_store_type", cfg.ObjectStore.Type),
		zap.String("s3_bucket", cfg.ObjectStore.S3Bucket),
		zap.Duration("session_timeout", cfg.Auth.SessionTimeout),
	)
}
