package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/alamana-org/charity-server/pkg/charity"
	"github.com/alamana-org/charity-server/pkg/charity/auth"
	"github.com/alamana-org/charity-server/pkg/charity/repo/memory"
	repopg "github.com/alamana-org/charity-server/pkg/charity/repo/postgres"
	fsstorage "github.com/alamana-org/charity-server/pkg/charity/storage/fs"
	memorystorage "github.com/alamana-org/charity-server/pkg/charity/storage/memory"
	s3storage "github.com/alamana-org/charity-server/pkg/charity/storage/s3"
	"github.com/alamana-org/charity-server/pkg/charity/urlstrategy"
)

// ServerConfig is read from the environment.
//
//	DATABASE_URL       postgres connection string; empty uses the in-memory store
//	STORAGE_BACKEND    "memory", "fs" or "s3"
//	ASSET_BASE_URL     public prefix persisted in asset URLs (CDN, bucket site,
//	                   or this server's /uploads mount)
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL string `env:"DATABASE_URL"`

	StorageBackend string `env:"STORAGE_BACKEND" env-default:"memory"`
	AssetBaseURL   string `env:"ASSET_BASE_URL" env-default:"/uploads"`

	FSBaseDir string `env:"FS_BASE_DIR" env-default:"./data/uploads"`

	S3Region          string `env:"S3_REGION"`
	S3Bucket          string `env:"S3_BUCKET"`
	S3AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
	S3SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
	S3Endpoint        string `env:"S3_ENDPOINT"`
	S3UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" env-default:"false"`
	S3CreateBucket    bool   `env:"S3_CREATE_BUCKET" env-default:"false"`
	S3CacheControl    string `env:"S3_CACHE_CONTROL" env-default:"public, max-age=31536000, immutable"`

	JWTSecret     string `env:"JWT_SECRET"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads the configuration from the environment and validates it
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.StorageBackend {
	case "memory", "fs":
	case "s3":
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET is required when using the s3 backend")
		}
	default:
		return fmt.Errorf("unsupported storage backend: %s", c.StorageBackend)
	}
	return nil
}

// BuildRepository creates a Repository from the configuration. A postgres
// repository when DATABASE_URL is set, in-memory otherwise.
func (c *ServerConfig) BuildRepository(ctx context.Context) (charity.Repository, error) {
	if c.DatabaseURL == "" {
		return memory.New(), nil
	}

	if !strings.HasPrefix(c.DatabaseURL, "postgres://") && !strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme: %s", c.DatabaseURL)
	}

	poolCfg, err := pgxpool.ParseConfig(c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return repopg.NewWithPool(pool), nil
}

// BuildBlobStore creates the configured storage backend
func (c *ServerConfig) BuildBlobStore() (charity.BlobStore, error) {
	switch c.StorageBackend {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir:   c.FSBaseDir,
			URLPrefix: c.AssetBaseURL,
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3Region,
			Bucket:                 c.S3Bucket,
			AccessKeyID:            c.S3AccessKeyID,
			SecretAccessKey:        c.S3SecretAccessKey,
			Endpoint:               c.S3Endpoint,
			UsePathStyle:           c.S3UsePathStyle,
			CreateBucketIfNotExist: c.S3CreateBucket,
			CacheControl:           c.S3CacheControl,
		})
	default:
		return nil, fmt.Errorf("unsupported storage backend: %s", c.StorageBackend)
	}
}

// BuildService wires the repository, storage backend and URL strategy into a
// charity.Service
func (c *ServerConfig) BuildService(ctx context.Context, logger *slog.Logger) (charity.Service, charity.Repository, charity.BlobStore, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build repository: %w", err)
	}

	store, err := c.BuildBlobStore()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to build storage backend: %w", err)
	}

	svc, err := charity.New(
		charity.WithRepository(repo),
		charity.WithBlobStore(store),
		charity.WithURLStrategy(urlstrategy.NewPublicBaseStrategy(c.AssetBaseURL)),
		charity.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, nil, err
	}

	return svc, repo, store, nil
}

// BuildAuth creates the auth service from the configuration
func (c *ServerConfig) BuildAuth(repo charity.Repository, logger *slog.Logger) (*auth.Service, error) {
	return auth.New(repo, c.JWTSecret,
		auth.WithBootstrapAdmin(c.AdminEmail, c.AdminPassword),
		auth.WithLogger(logger),
	)
}
