package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "memory", cfg.StorageBackend)
	assert.Equal(t, "/uploads", cfg.AssetBaseURL)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidateStorageBackend(t *testing.T) {
	cfg := &ServerConfig{Port: "8080", JWTSecret: "s", StorageBackend: "ftp"}
	assert.Error(t, cfg.Validate())

	cfg.StorageBackend = "s3"
	assert.Error(t, cfg.Validate(), "s3 requires a bucket")

	cfg.S3Bucket = "assets"
	assert.NoError(t, cfg.Validate())
}

func TestBuildMemoryWiring(t *testing.T) {
	cfg := &ServerConfig{
		Port:           "8080",
		JWTSecret:      "s",
		StorageBackend: "memory",
		AssetBaseURL:   "/uploads",
	}

	svc, repo, store, err := cfg.BuildService(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, svc)
	assert.NotNil(t, repo)
	assert.NotNil(t, store)

	authSvc, err := cfg.BuildAuth(repo, nil)
	require.NoError(t, err)
	assert.NotNil(t, authSvc)
}
