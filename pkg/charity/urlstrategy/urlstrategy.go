package urlstrategy

import (
	"context"
	"fmt"
	"strings"
)

// URLStrategy defines the interface for turning object keys into the URLs
// stored on records and served to the public site.
type URLStrategy interface {
	// GeneratePublicURL creates the URL persisted alongside a record
	GeneratePublicURL(ctx context.Context, objectKey string) (string, error)

	// ObjectKeyFromURL recovers the object key from a stored URL. It
	// reports false when the URL was not produced by this strategy.
	ObjectKeyFromURL(url string) (string, bool)
}

// PublicBaseStrategy generates URLs by joining a public base URL (a CDN or
// bucket website endpoint) with the object key.
type PublicBaseStrategy struct {
	BaseURL string // e.g., "https://assets.example.org"
}

// NewPublicBaseStrategy creates a new public-base URL strategy
func NewPublicBaseStrategy(baseURL string) *PublicBaseStrategy {
	return &PublicBaseStrategy{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

func (s *PublicBaseStrategy) GeneratePublicURL(ctx context.Context, objectKey string) (string, error) {
	if s.BaseURL == "" {
		return "", fmt.Errorf("public base URL not configured")
	}
	return fmt.Sprintf("%s/%s", s.BaseURL, objectKey), nil
}

func (s *PublicBaseStrategy) ObjectKeyFromURL(url string) (string, bool) {
	if s.BaseURL == "" {
		return "", false
	}
	key := strings.TrimPrefix(url, s.BaseURL+"/")
	if key == url || key == "" {
		return "", false
	}
	return key, true
}

// Signer is the subset of a storage backend able to presign download URLs.
type Signer interface {
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)
}

// SignedStrategy delegates URL generation to the storage backend's presigner.
// It cannot recover keys from its URLs, so callers must persist object keys
// separately when using it.
type SignedStrategy struct {
	signer Signer
}

func NewSignedStrategy(signer Signer) *SignedStrategy {
	return &SignedStrategy{signer: signer}
}

func (s *SignedStrategy) GeneratePublicURL(ctx context.Context, objectKey string) (string, error) {
	return s.signer.GetDownloadURL(ctx, objectKey, "")
}

func (s *SignedStrategy) ObjectKeyFromURL(url string) (string, bool) {
	return "", false
}
