package urlstrategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicBaseStrategyRoundTrip(t *testing.T) {
	s := NewPublicBaseStrategy("https://assets.example.org/")
	ctx := context.Background()

	url, err := s.GeneratePublicURL(ctx, "projects-images/abc.jpg")
	require.NoError(t, err)
	assert.Equal(t, "https://assets.example.org/projects-images/abc.jpg", url)

	key, ok := s.ObjectKeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "projects-images/abc.jpg", key)
}

func TestPublicBaseStrategyForeignURL(t *testing.T) {
	s := NewPublicBaseStrategy("https://assets.example.org")

	_, ok := s.ObjectKeyFromURL("https://other.example.com/projects-images/abc.jpg")
	assert.False(t, ok)

	_, ok = s.ObjectKeyFromURL("")
	assert.False(t, ok)
}

func TestPublicBaseStrategyUnconfigured(t *testing.T) {
	s := NewPublicBaseStrategy("")

	_, err := s.GeneratePublicURL(context.Background(), "k")
	assert.Error(t, err)

	_, ok := s.ObjectKeyFromURL("anything")
	assert.False(t, ok)
}

type fakeSigner struct{}

func (fakeSigner) GetDownloadURL(ctx context.Context, objectKey, downloadFilename string) (string, error) {
	return "https://signed.example.org/" + objectKey + "?sig=abc", nil
}

func TestSignedStrategyDelegates(t *testing.T) {
	s := NewSignedStrategy(fakeSigner{})

	url, err := s.GeneratePublicURL(context.Background(), "page-documents/doc.pdf")
	require.NoError(t, err)
	assert.Contains(t, url, "sig=abc")

	_, ok := s.ObjectKeyFromURL(url)
	assert.False(t, ok, "signed URLs are not reversible")
}
