package memory

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
)

func TestUploadDownloadDelete(t *testing.T) {
	backend := New()
	ctx := context.Background()

	err := backend.UploadWithParams(ctx, strings.NewReader("hello"), charity.UploadParams{
		ObjectKey: "projects-images/a.jpg",
		MimeType:  "image/jpeg",
	})
	require.NoError(t, err)
	assert.True(t, backend.Has("projects-images/a.jpg"))
	assert.Equal(t, 1, backend.Len())

	body, err := backend.Download(ctx, "projects-images/a.jpg")
	require.NoError(t, err)
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	meta, err := backend.GetObjectMeta(ctx, "projects-images/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", meta.ContentType)
	assert.Equal(t, int64(5), meta.Size)

	require.NoError(t, backend.Delete(ctx, "projects-images/a.jpg"))
	assert.Equal(t, 0, backend.Len())

	assert.Error(t, backend.Delete(ctx, "projects-images/a.jpg"))
	_, err = backend.Download(ctx, "projects-images/a.jpg")
	assert.Error(t, err)
}

func TestUploadDefaultsContentType(t *testing.T) {
	backend := New()
	ctx := context.Background()

	require.NoError(t, backend.Upload(ctx, "k", strings.NewReader("x")))

	meta, err := backend.GetObjectMeta(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "application/octet-stream", meta.ContentType)
}
