package objectkey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUUIDGeneratorKeyShape(t *testing.T) {
	gen := NewUUIDGenerator()

	key := gen.GenerateKey(FolderProductImages, "photo.JPG")
	assert.True(t, strings.HasPrefix(key, "projects-images/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"), "extension should be lowercased")
	assert.Equal(t, 2, len(strings.Split(key, "/")), "key stays flat under its folder")
}

func TestUUIDGeneratorIgnoresFilenameBody(t *testing.T) {
	gen := NewUUIDGenerator()

	key := gen.GenerateKey(FolderPageDocuments, "../../etc/passwd")
	assert.True(t, strings.HasPrefix(key, "page-documents/"))
	assert.NotContains(t, key, "..")

	// No extension at all is fine.
	key = gen.GenerateKey(FolderCarouselImages, "noext")
	assert.True(t, strings.HasPrefix(key, "carousel-images/"))
}

func TestUUIDGeneratorUnique(t *testing.T) {
	gen := NewUUIDGenerator()

	a := gen.GenerateKey(FolderProductImages, "same.png")
	b := gen.GenerateKey(FolderProductImages, "same.png")
	assert.NotEqual(t, a, b)
}
