package objectkey

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Storage folders, one per asset category. Keys generated under these
// prefixes are what the public URLs resolve to, so renaming a folder is a
// breaking change for already-published assets.
const (
	FolderProductImages     = "projects-images"
	FolderContentPostImages = "content-posts-images"
	FolderContentPostVideos = "content-posts-videos"
	FolderCarouselImages    = "carousel-images"
	FolderPageDocuments     = "page-documents"
)

// Generator defines the interface for object key generation strategies
type Generator interface {
	// GenerateKey creates an object key for storage backends
	GenerateKey(folder, fileName string) string
}

// UUIDGenerator produces flat keys of the form <folder>/<uuid><ext>. The
// original filename contributes only its extension, so uploads can never
// collide or traverse outside their folder.
type UUIDGenerator struct{}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) GenerateKey(folder, fileName string) string {
	ext := strings.ToLower(path.Ext(path.Base(fileName)))
	return fmt.Sprintf("%s/%s%s", folder, uuid.New(), ext)
}
