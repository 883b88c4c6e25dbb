package charity

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
)

// BlobStore defines the interface for object storage backends.
type BlobStore interface {
	// Upload uploads content directly
	Upload(ctx context.Context, objectKey string, reader io.Reader) error

	// UploadWithParams uploads content with additional parameters
	UploadWithParams(ctx context.Context, reader io.Reader, params UploadParams) error

	// Download downloads content directly
	Download(ctx context.Context, objectKey string) (io.ReadCloser, error)

	// Delete deletes content
	Delete(ctx context.Context, objectKey string) error

	// GetDownloadURL returns a URL for downloading content
	GetDownloadURL(ctx context.Context, objectKey string, downloadFilename string) (string, error)

	// GetObjectMeta retrieves metadata for an object
	GetObjectMeta(ctx context.Context, objectKey string) (*ObjectMeta, error)
}

// Repository defines the interface for persistence of all site entities.
//
// SwapProductRangs and its siblings are the only operations that touch two
// rows: implementations must execute them atomically so concurrent swaps on
// overlapping items never leave duplicate ranks observable.
type Repository interface {
	// Product operations
	CreateProduct(ctx context.Context, product *Product) error
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, product *Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	ListProducts(ctx context.Context, filters ProductFilters) ([]*Product, error)
	HighestProductRang(ctx context.Context) (int, error)
	SwapProductRangs(ctx context.Context, currentID, targetID uuid.UUID) (*Product, *Product, error)

	// Content post operations
	CreateContentPost(ctx context.Context, post *ContentPost) error
	GetContentPost(ctx context.Context, id uuid.UUID) (*ContentPost, error)
	UpdateContentPost(ctx context.Context, post *ContentPost) error
	DeleteContentPost(ctx context.Context, id uuid.UUID) error
	ListContentPosts(ctx context.Context, filters ContentPostFilters) ([]*ContentPost, error)
	HighestContentPostRang(ctx context.Context) (int, error)
	SwapContentPostRangs(ctx context.Context, currentID, targetID uuid.UUID) (*ContentPost, *ContentPost, error)

	// Carousel operations
	CreateCarouselImage(ctx context.Context, image *CarouselImage) error
	GetCarouselImage(ctx context.Context, id uuid.UUID) (*CarouselImage, error)
	ListCarouselImages(ctx context.Context) ([]*CarouselImage, error)
	DeleteCarouselImage(ctx context.Context, id uuid.UUID) error
	HighestCarouselOrder(ctx context.Context) (int, error)
	// SetCarouselImageOrder moves an image to the given order position,
	// swapping with any image already occupying it, atomically.
	SetCarouselImageOrder(ctx context.Context, id uuid.UUID, order int) (*CarouselImage, error)

	// Page content operations
	GetPageContent(ctx context.Context, pageName string) (*PageContent, error)
	// SavePageContent upserts the rich-text body keyed by page name.
	SavePageContent(ctx context.Context, pageName, content string) (*PageContent, error)
	// EnsurePageContent creates an empty record for the page name if absent,
	// without touching an existing one.
	EnsurePageContent(ctx context.Context, pageName string) (*PageContent, error)
	CreatePageDocument(ctx context.Context, doc *PageDocument) error
	GetPageDocument(ctx context.Context, id uuid.UUID) (*PageDocument, error)
	ListPageDocuments(ctx context.Context, pageContentID uuid.UUID) ([]*PageDocument, error)
	DeletePageDocument(ctx context.Context, id uuid.UUID) error

	// Form submissions
	CreateContactMessage(ctx context.Context, msg *ContactMessage) error
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)
	CreateVolunteerApplication(ctx context.Context, app *VolunteerApplication) error
	ListVolunteerApplications(ctx context.Context) ([]*VolunteerApplication, error)

	// User operations
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}

// ObjectMeta contains metadata about an object in storage.
type ObjectMeta struct {
	Key         string
	Size        int64
	ContentType string
	UpdatedAt   time.Time
	ETag        string
}

// UploadParams contains parameters for uploading an object.
type UploadParams struct {
	ObjectKey string
	MimeType  string
}
