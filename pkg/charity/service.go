package charity

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the charity-site content library.
type Service interface {
	// Product operations
	CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) (*Product, error)
	ListProducts(ctx context.Context, filters ProductFilters) ([]*Product, error)
	MoveProduct(ctx context.Context, id uuid.UUID, direction MoveDirection) (*MoveResult, error)
	SwapProducts(ctx context.Context, currentID, targetID uuid.UUID) (*MoveResult, error)

	// Content post operations
	CreateContentPost(ctx context.Context, req CreateContentPostRequest) (*ContentPost, error)
	GetContentPost(ctx context.Context, id uuid.UUID) (*ContentPost, error)
	UpdateContentPost(ctx context.Context, req UpdateContentPostRequest) (*ContentPost, error)
	DeleteContentPost(ctx context.Context, id uuid.UUID) (*ContentPost, error)
	ListContentPosts(ctx context.Context, filters ContentPostFilters) ([]*ContentPost, error)
	MoveContentPost(ctx context.Context, id uuid.UUID, direction MoveDirection) (*MoveResult, error)
	SwapContentPosts(ctx context.Context, currentID, targetID uuid.UUID) (*MoveResult, error)

	// Carousel operations
	AddCarouselImage(ctx context.Context, image *FileUpload) (*CarouselImage, error)
	ListCarouselImages(ctx context.Context) ([]*CarouselImage, error)
	SetCarouselImageOrder(ctx context.Context, id uuid.UUID, order int) (*CarouselImage, error)
	DeleteCarouselImage(ctx context.Context, id uuid.UUID) error

	// Page content operations
	GetPage(ctx context.Context, pageName string) (*PageContent, error)
	SaveRichText(ctx context.Context, pageName, content string) (*PageContent, error)
	AddPageDocument(ctx context.Context, req AddPageDocumentRequest) (*PageDocument, error)
	DeletePageDocument(ctx context.Context, id uuid.UUID) error

	// Form submissions
	SubmitContactMessage(ctx context.Context, req CreateContactMessageRequest) (*ContactMessage, error)
	ListContactMessages(ctx context.Context) ([]*ContactMessage, error)
	SubmitVolunteerApplication(ctx context.Context, req CreateVolunteerApplicationRequest) (*VolunteerApplication, error)
	ListVolunteerApplications(ctx context.Context) ([]*VolunteerApplication, error)
}
