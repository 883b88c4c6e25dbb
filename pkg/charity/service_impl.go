package charity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alamana-org/charity-server/pkg/charity/objectkey"
	"github.com/alamana-org/charity-server/pkg/charity/urlstrategy"
)

// service implements the Service interface
type service struct {
	repository Repository
	blobStore  BlobStore
	keys       objectkey.Generator
	urls       urlstrategy.URLStrategy
	logger     *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the repository for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithKeyGenerator sets the object key generation strategy
func WithKeyGenerator(gen objectkey.Generator) Option {
	return func(s *service) {
		s.keys = gen
	}
}

// WithURLStrategy sets the public URL strategy
func WithURLStrategy(strategy urlstrategy.URLStrategy) Option {
	return func(s *service) {
		s.urls = strategy
	}
}

// WithLogger sets the logger for the service
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		keys: objectkey.NewUUIDGenerator(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.urls == nil {
		return nil, fmt.Errorf("url strategy is required")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return s, nil
}

// uploadAsset stores one incoming file under the given folder and returns
// the generated object key and its public URL. On URL generation failure the
// freshly uploaded object is removed again.
func (s *service) uploadAsset(ctx context.Context, folder string, file *FileUpload) (string, string, error) {
	key := s.keys.GenerateKey(folder, file.FileName)

	err := s.blobStore.UploadWithParams(ctx, file.Reader, UploadParams{
		ObjectKey: key,
		MimeType:  file.ContentType,
	})
	if err != nil {
		return "", "", &StorageError{Key: key, Op: "upload", Err: err}
	}

	url, err := s.urls.GeneratePublicURL(ctx, key)
	if err != nil {
		if delErr := s.blobStore.Delete(ctx, key); delErr != nil {
			s.logger.Warn("failed to clean up object after url generation failure",
				"key", key, "error", delErr)
		}
		return "", "", &StorageError{Key: key, Op: "url", Err: err}
	}

	return key, url, nil
}

// removeAssetByURL deletes the stored object a persisted URL points at.
// Replaced and orphaned assets are removed best-effort: a storage failure
// is logged, never surfaced.
func (s *service) removeAssetByURL(ctx context.Context, url string) {
	if url == "" {
		return
	}
	key, ok := s.urls.ObjectKeyFromURL(url)
	if !ok {
		s.logger.Warn("cannot derive object key from url, leaving asset in place", "url", url)
		return
	}
	s.removeAsset(ctx, key)
}

func (s *service) removeAsset(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.blobStore.Delete(ctx, key); err != nil {
		s.logger.Warn("failed to delete stored asset", "key", key, "error", err)
	}
}

// Product operations

func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*Product, error) {
	if req.Name == "" || req.Description == "" || req.Category == "" {
		return nil, fmt.Errorf("%w: name, description and category are required", ErrMissingField)
	}
	if req.Image == nil {
		return nil, fmt.Errorf("%w: image", ErrMissingFile)
	}

	_, imageURL, err := s.uploadAsset(ctx, objectkey.FolderProductImages, req.Image)
	if err != nil {
		return nil, err
	}

	var secondaryURL string
	if req.SecondaryImage != nil {
		_, secondaryURL, err = s.uploadAsset(ctx, objectkey.FolderProductImages, req.SecondaryImage)
		if err != nil {
			s.removeAssetByURL(ctx, imageURL)
			return nil, err
		}
	}

	highest, err := s.repository.HighestProductRang(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next rank: %w", err)
	}

	now := time.Now().UTC()
	product := &Product{
		ID:                uuid.New(),
		Name:              req.Name,
		Description:       req.Description,
		ShortDescription:  req.ShortDescription,
		Category:          req.Category,
		ImageURL:          imageURL,
		SecondaryImageURL: secondaryURL,
		Rang:              highest + 1,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if err := s.repository.CreateProduct(ctx, product); err != nil {
		s.removeAssetByURL(ctx, imageURL)
		s.removeAssetByURL(ctx, secondaryURL)
		return nil, &EntityError{Entity: "product", ID: product.ID, Op: "create", Err: err}
	}

	return product, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "product", ID: id, Op: "get", Err: err}
	}
	return product, nil
}

func (s *service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*Product, error) {
	product, err := s.repository.GetProduct(ctx, req.ID)
	if err != nil {
		return nil, &EntityError{Entity: "product", ID: req.ID, Op: "update", Err: err}
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ShortDescription != nil {
		product.ShortDescription = *req.ShortDescription
	}
	if req.Category != nil {
		product.Category = *req.Category
	}

	if req.Image != nil {
		_, url, err := s.uploadAsset(ctx, objectkey.FolderProductImages, req.Image)
		if err != nil {
			return nil, err
		}
		s.removeAssetByURL(ctx, product.ImageURL)
		product.ImageURL = url
	}
	if req.SecondaryImage != nil {
		_, url, err := s.uploadAsset(ctx, objectkey.FolderProductImages, req.SecondaryImage)
		if err != nil {
			return nil, err
		}
		s.removeAssetByURL(ctx, product.SecondaryImageURL)
		product.SecondaryImageURL = url
	}

	product.UpdatedAt = time.Now().UTC()
	if err := s.repository.UpdateProduct(ctx, product); err != nil {
		return nil, &EntityError{Entity: "product", ID: req.ID, Op: "update", Err: err}
	}

	return product, nil
}

func (s *service) DeleteProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	product, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "product", ID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteProduct(ctx, id); err != nil {
		return nil, &EntityError{Entity: "product", ID: id, Op: "delete", Err: err}
	}

	s.removeAssetByURL(ctx, product.ImageURL)
	s.removeAssetByURL(ctx, product.SecondaryImageURL)

	return product, nil
}

func (s *service) ListProducts(ctx context.Context, filters ProductFilters) ([]*Product, error) {
	products, err := s.repository.ListProducts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

func (s *service) MoveProduct(ctx context.Context, id uuid.UUID, direction MoveDirection) (*MoveResult, error) {
	product, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "product", ID: id, Op: "move", Err: err}
	}

	products, err := s.repository.ListProducts(ctx, ProductFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	neighborID, ok := neighborByRang(direction, product.Rang, products, func(p *Product) (uuid.UUID, int) {
		return p.ID, p.Rang
	})
	if !ok {
		// Already first or last; nothing to do.
		return &MoveResult{Moved: false}, nil
	}

	return s.SwapProducts(ctx, id, neighborID)
}

func (s *service) SwapProducts(ctx context.Context, currentID, targetID uuid.UUID) (*MoveResult, error) {
	if currentID == targetID {
		return nil, ErrSelfSwap
	}

	current, target, err := s.repository.SwapProductRangs(ctx, currentID, targetID)
	if err != nil {
		return nil, &EntityError{Entity: "product", ID: currentID, Op: "swap", Err: err}
	}

	return &MoveResult{
		Moved:   true,
		Current: &RankedItem{ID: current.ID, Rang: current.Rang},
		Target:  &RankedItem{ID: target.ID, Rang: target.Rang},
	}, nil
}

// neighborByRang returns the id of the item adjacent to rang in the given
// direction: the highest rank below it for up, the lowest rank above it for
// down. ok is false at the boundary.
func neighborByRang[T any](direction MoveDirection, rang int, items []T, rank func(T) (uuid.UUID, int)) (uuid.UUID, bool) {
	var (
		bestID   uuid.UUID
		bestRang int
		found    bool
	)
	for _, item := range items {
		id, r := rank(item)
		switch direction {
		case MoveUp:
			if r < rang && (!found || r > bestRang) {
				bestID, bestRang, found = id, r, true
			}
		case MoveDown:
			if r > rang && (!found || r < bestRang) {
				bestID, bestRang, found = id, r, true
			}
		}
	}
	return bestID, found
}

// Content post operations

func (s *service) CreateContentPost(ctx context.Context, req CreateContentPostRequest) (*ContentPost, error) {
	if req.Title == "" || req.Description == "" {
		return nil, fmt.Errorf("%w: title and description are required", ErrMissingField)
	}
	if req.Image == nil {
		return nil, fmt.Errorf("%w: image", ErrMissingFile)
	}

	_, imageURL, err := s.uploadAsset(ctx, objectkey.FolderContentPostImages, req.Image)
	if err != nil {
		return nil, err
	}

	var videoURL string
	if req.Video != nil {
		_, videoURL, err = s.uploadAsset(ctx, objectkey.FolderContentPostVideos, req.Video)
		if err != nil {
			s.removeAssetByURL(ctx, imageURL)
			return nil, err
		}
	}

	highest, err := s.repository.HighestContentPostRang(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next rank: %w", err)
	}

	now := time.Now().UTC()
	post := &ContentPost{
		ID:               uuid.New(),
		Title:            req.Title,
		Category:         req.Category,
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Date:             req.Date,
		ImageURL:         imageURL,
		VideoURL:         videoURL,
		Rang:             highest + 1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repository.CreateContentPost(ctx, post); err != nil {
		s.removeAssetByURL(ctx, imageURL)
		s.removeAssetByURL(ctx, videoURL)
		return nil, &EntityError{Entity: "content_post", ID: post.ID, Op: "create", Err: err}
	}

	return post, nil
}

func (s *service) GetContentPost(ctx context.Context, id uuid.UUID) (*ContentPost, error) {
	post, err := s.repository.GetContentPost(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "content_post", ID: id, Op: "get", Err: err}
	}
	return post, nil
}

func (s *service) UpdateContentPost(ctx context.Context, req UpdateContentPostRequest) (*ContentPost, error) {
	post, err := s.repository.GetContentPost(ctx, req.ID)
	if err != nil {
		return nil, &EntityError{Entity: "content_post", ID: req.ID, Op: "update", Err: err}
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Description != nil {
		post.Description = *req.Description
	}
	if req.ShortDescription != nil {
		post.ShortDescription = *req.ShortDescription
	}
	if req.Date != nil {
		post.Date = *req.Date
	}

	if req.Image != nil {
		_, url, err := s.uploadAsset(ctx, objectkey.FolderContentPostImages, req.Image)
		if err != nil {
			return nil, err
		}
		s.removeAssetByURL(ctx, post.ImageURL)
		post.ImageURL = url
	}
	if req.SecondaryImage != nil {
		_, url, err := s.uploadAsset(ctx, objectkey.FolderContentPostImages, req.SecondaryImage)
		if err != nil {
			return nil, err
		}
		s.removeAssetByURL(ctx, post.SecondaryImageURL)
		post.SecondaryImageURL = url
	}
	if req.Video != nil {
		_, url, err := s.uploadAsset(ctx, objectkey.FolderContentPostVideos, req.Video)
		if err != nil {
			return nil, err
		}
		s.removeAssetByURL(ctx, post.VideoURL)
		post.VideoURL = url
	}

	post.UpdatedAt = time.Now().UTC()
	if err := s.repository.UpdateContentPost(ctx, post); err != nil {
		return nil, &EntityError{Entity: "content_post", ID: req.ID, Op: "update", Err: err}
	}

	return post, nil
}

func (s *service) DeleteContentPost(ctx context.Context, id uuid.UUID) (*ContentPost, error) {
	post, err := s.repository.GetContentPost(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "content_post", ID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteContentPost(ctx, id); err != nil {
		return nil, &EntityError{Entity: "content_post", ID: id, Op: "delete", Err: err}
	}

	s.removeAssetByURL(ctx, post.ImageURL)
	s.removeAssetByURL(ctx, post.SecondaryImageURL)
	s.removeAssetByURL(ctx, post.VideoURL)

	return post, nil
}

func (s *service) ListContentPosts(ctx context.Context, filters ContentPostFilters) ([]*ContentPost, error) {
	posts, err := s.repository.ListContentPosts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list content posts: %w", err)
	}
	return posts, nil
}

func (s *service) MoveContentPost(ctx context.Context, id uuid.UUID, direction MoveDirection) (*MoveResult, error) {
	post, err := s.repository.GetContentPost(ctx, id)
	if err != nil {
		return nil, &EntityError{Entity: "content_post", ID: id, Op: "move", Err: err}
	}

	posts, err := s.repository.ListContentPosts(ctx, ContentPostFilters{})
	if err != nil {
		return nil, fmt.Errorf("failed to list content posts: %w", err)
	}

	neighborID, ok := neighborByRang(direction, post.Rang, posts, func(p *ContentPost) (uuid.UUID, int) {
		return p.ID, p.Rang
	})
	if !ok {
		return &MoveResult{Moved: false}, nil
	}

	return s.SwapContentPosts(ctx, id, neighborID)
}

func (s *service) SwapContentPosts(ctx context.Context, currentID, targetID uuid.UUID) (*MoveResult, error) {
	if currentID == targetID {
		return nil, ErrSelfSwap
	}

	current, target, err := s.repository.SwapContentPostRangs(ctx, currentID, targetID)
	if err != nil {
		return nil, &EntityError{Entity: "content_post", ID: currentID, Op: "swap", Err: err}
	}

	return &MoveResult{
		Moved:   true,
		Current: &RankedItem{ID: current.ID, Rang: current.Rang},
		Target:  &RankedItem{ID: target.ID, Rang: target.Rang},
	}, nil
}

// Carousel operations

func (s *service) AddCarouselImage(ctx context.Context, image *FileUpload) (*CarouselImage, error) {
	if image == nil {
		return nil, fmt.Errorf("%w: image", ErrMissingFile)
	}

	key, url, err := s.uploadAsset(ctx, objectkey.FolderCarouselImages, image)
	if err != nil {
		return nil, err
	}

	highest, err := s.repository.HighestCarouselOrder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine next order: %w", err)
	}

	now := time.Now().UTC()
	slide := &CarouselImage{
		ID:        uuid.New(),
		ImageURL:  url,
		ObjectKey: key,
		Order:     highest + 1,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repository.CreateCarouselImage(ctx, slide); err != nil {
		s.removeAsset(ctx, key)
		return nil, &EntityError{Entity: "carousel_image", ID: slide.ID, Op: "create", Err: err}
	}

	return slide, nil
}

func (s *service) ListCarouselImages(ctx context.Context) ([]*CarouselImage, error) {
	images, err := s.repository.ListCarouselImages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list carousel images: %w", err)
	}
	return images, nil
}

func (s *service) SetCarouselImageOrder(ctx context.Context, id uuid.UUID, order int) (*CarouselImage, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: order must be positive", ErrMissingField)
	}

	image, err := s.repository.SetCarouselImageOrder(ctx, id, order)
	if err != nil {
		return nil, &EntityError{Entity: "carousel_image", ID: id, Op: "reorder", Err: err}
	}
	return image, nil
}

func (s *service) DeleteCarouselImage(ctx context.Context, id uuid.UUID) error {
	image, err := s.repository.GetCarouselImage(ctx, id)
	if err != nil {
		return &EntityError{Entity: "carousel_image", ID: id, Op: "delete", Err: err}
	}

	if err := s.repository.DeleteCarouselImage(ctx, id); err != nil {
		return &EntityError{Entity: "carousel_image", ID: id, Op: "delete", Err: err}
	}

	if image.ObjectKey != "" {
		s.removeAsset(ctx, image.ObjectKey)
	} else {
		s.removeAssetByURL(ctx, image.ImageURL)
	}

	return nil
}

// Page content operations

func (s *service) GetPage(ctx context.Context, pageName string) (*PageContent, error) {
	if pageName == "" {
		return nil, fmt.Errorf("%w: pageName", ErrMissingField)
	}

	page, err := s.repository.GetPageContent(ctx, pageName)
	if err != nil {
		return nil, fmt.Errorf("failed to get page %q: %w", pageName, err)
	}
	return page, nil
}

func (s *service) SaveRichText(ctx context.Context, pageName, content string) (*PageContent, error) {
	if pageName == "" {
		return nil, fmt.Errorf("%w: pageName", ErrMissingField)
	}

	page, err := s.repository.SavePageContent(ctx, pageName, content)
	if err != nil {
		return nil, fmt.Errorf("failed to save page %q: %w", pageName, err)
	}
	return page, nil
}

func (s *service) AddPageDocument(ctx context.Context, req AddPageDocumentRequest) (*PageDocument, error) {
	if req.PageName == "" || req.Title == "" {
		return nil, fmt.Errorf("%w: pageName and title are required", ErrMissingField)
	}
	if req.File == nil {
		return nil, fmt.Errorf("%w: file", ErrMissingFile)
	}

	page, err := s.repository.EnsurePageContent(ctx, req.PageName)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure page %q: %w", req.PageName, err)
	}

	key, url, err := s.uploadAsset(ctx, objectkey.FolderPageDocuments, req.File)
	if err != nil {
		return nil, err
	}

	doc := &PageDocument{
		ID:            uuid.New(),
		PageContentID: page.ID,
		Title:         req.Title,
		URL:           url,
		ObjectKey:     key,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.repository.CreatePageDocument(ctx, doc); err != nil {
		s.removeAsset(ctx, key)
		return nil, &EntityError{Entity: "page_document", ID: doc.ID, Op: "create", Err: err}
	}

	return doc, nil
}

// DeletePageDocument removes the stored file first and only then the record,
// so a failed storage delete never orphans the object: the row survives and
// the delete can be retried.
func (s *service) DeletePageDocument(ctx context.Context, id uuid.UUID) error {
	doc, err := s.repository.GetPageDocument(ctx, id)
	if err != nil {
		return &EntityError{Entity: "page_document", ID: id, Op: "delete", Err: err}
	}

	key := doc.ObjectKey
	if key == "" {
		if k, ok := s.urls.ObjectKeyFromURL(doc.URL); ok {
			key = k
		}
	}
	if key != "" {
		if err := s.blobStore.Delete(ctx, key); err != nil {
			return &StorageError{Key: key, Op: "delete", Err: err}
		}
	}

	if err := s.repository.DeletePageDocument(ctx, id); err != nil {
		return &EntityError{Entity: "page_document", ID: id, Op: "delete", Err: err}
	}

	return nil
}

// Form submissions

func (s *service) SubmitContactMessage(ctx context.Context, req CreateContactMessageRequest) (*ContactMessage, error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		return nil, fmt.Errorf("%w: name, email and message are required", ErrMissingField)
	}

	msg := &ContactMessage{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repository.CreateContactMessage(ctx, msg); err != nil {
		return nil, &EntityError{Entity: "contact_message", ID: msg.ID, Op: "create", Err: err}
	}

	return msg, nil
}

func (s *service) ListContactMessages(ctx context.Context) ([]*ContactMessage, error) {
	msgs, err := s.repository.ListContactMessages(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return msgs, nil
}

func (s *service) SubmitVolunteerApplication(ctx context.Context, req CreateVolunteerApplicationRequest) (*VolunteerApplication, error) {
	if req.FullName == "" || req.Phone == "" || req.AgeCategory == "" {
		return nil, fmt.Errorf("%w: fullName, phone and ageCategory are required", ErrMissingField)
	}

	app := &VolunteerApplication{
		ID:                 uuid.New(),
		FullName:           req.FullName,
		AgeCategory:        req.AgeCategory,
		Gender:             req.Gender,
		Phone:              req.Phone,
		Email:              req.Email,
		EducationLevel:     req.EducationLevel,
		PreviousExperience: req.PreviousExperience,
		OrganizationName:   req.OrganizationName,
		InterestAreas:      req.InterestAreas,
		CreatedAt:          time.Now().UTC(),
	}

	if err := s.repository.CreateVolunteerApplication(ctx, app); err != nil {
		return nil, &EntityError{Entity: "volunteer_application", ID: app.ID, Op: "create", Err: err}
	}

	return app, nil
}

func (s *service) ListVolunteerApplications(ctx context.Context) ([]*VolunteerApplication, error) {
	apps, err := s.repository.ListVolunteerApplications(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volunteer applications: %w", err)
	}
	return apps, nil
}
