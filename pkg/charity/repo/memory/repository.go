package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/alamana-org/charity-server/pkg/charity"
)

// Repository implements charity.Repository using in-memory storage. Useful
// for tests and local development without a database.
type Repository struct {
	mu           sync.RWMutex
	products     map[uuid.UUID]*charity.Product
	posts        map[uuid.UUID]*charity.ContentPost
	carousel     map[uuid.UUID]*charity.CarouselImage
	pages        map[uuid.UUID]*charity.PageContent
	pagesByName  map[string]uuid.UUID
	documents    map[uuid.UUID]*charity.PageDocument
	contacts     []*charity.ContactMessage
	volunteers   []*charity.VolunteerApplication
	users        map[uuid.UUID]*charity.User
	usersByEmail map[string]uuid.UUID
}

// New creates a new in-memory repository
func New() charity.Repository {
	return &Repository{
		products:     make(map[uuid.UUID]*charity.Product),
		posts:        make(map[uuid.UUID]*charity.ContentPost),
		carousel:     make(map[uuid.UUID]*charity.CarouselImage),
		pages:        make(map[uuid.UUID]*charity.PageContent),
		pagesByName:  make(map[string]uuid.UUID),
		documents:    make(map[uuid.UUID]*charity.PageDocument),
		users:        make(map[uuid.UUID]*charity.User),
		usersByEmail: make(map[string]uuid.UUID),
	}
}

// Product operations

func (r *Repository) CreateProduct(ctx context.Context, product *charity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Create a copy to avoid external modifications
	productCopy := *product
	r.products[product.ID] = &productCopy

	return nil
}

func (r *Repository) GetProduct(ctx context.Context, id uuid.UUID) (*charity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		return nil, charity.ErrProductNotFound
	}
	productCopy := *product
	return &productCopy, nil
}

func (r *Repository) UpdateProduct(ctx context.Context, product *charity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		return charity.ErrProductNotFound
	}
	productCopy := *product
	r.products[product.ID] = &productCopy

	return nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[id]; !exists {
		return charity.ErrProductNotFound
	}
	delete(r.products, id)

	return nil
}

func (r *Repository) ListProducts(ctx context.Context, filters charity.ProductFilters) ([]*charity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var products []*charity.Product
	for _, p := range r.products {
		if filters.Category != nil && !strings.EqualFold(p.Category, *filters.Category) {
			continue
		}
		productCopy := *p
		products = append(products, &productCopy)
	}

	// Ascending rang: first item shows first on the site.
	sort.Slice(products, func(i, j int) bool {
		return products[i].Rang < products[j].Rang
	})

	return products, nil
}

func (r *Repository) HighestProductRang(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// -1 when empty so the first product gets rang 0.
	highest := -1
	for _, p := range r.products {
		if p.Rang > highest {
			highest = p.Rang
		}
	}
	return highest, nil
}

func (r *Repository) SwapProductRangs(ctx context.Context, currentID, targetID uuid.UUID) (*charity.Product, *charity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.products[currentID]
	if !exists {
		return nil, nil, charity.ErrProductNotFound
	}
	target, exists := r.products[targetID]
	if !exists {
		return nil, nil, charity.ErrProductNotFound
	}

	now := time.Now().UTC()
	current.Rang, target.Rang = target.Rang, current.Rang
	current.UpdatedAt = now
	target.UpdatedAt = now

	currentCopy := *current
	targetCopy := *target
	return &currentCopy, &targetCopy, nil
}

// Content post operations

func (r *Repository) CreateContentPost(ctx context.Context, post *charity.ContentPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) GetContentPost(ctx context.Context, id uuid.UUID) (*charity.ContentPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, exists := r.posts[id]
	if !exists {
		return nil, charity.ErrContentPostNotFound
	}
	postCopy := *post
	return &postCopy, nil
}

func (r *Repository) UpdateContentPost(ctx context.Context, post *charity.ContentPost) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[post.ID]; !exists {
		return charity.ErrContentPostNotFound
	}
	postCopy := *post
	r.posts[post.ID] = &postCopy

	return nil
}

func (r *Repository) DeleteContentPost(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.posts[id]; !exists {
		return charity.ErrContentPostNotFound
	}
	delete(r.posts, id)

	return nil
}

func (r *Repository) ListContentPosts(ctx context.Context, filters charity.ContentPostFilters) ([]*charity.ContentPost, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var posts []*charity.ContentPost
	for _, p := range r.posts {
		postCopy := *p
		posts = append(posts, &postCopy)
	}

	// Descending rang: the public listing shows newest first.
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].Rang > posts[j].Rang
	})

	if filters.Limit != nil && *filters.Limit >= 0 && *filters.Limit < len(posts) {
		posts = posts[:*filters.Limit]
	}

	return posts, nil
}

func (r *Repository) HighestContentPostRang(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	highest := -1
	for _, p := range r.posts {
		if p.Rang > highest {
			highest = p.Rang
		}
	}
	return highest, nil
}

func (r *Repository) SwapContentPostRangs(ctx context.Context, currentID, targetID uuid.UUID) (*charity.ContentPost, *charity.ContentPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, exists := r.posts[currentID]
	if !exists {
		return nil, nil, charity.ErrContentPostNotFound
	}
	target, exists := r.posts[targetID]
	if !exists {
		return nil, nil, charity.ErrContentPostNotFound
	}

	now := time.Now().UTC()
	current.Rang, target.Rang = target.Rang, current.Rang
	current.UpdatedAt = now
	target.UpdatedAt = now

	currentCopy := *current
	targetCopy := *target
	return &currentCopy, &targetCopy, nil
}

// Carousel operations

func (r *Repository) CreateCarouselImage(ctx context.Context, image *charity.CarouselImage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	imageCopy := *image
	r.carousel[image.ID] = &imageCopy

	return nil
}

func (r *Repository) GetCarouselImage(ctx context.Context, id uuid.UUID) (*charity.CarouselImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	image, exists := r.carousel[id]
	if !exists {
		return nil, charity.ErrCarouselImageNotFound
	}
	imageCopy := *image
	return &imageCopy, nil
}

func (r *Repository) ListCarouselImages(ctx context.Context) ([]*charity.CarouselImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var images []*charity.CarouselImage
	for _, img := range r.carousel {
		imageCopy := *img
		images = append(images, &imageCopy)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].Order < images[j].Order
	})

	return images, nil
}

func (r *Repository) DeleteCarouselImage(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.carousel[id]; !exists {
		return charity.ErrCarouselImageNotFound
	}
	delete(r.carousel, id)

	return nil
}

func (r *Repository) HighestCarouselOrder(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// 0 when empty so the first slide gets order 1.
	highest := 0
	for _, img := range r.carousel {
		if img.Order > highest {
			highest = img.Order
		}
	}
	return highest, nil
}

func (r *Repository) SetCarouselImageOrder(ctx context.Context, id uuid.UUID, order int) (*charity.CarouselImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	image, exists := r.carousel[id]
	if !exists {
		return nil, charity.ErrCarouselImageNotFound
	}

	now := time.Now().UTC()
	// Swap with whichever slide currently holds the requested position.
	for _, other := range r.carousel {
		if other.ID != id && other.Order == order {
			other.Order = image.Order
			other.UpdatedAt = now
			break
		}
	}
	image.Order = order
	image.UpdatedAt = now

	imageCopy := *image
	return &imageCopy, nil
}

// Page content operations

func (r *Repository) GetPageContent(ctx context.Context, pageName string) (*charity.PageContent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.pagesByName[pageName]
	if !exists {
		return nil, charity.ErrPageContentNotFound
	}
	return r.pageWithDocuments(id), nil
}

// pageWithDocuments assembles a detached copy of a page and its documents.
// Callers must hold at least a read lock.
func (r *Repository) pageWithDocuments(id uuid.UUID) *charity.PageContent {
	page := r.pages[id]
	pageCopy := *page
	pageCopy.Documents = nil
	for _, doc := range r.documents {
		if doc.PageContentID == id {
			docCopy := *doc
			pageCopy.Documents = append(pageCopy.Documents, &docCopy)
		}
	}
	sort.Slice(pageCopy.Documents, func(i, j int) bool {
		return pageCopy.Documents[i].CreatedAt.Before(pageCopy.Documents[j].CreatedAt)
	})
	return &pageCopy
}

func (r *Repository) SavePageContent(ctx context.Context, pageName, content string) (*charity.PageContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	if id, exists := r.pagesByName[pageName]; exists {
		page := r.pages[id]
		page.Content = content
		page.UpdatedAt = now
		return r.pageWithDocuments(id), nil
	}

	page := &charity.PageContent{
		ID:        uuid.New(),
		PageName:  pageName,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.pages[page.ID] = page
	r.pagesByName[pageName] = page.ID

	pageCopy := *page
	return &pageCopy, nil
}

func (r *Repository) EnsurePageContent(ctx context.Context, pageName string) (*charity.PageContent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id, exists := r.pagesByName[pageName]; exists {
		return r.pageWithDocuments(id), nil
	}

	now := time.Now().UTC()
	page := &charity.PageContent{
		ID:        uuid.New(),
		PageName:  pageName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.pages[page.ID] = page
	r.pagesByName[pageName] = page.ID

	pageCopy := *page
	return &pageCopy, nil
}

func (r *Repository) CreatePageDocument(ctx context.Context, doc *charity.PageDocument) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.pages[doc.PageContentID]; !exists {
		return charity.ErrPageContentNotFound
	}
	docCopy := *doc
	r.documents[doc.ID] = &docCopy

	return nil
}

func (r *Repository) GetPageDocument(ctx context.Context, id uuid.UUID) (*charity.PageDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, charity.ErrPageDocumentNotFound
	}
	docCopy := *doc
	return &docCopy, nil
}

func (r *Repository) ListPageDocuments(ctx context.Context, pageContentID uuid.UUID) ([]*charity.PageDocument, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var docs []*charity.PageDocument
	for _, doc := range r.documents {
		if doc.PageContentID == pageContentID {
			docCopy := *doc
			docs = append(docs, &docCopy)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].CreatedAt.Before(docs[j].CreatedAt)
	})

	return docs, nil
}

func (r *Repository) DeletePageDocument(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[id]; !exists {
		return charity.ErrPageDocumentNotFound
	}
	delete(r.documents, id)

	return nil
}

// Form submissions

func (r *Repository) CreateContactMessage(ctx context.Context, msg *charity.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	msgCopy := *msg
	r.contacts = append(r.contacts, &msgCopy)

	return nil
}

func (r *Repository) ListContactMessages(ctx context.Context) ([]*charity.ContactMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msgs := make([]*charity.ContactMessage, 0, len(r.contacts))
	for _, m := range r.contacts {
		msgCopy := *m
		msgs = append(msgs, &msgCopy)
	}
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].CreatedAt.After(msgs[j].CreatedAt)
	})

	return msgs, nil
}

func (r *Repository) CreateVolunteerApplication(ctx context.Context, app *charity.VolunteerApplication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	appCopy := *app
	r.volunteers = append(r.volunteers, &appCopy)

	return nil
}

func (r *Repository) ListVolunteerApplications(ctx context.Context) ([]*charity.VolunteerApplication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	apps := make([]*charity.VolunteerApplication, 0, len(r.volunteers))
	for _, a := range r.volunteers {
		appCopy := *a
		apps = append(apps, &appCopy)
	}
	sort.Slice(apps, func(i, j int) bool {
		return apps[i].CreatedAt.After(apps[j].CreatedAt)
	})

	return apps, nil
}

// User operations

func (r *Repository) CreateUser(ctx context.Context, user *charity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(user.Email)
	if _, exists := r.usersByEmail[email]; exists {
		return charity.ErrDuplicateEmail
	}
	userCopy := *user
	r.users[user.ID] = &userCopy
	r.usersByEmail[email] = user.ID

	return nil
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*charity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, exists := r.usersByEmail[strings.ToLower(email)]
	if !exists {
		return nil, charity.ErrUserNotFound
	}
	userCopy := *r.users[id]
	return &userCopy, nil
}
