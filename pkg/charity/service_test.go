package charity_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
	"github.com/alamana-org/charity-server/pkg/charity/repo/memory"
	memorystorage "github.com/alamana-org/charity-server/pkg/charity/storage/memory"
	"github.com/alamana-org/charity-server/pkg/charity/urlstrategy"
)

func TestServiceCreation(t *testing.T) {
	repo := memory.New()
	store := memorystorage.New()
	urls := urlstrategy.NewPublicBaseStrategy("https://assets.test")

	tests := []struct {
		name        string
		options     []charity.Option
		expectError bool
	}{
		{
			name:        "no options should fail",
			options:     []charity.Option{},
			expectError: true,
		},
		{
			name: "missing blob store should fail",
			options: []charity.Option{
				charity.WithRepository(repo),
				charity.WithURLStrategy(urls),
			},
			expectError: true,
		},
		{
			name: "missing url strategy should fail",
			options: []charity.Option{
				charity.WithRepository(repo),
				charity.WithBlobStore(store),
			},
			expectError: true,
		},
		{
			name: "full wiring should succeed",
			options: []charity.Option{
				charity.WithRepository(repo),
				charity.WithBlobStore(store),
				charity.WithURLStrategy(urls),
			},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := charity.New(tt.options...)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, svc)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, svc)
			}
		})
	}
}

func setupTestService(t *testing.T) (charity.Service, *memorystorage.Backend) {
	t.Helper()

	store := memorystorage.New()
	svc, err := charity.New(
		charity.WithRepository(memory.New()),
		charity.WithBlobStore(store),
		charity.WithURLStrategy(urlstrategy.NewPublicBaseStrategy("https://assets.test")),
	)
	require.NoError(t, err)

	return svc, store
}

func testImage(name string) *charity.FileUpload {
	return &charity.FileUpload{
		FileName:    name,
		ContentType: "image/jpeg",
		Reader:      strings.NewReader("fake image bytes"),
	}
}

func createProduct(t *testing.T, svc charity.Service, name string) *charity.Product {
	t.Helper()

	product, err := svc.CreateProduct(context.Background(), charity.CreateProductRequest{
		Name:        name,
		Description: "description of " + name,
		Category:    "education",
		Image:       testImage(name + ".jpg"),
	})
	require.NoError(t, err)
	return product
}

func TestCreateProductAssignsIncreasingRang(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	first := createProduct(t, svc, "wells")
	second := createProduct(t, svc, "orphans")
	third := createProduct(t, svc, "meals")

	assert.Equal(t, 0, first.Rang)
	assert.Equal(t, 1, second.Rang)
	assert.Equal(t, 2, third.Rang)

	products, err := svc.ListProducts(ctx, charity.ProductFilters{})
	require.NoError(t, err)
	require.Len(t, products, 3)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, third.ID, products[2].ID)

	assert.True(t, strings.HasPrefix(first.ImageURL, "https://assets.test/projects-images/"))
	assert.Equal(t, 3, store.Len())
}

func TestCreateProductValidation(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, charity.CreateProductRequest{
		Description: "no name",
		Category:    "education",
		Image:       testImage("a.jpg"),
	})
	assert.ErrorIs(t, err, charity.ErrMissingField)

	_, err = svc.CreateProduct(ctx, charity.CreateProductRequest{
		Name:        "no image",
		Description: "desc",
		Category:    "education",
	})
	assert.ErrorIs(t, err, charity.ErrMissingFile)
}

func TestListProductsByCategory(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	createProduct(t, svc, "wells")
	other, err := svc.CreateProduct(ctx, charity.CreateProductRequest{
		Name:        "clinic",
		Description: "health project",
		Category:    "Health",
		Image:       testImage("clinic.jpg"),
	})
	require.NoError(t, err)

	category := "health"
	products, err := svc.ListProducts(ctx, charity.ProductFilters{Category: &category})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, other.ID, products[0].ID)
}

func TestMoveProductBoundaries(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	first := createProduct(t, svc, "wells")
	_ = createProduct(t, svc, "orphans")
	third := createProduct(t, svc, "meals")

	result, err := svc.MoveProduct(ctx, first.ID, charity.MoveUp)
	require.NoError(t, err)
	assert.False(t, result.Moved)

	result, err = svc.MoveProduct(ctx, third.ID, charity.MoveDown)
	require.NoError(t, err)
	assert.False(t, result.Moved)

	// Nothing changed.
	products, err := svc.ListProducts(ctx, charity.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, first.ID, products[0].ID)
	assert.Equal(t, third.ID, products[2].ID)
}

func TestMoveProductSwapsWithNeighbor(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	first := createProduct(t, svc, "wells")
	second := createProduct(t, svc, "orphans")

	result, err := svc.MoveProduct(ctx, second.ID, charity.MoveUp)
	require.NoError(t, err)
	require.True(t, result.Moved)
	assert.Equal(t, second.ID, result.Current.ID)
	assert.Equal(t, first.Rang, result.Current.Rang)
	assert.Equal(t, first.ID, result.Target.ID)
	assert.Equal(t, second.Rang, result.Target.Rang)

	products, err := svc.ListProducts(ctx, charity.ProductFilters{})
	require.NoError(t, err)
	assert.Equal(t, second.ID, products[0].ID)
	assert.Equal(t, first.ID, products[1].ID)
}

func TestSwapProductsSelfAndMissing(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, "wells")

	_, err := svc.SwapProducts(ctx, product.ID, product.ID)
	assert.ErrorIs(t, err, charity.ErrSelfSwap)

	_, err = svc.SwapProducts(ctx, product.ID, uuid.New())
	assert.ErrorIs(t, err, charity.ErrProductNotFound)

	// The failed swap must not have moved anything.
	got, err := svc.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Rang, got.Rang)
}

func TestUpdateProductKeepsOmittedFields(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, "wells")
	newName := "deep wells"

	updated, err := svc.UpdateProduct(ctx, charity.UpdateProductRequest{
		ID:   product.ID,
		Name: &newName,
	})
	require.NoError(t, err)

	assert.Equal(t, "deep wells", updated.Name)
	assert.Equal(t, product.Description, updated.Description)
	assert.Equal(t, product.ImageURL, updated.ImageURL)
	assert.Equal(t, product.Rang, updated.Rang)
	assert.Equal(t, 1, store.Len())
}

func TestUpdateProductReplacesImage(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	product := createProduct(t, svc, "wells")
	oldKey := strings.TrimPrefix(product.ImageURL, "https://assets.test/")
	require.True(t, store.Has(oldKey))

	updated, err := svc.UpdateProduct(ctx, charity.UpdateProductRequest{
		ID:    product.ID,
		Image: testImage("replacement.jpg"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, product.ImageURL, updated.ImageURL)
	assert.False(t, store.Has(oldKey), "replaced asset should be deleted")
	assert.Equal(t, 1, store.Len())
}

func TestDeleteProductLeavesRangGap(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	_ = createProduct(t, svc, "wells")
	second := createProduct(t, svc, "orphans")
	third := createProduct(t, svc, "meals")

	_, err := svc.DeleteProduct(ctx, second.ID)
	require.NoError(t, err)

	// Survivors keep their ranks, no renumbering.
	got, err := svc.GetProduct(ctx, third.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Rang)

	// The next create continues above the highest surviving rank.
	fourth := createProduct(t, svc, "books")
	assert.Equal(t, 3, fourth.Rang)

	assert.Equal(t, 3, store.Len(), "deleted product's asset should be removed")
}

func TestContentPostsListNewestFirst(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	older, err := svc.CreateContentPost(ctx, charity.CreateContentPostRequest{
		Title:       "ramadan drive",
		Description: "food baskets",
		Image:       testImage("a.jpg"),
	})
	require.NoError(t, err)

	newer, err := svc.CreateContentPost(ctx, charity.CreateContentPostRequest{
		Title:       "eid festival",
		Description: "gifts for kids",
		Image:       testImage("b.jpg"),
	})
	require.NoError(t, err)

	posts, err := svc.ListContentPosts(ctx, charity.ContentPostFilters{})
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, newer.ID, posts[0].ID)
	assert.Equal(t, older.ID, posts[1].ID)

	limit := 1
	posts, err = svc.ListContentPosts(ctx, charity.ContentPostFilters{Limit: &limit})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, newer.ID, posts[0].ID)
}

func TestMoveContentPost(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	first, err := svc.CreateContentPost(ctx, charity.CreateContentPostRequest{
		Title:       "first",
		Description: "d",
		Image:       testImage("a.jpg"),
	})
	require.NoError(t, err)
	second, err := svc.CreateContentPost(ctx, charity.CreateContentPostRequest{
		Title:       "second",
		Description: "d",
		Image:       testImage("b.jpg"),
	})
	require.NoError(t, err)

	result, err := svc.MoveContentPost(ctx, first.ID, charity.MoveDown)
	require.NoError(t, err)
	require.True(t, result.Moved)
	assert.Equal(t, second.Rang, result.Current.Rang)

	_, err = svc.SwapContentPosts(ctx, first.ID, first.ID)
	assert.ErrorIs(t, err, charity.ErrSelfSwap)
}

func TestCarouselLifecycle(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	first, err := svc.AddCarouselImage(ctx, testImage("slide1.jpg"))
	require.NoError(t, err)
	second, err := svc.AddCarouselImage(ctx, testImage("slide2.jpg"))
	require.NoError(t, err)

	// Carousel order starts at 1, not 0.
	assert.Equal(t, 1, first.Order)
	assert.Equal(t, 2, second.Order)

	moved, err := svc.SetCarouselImageOrder(ctx, second.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.Order)

	images, err := svc.ListCarouselImages(ctx)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, second.ID, images[0].ID)
	assert.Equal(t, 2, images[1].Order)

	require.NoError(t, svc.DeleteCarouselImage(ctx, first.ID))
	assert.Equal(t, 1, store.Len(), "deleted slide's image should be removed")

	_, err = svc.AddCarouselImage(ctx, nil)
	assert.ErrorIs(t, err, charity.ErrMissingFile)
}

func TestPageContentUpsert(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.GetPage(ctx, "about")
	assert.ErrorIs(t, err, charity.ErrPageContentNotFound)

	saved, err := svc.SaveRichText(ctx, "about", "<p>who we are</p>")
	require.NoError(t, err)

	again, err := svc.SaveRichText(ctx, "about", "<p>updated</p>")
	require.NoError(t, err)

	// Upsert: same record, new content.
	assert.Equal(t, saved.ID, again.ID)
	assert.Equal(t, "<p>updated</p>", again.Content)

	page, err := svc.GetPage(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, "<p>updated</p>", page.Content)
}

func TestPageDocuments(t *testing.T) {
	svc, store := setupTestService(t)
	ctx := context.Background()

	doc, err := svc.AddPageDocument(ctx, charity.AddPageDocumentRequest{
		PageName: "raports",
		Title:    "annual report 2025",
		File: &charity.FileUpload{
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			Reader:      strings.NewReader("%PDF-fake"),
		},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(doc.URL, "https://assets.test/page-documents/"))

	// The page record was created implicitly.
	page, err := svc.GetPage(ctx, "raports")
	require.NoError(t, err)
	require.Len(t, page.Documents, 1)
	assert.Equal(t, doc.ID, page.Documents[0].ID)

	require.NoError(t, svc.DeletePageDocument(ctx, doc.ID))
	assert.Equal(t, 0, store.Len())

	page, err = svc.GetPage(ctx, "raports")
	require.NoError(t, err)
	assert.Empty(t, page.Documents)

	err = svc.DeletePageDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, charity.ErrPageDocumentNotFound)
}

func TestDeletePageDocumentAbortsOnStorageFailure(t *testing.T) {
	store := memorystorage.New()
	svc, err := charity.New(
		charity.WithRepository(memory.New()),
		charity.WithBlobStore(store),
		charity.WithURLStrategy(urlstrategy.NewPublicBaseStrategy("https://assets.test")),
	)
	require.NoError(t, err)
	ctx := context.Background()

	doc, err := svc.AddPageDocument(ctx, charity.AddPageDocumentRequest{
		PageName: "raports",
		Title:    "report",
		File: &charity.FileUpload{
			FileName:    "report.pdf",
			ContentType: "application/pdf",
			Reader:      strings.NewReader("%PDF-fake"),
		},
	})
	require.NoError(t, err)

	// Remove the object out of band so the storage delete fails.
	require.NoError(t, store.Delete(ctx, docKey(doc)))

	err = svc.DeletePageDocument(ctx, doc.ID)
	require.Error(t, err)

	// The record survives: delete is retryable.
	page, err := svc.GetPage(ctx, "raports")
	require.NoError(t, err)
	assert.Len(t, page.Documents, 1)
}

func docKey(doc *charity.PageDocument) string {
	return strings.TrimPrefix(doc.URL, "https://assets.test/")
}

func TestFormSubmissions(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.SubmitContactMessage(ctx, charity.CreateContactMessageRequest{
		Name: "missing fields",
	})
	assert.ErrorIs(t, err, charity.ErrMissingField)

	msg, err := svc.SubmitContactMessage(ctx, charity.CreateContactMessageRequest{
		Name:    "Amina",
		Email:   "amina@example.org",
		Message: "How can I donate?",
	})
	require.NoError(t, err)

	msgs, err := svc.ListContactMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, msg.ID, msgs[0].ID)

	app, err := svc.SubmitVolunteerApplication(ctx, charity.CreateVolunteerApplicationRequest{
		FullName:      "Yusuf",
		AgeCategory:   "18-25",
		Phone:         "+212600000000",
		InterestAreas: "education",
	})
	require.NoError(t, err)

	apps, err := svc.ListVolunteerApplications(ctx)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, app.ID, apps[0].ID)
}
