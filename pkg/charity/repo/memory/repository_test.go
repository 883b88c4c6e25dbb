package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alamana-org/charity-server/pkg/charity"
)

func newProduct(name string, rang int) *charity.Product {
	now := time.Now().UTC()
	return &charity.Product{
		ID:        uuid.New(),
		Name:      name,
		Category:  "education",
		Rang:      rang,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSwapProductRangs(t *testing.T) {
	repo := New()
	ctx := context.Background()

	a := newProduct("a", 0)
	b := newProduct("b", 1)
	require.NoError(t, repo.CreateProduct(ctx, a))
	require.NoError(t, repo.CreateProduct(ctx, b))

	current, target, err := repo.SwapProductRangs(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.Rang)
	assert.Equal(t, 0, target.Rang)

	// Persisted, not just returned.
	got, err := repo.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Rang)

	_, _, err = repo.SwapProductRangs(ctx, a.ID, uuid.New())
	assert.ErrorIs(t, err, charity.ErrProductNotFound)
}

func TestHighestProductRangEmpty(t *testing.T) {
	repo := New()

	highest, err := repo.HighestProductRang(context.Background())
	require.NoError(t, err)
	assert.Equal(t, -1, highest, "first product should get rang 0")
}

func TestHighestCarouselOrderEmpty(t *testing.T) {
	repo := New()

	highest, err := repo.HighestCarouselOrder(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, highest, "first slide should get order 1")
}

func TestSetCarouselImageOrderSwaps(t *testing.T) {
	repo := New()
	ctx := context.Background()

	a := &charity.CarouselImage{ID: uuid.New(), ImageURL: "a", Order: 1}
	b := &charity.CarouselImage{ID: uuid.New(), ImageURL: "b", Order: 2}
	require.NoError(t, repo.CreateCarouselImage(ctx, a))
	require.NoError(t, repo.CreateCarouselImage(ctx, b))

	moved, err := repo.SetCarouselImageOrder(ctx, a.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, moved.Order)

	other, err := repo.GetCarouselImage(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, other.Order, "displaced slide takes the vacated position")
}

func TestGetReturnsDetachedCopies(t *testing.T) {
	repo := New()
	ctx := context.Background()

	p := newProduct("a", 0)
	require.NoError(t, repo.CreateProduct(ctx, p))

	got, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	got.Name = "mutated"

	again, err := repo.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "a", again.Name)
}

func TestPageContentUpsertAndEnsure(t *testing.T) {
	repo := New()
	ctx := context.Background()

	page, err := repo.SavePageContent(ctx, "about", "v1")
	require.NoError(t, err)

	again, err := repo.SavePageContent(ctx, "about", "v2")
	require.NoError(t, err)
	assert.Equal(t, page.ID, again.ID)
	assert.Equal(t, "v2", again.Content)

	ensured, err := repo.EnsurePageContent(ctx, "about")
	require.NoError(t, err)
	assert.Equal(t, page.ID, ensured.ID)
	assert.Equal(t, "v2", ensured.Content, "ensure must not clobber existing content")

	fresh, err := repo.EnsurePageContent(ctx, "haykal")
	require.NoError(t, err)
	assert.Empty(t, fresh.Content)
}

func TestUserEmailCaseInsensitive(t *testing.T) {
	repo := New()
	ctx := context.Background()

	user := &charity.User{ID: uuid.New(), Email: "Admin@Example.org", Role: charity.RoleAdmin}
	require.NoError(t, repo.CreateUser(ctx, user))

	got, err := repo.GetUserByEmail(ctx, "admin@example.org")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	dup := &charity.User{ID: uuid.New(), Email: "admin@example.org"}
	assert.ErrorIs(t, repo.CreateUser(ctx, dup), charity.ErrDuplicateEmail)
}
