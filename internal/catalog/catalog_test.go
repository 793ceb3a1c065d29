package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WIIN2602/Farm2Hand/internal/models"
)

func TestSeedCatalog(t *testing.T) {
	ctx := context.Background()
	c := NewSeedCatalog()

	featured, err := c.ListFeaturedProducts(ctx)
	require.NoError(t, err)
	require.Len(t, featured, 6)
	assert.False(t, featured[2].InStock)
	assert.False(t, featured[5].InStock)

	addable, err := c.ListAddableProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, addable, 4)

	categories, err := c.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 5)
	for _, cat := range categories {
		entries, err := c.ListCategoryProducts(ctx, cat.Name)
		require.NoError(t, err, cat.Name)
		assert.NotEmpty(t, entries, cat.Name)
	}
}

func TestStatic_UnknownCategory(t *testing.T) {
	_, err := NewSeedCatalog().ListCategoryProducts(context.Background(), "Seafood")
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

func TestStatic_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	c := NewSeedCatalog()

	featured, _ := c.ListFeaturedProducts(ctx)
	featured[0].Name = "changed"

	again, _ := c.ListFeaturedProducts(ctx)
	assert.Equal(t, "มะม่วงน้ำดอกไม้", again[0].Name)
}

func TestNewStatic_RequiresCuratedList(t *testing.T) {
	_, err := NewStatic(nil, nil, SeedCategories(), map[models.CategoryName][]models.CategoryProduct{})
	assert.Error(t, err)

	_, err = NewStatic([]models.Product{{ID: 0, Name: "x"}}, nil, nil, nil)
	assert.Error(t, err)
}

func TestFindProduct(t *testing.T) {
	ctx := context.Background()
	c := NewSeedCatalog()

	p, ok, err := FindProduct(ctx, c, 4)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "กล้วยหอมทอง", p.Name)

	p, ok, err = FindProduct(ctx, c, 9)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "มะเขือเทศ", p.Name)

	_, ok, err = FindProduct(ctx, c, 99)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFindCategoryProduct(t *testing.T) {
	ctx := context.Background()
	entry, ok, err := FindCategoryProduct(ctx, NewSeedCatalog(), models.Fruits, "Mango")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "มะม่วง", entry.LocalizedName)

	_, _, err = FindCategoryProduct(ctx, NewSeedCatalog(), "Seafood", "Mango")
	assert.ErrorIs(t, err, models.ErrUnknownCategory)
}

type countingProvider struct {
	Provider
	featuredCalls int
	curatedCalls  int
	fail          bool
}

func (p *countingProvider) ListFeaturedProducts(ctx context.Context) ([]models.Product, error) {
	p.featuredCalls++
	if p.fail {
		return nil, errors.New("catalog unavailable")
	}
	return p.Provider.ListFeaturedProducts(ctx)
}

func (p *countingProvider) ListCategoryProducts(ctx context.Context, name models.CategoryName) ([]models.CategoryProduct, error) {
	p.curatedCalls++
	return p.Provider.ListCategoryProducts(ctx, name)
}

func TestCached_ReadThrough(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{Provider: NewSeedCatalog()}
	c := NewCached(next, 8, time.Minute)

	for i := 0; i < 3; i++ {
		featured, err := c.ListFeaturedProducts(ctx)
		require.NoError(t, err)
		assert.Len(t, featured, 6)
	}
	assert.Equal(t, 1, next.featuredCalls)

	_, err := c.ListCategoryProducts(ctx, models.Rice)
	require.NoError(t, err)
	_, err = c.ListCategoryProducts(ctx, models.Rice)
	require.NoError(t, err)
	_, err = c.ListCategoryProducts(ctx, models.Fruits)
	require.NoError(t, err)
	assert.Equal(t, 2, next.curatedCalls)

	c.Invalidate()
	_, err = c.ListFeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, next.featuredCalls)
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{Provider: NewSeedCatalog(), fail: true}
	c := NewCached(next, 8, time.Minute)

	_, err := c.ListFeaturedProducts(ctx)
	require.Error(t, err)

	next.fail = false
	featured, err := c.ListFeaturedProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, featured, 6)
	assert.Equal(t, 2, next.featuredCalls)
}

func TestCached_Expires(t *testing.T) {
	ctx := context.Background()
	next := &countingProvider{Provider: NewSeedCatalog()}
	c := NewCached(next, 8, 20*time.Millisecond)

	_, err := c.ListFeaturedProducts(ctx)
	require.NoError(t, err)
	time.Sleep(60 * time.Millisecond)
	_, err = c.ListFeaturedProducts(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, next.featuredCalls)
}

func TestSeedCart(t *testing.T) {
	items := SeedCart()
	require.Len(t, items, 3)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 3, items[1].Quantity)
	assert.Equal(t, 4, items[2].ID)
}
