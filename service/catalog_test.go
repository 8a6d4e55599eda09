package service_test

import (
	"context"
	"testing"
	"time"

	"burger-house-api/events"
	"burger-house-api/models"
	"burger-house-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedCatalog(t *testing.T) {
	f := newFixture(t)

	stats := f.svc.ProductStats()
	assert.Equal(t, 12, stats.Total)
	assert.Equal(t, 5, stats.ByCategory[models.CategoryBurgers])
	assert.Equal(t, 3, stats.ByCategory[models.CategorySides])
	assert.Equal(t, 4, stats.ByCategory[models.CategoryDrinks])
	assert.Equal(t, 11, stats.Available)
	assert.Equal(t, 1, stats.Unavailable)

	assert.Len(t, f.svc.AvailableProducts(), 11)
	assert.Len(t, f.svc.ProductsByCategory(models.CategoryDrinks), 4)
}

func burgerInput() service.ProductInput {
	return service.ProductInput{
		Name:        "Smash Burger",
		Price:       price("8.50"),
		Category:    models.CategoryBurgers,
		Ingredients: []string{"beef", "american cheese"},
		Calories:    650,
		PrepTime:    8,
		Available:   true,
	}
}

func TestProductLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	p, err := f.svc.CreateProduct(ctx, burgerInput())
	require.NoError(t, err)
	assert.Equal(t, 13, p.ID)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, testNow, p.ModifiedAt)

	f.clock.Advance(time.Hour)
	toggled, err := f.svc.ToggleProductAvailability(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, toggled.Available)
	assert.Equal(t, testNow.Add(time.Hour), toggled.ModifiedAt)
	assert.Equal(t, testNow, toggled.CreatedAt)

	in := burgerInput()
	in.Price = price("8.95")
	f.clock.Advance(time.Hour)
	updated, err := f.svc.UpdateProduct(ctx, p.ID, in)
	require.NoError(t, err)
	assert.True(t, price("8.95").Equal(updated.Price))
	assert.True(t, updated.Available)
	assert.Equal(t, testNow.Add(2*time.Hour), updated.ModifiedAt)

	require.NoError(t, f.svc.DeleteProduct(ctx, p.ID))
	_, err = f.svc.ProductByID(p.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, f.svc.DeleteProduct(ctx, p.ID), service.ErrNotFound)

	var changes int
	for _, topic := range f.events.topics() {
		if topic == events.TopicProductsChanged {
			changes++
		}
	}
	assert.Equal(t, 4, changes)
}

func TestProductValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	bad := burgerInput()
	bad.Category = "desserts"
	_, err := f.svc.CreateProduct(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	bad = burgerInput()
	bad.Price = price("-0.01")
	_, err = f.svc.CreateProduct(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	bad = burgerInput()
	bad.Name = ""
	_, err = f.svc.CreateProduct(ctx, bad)
	assert.ErrorIs(t, err, service.ErrValidation)

	_, err = f.svc.UpdateProduct(ctx, 999, burgerInput())
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.Len(t, f.svc.Products(), 12)
}

func TestReviews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	m := maria(t, f.svc)

	stats := f.svc.ReviewStats()
	assert.Equal(t, 3, stats.Count)
	assert.InDelta(t, 14.0/3.0, stats.AverageRating, 1e-9)
	require.Len(t, stats.Distribution, 5)
	assert.Equal(t, 5, stats.Distribution[0].Stars)
	assert.Equal(t, 2, stats.Distribution[0].Count)
	assert.Equal(t, 1, stats.Distribution[4].Stars)
	assert.Len(t, f.svc.VerifiedReviews(), 2)

	_, err := f.svc.CreateReview(ctx, service.ReviewInput{CustomerID: m.ID, Rating: 6})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = f.svc.CreateReview(ctx, service.ReviewInput{CustomerID: m.ID, Rating: 0})
	assert.ErrorIs(t, err, service.ErrValidation)
	_, err = f.svc.CreateReview(ctx, service.ReviewInput{CustomerID: 999, Rating: 3})
	assert.ErrorIs(t, err, service.ErrNotFound)

	r, err := f.svc.CreateReview(ctx, service.ReviewInput{CustomerID: m.ID, Rating: 1, Comment: "Cold fries"})
	require.NoError(t, err)
	assert.False(t, r.Verified)
	assert.Equal(t, 4, r.ID)

	v, err := f.svc.VerifyReview(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, v.Verified)
	v, err = f.svc.VerifyReview(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, v.Verified)
	assert.Len(t, f.svc.VerifiedReviews(), 3)

	stats = f.svc.ReviewStats()
	assert.Equal(t, 4, stats.Count)
	assert.InDelta(t, 3.75, stats.AverageRating, 1e-9)
	assert.InDelta(t, 25.0, stats.Distribution[4].Percentage, 1e-9)

	require.NoError(t, f.svc.DeleteReview(ctx, r.ID))
	assert.ErrorIs(t, f.svc.DeleteReview(ctx, r.ID), service.ErrNotFound)
	_, err = f.svc.VerifyReview(ctx, r.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestGlobalStats(t *testing.T) {
	f := newFixture(t)

	stats := f.svc.GlobalStats()
	assert.Equal(t, 4, stats.Users)
	assert.Equal(t, 2, stats.Customers)
	assert.Equal(t, 3, stats.Orders)
	assert.Equal(t, 3, stats.Reviews)
	assert.Equal(t, 12, stats.Products)
	assert.Equal(t, 1590, stats.TotalPoints)
	assert.True(t, price("52.94").Equal(stats.Revenue), stats.Revenue.String())
}
