package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

func testCatalog() []model.Shoe {
	return []model.Shoe{
		{ID: "1", Name: "Nike Running 1", Brand: "Nike", Category: "Running", Color: "Black", Gender: "Men", Sizes: []int{40, 42}, Price: 650, Rating: 4.8, InStock: true},
		{ID: "2", Name: "Adidas Running 2", Brand: "Adidas", Category: "Running", Color: "White", Gender: "Women", Sizes: []int{38, 39}, Price: 900, Rating: 4.8, InStock: true},
		{ID: "3", Name: "Puma Casual 3", Brand: "Puma", Category: "Casual", Color: "Red", Gender: "Unisex", Sizes: []int{42, 43}, Price: 450, Rating: 3.9, InStock: true},
		{ID: "4", Name: "Nike Basketball 4", Brand: "Nike", Category: "Basketball", Color: "Blue", Gender: "Men", Sizes: []int{44}, Price: 980, Rating: 4.2, InStock: false},
		{ID: "5", Name: "Reebok Running 5", Brand: "Reebok", Category: "Running", Color: "Gray", Gender: "Men", Sizes: []int{42}, Price: 780, Rating: 4.1, InStock: true},
	}
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	svc, err := NewService(store)
	require.NoError(t, err)
	return svc
}

func TestSearchReturnsMatchesWithinPriceRange(t *testing.T) {
	store := &fakeStore{shoes: testCatalog()}
	svc := newTestService(t, store)

	res, err := svc.Search(context.Background(), model.SearchCriteria{Category: "running", PriceMax: "800"})
	require.NoError(t, err)
	require.Equal(t, 2, res.FoundShoes)
	require.Equal(t, "Found 2 shoes matching your criteria!", res.Message)
	for _, s := range res.Shoes {
		require.LessOrEqual(t, s.Price, 800.0)
		require.True(t, s.InStock)
	}
	require.EqualValues(t, SearchLimit, store.lastLimit)
}

func TestSearchCapsResults(t *testing.T) {
	shoes := GenerateShoes(rand.New(rand.NewPCG(1, 2)), 30)
	svc := newTestService(t, &fakeStore{shoes: shoes})

	res, err := svc.Search(context.Background(), model.SearchCriteria{})
	require.NoError(t, err)
	require.Len(t, res.Shoes, SearchLimit)
}

func TestSearchNoMatches(t *testing.T) {
	svc := newTestService(t, &fakeStore{shoes: testCatalog()})

	res, err := svc.Search(context.Background(), model.SearchCriteria{Brand: "Converse"})
	require.NoError(t, err)
	require.Zero(t, res.FoundShoes)
	require.Empty(t, res.Shoes)
	require.Equal(t, "No shoes found matching your criteria.", res.Message)
	require.NotEmpty(t, res.Suggestions)
}

func TestSearchInvalidArgumentSkipsStore(t *testing.T) {
	store := &fakeStore{shoes: testCatalog()}
	svc := newTestService(t, store)

	_, err := svc.Search(context.Background(), model.SearchCriteria{PriceMax: "cheap"})
	require.ErrorIs(t, err, errx.ErrInvalidArgument)
	require.Zero(t, store.findCalls)
}

func TestSearchStoreFailure(t *testing.T) {
	svc := newTestService(t, &fakeStore{err: errors.New("connection refused")})

	_, err := svc.Search(context.Background(), model.SearchCriteria{})
	require.ErrorIs(t, err, errx.ErrUpstreamUnavailable)
	require.Equal(t, "Database search error: connection refused", err.Error())
}

func TestRecommendOrdersByRatingThenPrice(t *testing.T) {
	shoes := testCatalog()
	for i := 0; i < 10; i++ {
		shoes = append(shoes, model.Shoe{Name: fmt.Sprintf("Filler %d", i), Price: 500, Rating: 4.0, InStock: true})
	}
	store := &fakeStore{shoes: shoes}
	svc := newTestService(t, store)

	res, err := svc.Recommend(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Recommendations, RecommendLimit)
	require.Equal(t, "Here are our top-rated shoes currently in stock!", res.Message)
	require.Equal(t, "Nike Running 1", res.Recommendations[0].Name)
	require.Equal(t, "Adidas Running 2", res.Recommendations[1].Name)
	for i, s := range res.Recommendations {
		require.True(t, s.InStock)
		require.GreaterOrEqual(t, s.Rating, RecommendMinRating)
		if i > 0 {
			require.LessOrEqual(t, s.Rating, res.Recommendations[i-1].Rating)
		}
	}
}

func TestFacetsAreDistinctAndSorted(t *testing.T) {
	svc := newTestService(t, &fakeStore{shoes: testCatalog()})

	res, err := svc.Facets(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"Adidas", "Nike", "Puma", "Reebok"}, res.Brands)
	require.Equal(t, []string{"Basketball", "Casual", "Running"}, res.Categories)
	require.Equal(t, []string{"Black", "Blue", "Gray", "Red", "White"}, res.Colors)
}

func TestFacetsStoreFailure(t *testing.T) {
	svc := newTestService(t, &fakeStore{err: errors.New("timeout")})

	_, err := svc.Facets(context.Background())
	require.ErrorIs(t, err, errx.ErrUpstreamUnavailable)
}

func TestCheckAvailability(t *testing.T) {
	store := &fakeStore{shoes: testCatalog()}
	svc := newTestService(t, store)

	res, err := svc.CheckAvailability(context.Background(), "nike", "42")
	require.NoError(t, err)
	require.True(t, res.Available)
	require.Equal(t, "Available!", res.Message)
	require.Len(t, res.Shoes, 1)
	require.Equal(t, "Nike Running 1", res.Shoes[0].Name)
	require.Equal(t, true, store.lastFilter[FieldInStock])
	require.Zero(t, store.lastLimit)

	res, err = svc.CheckAvailability(context.Background(), "Nike Basketball", "44")
	require.NoError(t, err)
	require.False(t, res.Available)
	require.Equal(t, "Sorry, not available in that size.", res.Message)
	require.NotNil(t, res.Shoes)
}

func TestGenerateShoes(t *testing.T) {
	shoes := GenerateShoes(rand.New(rand.NewPCG(7, 7)), SeedSize)
	require.Len(t, shoes, SeedSize)
	for _, s := range shoes {
		require.True(t, s.InStock)
		require.GreaterOrEqual(t, s.Price, 400.0)
		require.LessOrEqual(t, s.Price, 1000.0)
		require.GreaterOrEqual(t, s.Rating, 3.5)
		require.LessOrEqual(t, s.Rating, 5.0)
		require.GreaterOrEqual(t, len(s.Sizes), 3)
		require.LessOrEqual(t, len(s.Sizes), 5)
		require.NotEmpty(t, s.ImageURL)
		for _, size := range s.Sizes {
			require.GreaterOrEqual(t, size, 36)
			require.LessOrEqual(t, size, 47)
		}
	}
}
