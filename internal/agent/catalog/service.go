package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

const (
	SearchLimit        = 10
	RecommendLimit     = 8
	RecommendMinRating = 4.0
)

const (
	msgSearchFound       = "Found %d shoes matching your criteria!"
	msgSearchEmpty       = "No shoes found matching your criteria."
	msgSearchSuggestions = "Try adjusting your requirements or check our full catalog."
	msgRecommend         = "Here are our top-rated shoes currently in stock!"
	msgFacets            = "Here's what we have available in our store!"
	msgAvailable         = "Available!"
	msgUnavailable       = "Sorry, not available in that size."
)

type SearchResult struct {
	FoundShoes  int          `json:"found_shoes,omitempty"`
	Shoes       []model.Shoe `json:"shoes,omitempty"`
	Message     string       `json:"message"`
	Suggestions string       `json:"suggestions,omitempty"`
}

type RecommendResult struct {
	Recommendations []model.Shoe `json:"recommendations"`
	Message         string       `json:"message"`
}

type FacetsResult struct {
	Brands     []string `json:"available_brands"`
	Categories []string `json:"available_categories"`
	Colors     []string `json:"available_colors"`
	Message    string   `json:"message"`
}

type AvailabilityResult struct {
	Available bool         `json:"available"`
	Shoes     []model.Shoe `json:"shoes"`
	Message   string       `json:"message"`
}

type Service struct {
	store Store
}

func NewService(store Store) (*Service, error) {
	if store == nil {
		return nil, errors.New("catalog store is required")
	}
	return &Service{store: store}, nil
}

// Search returns at most SearchLimit shoes matching the criteria.
func (s *Service) Search(ctx context.Context, criteria model.SearchCriteria) (*SearchResult, error) {
	filter, err := BuildFilter(criteria)
	if err != nil {
		return nil, err
	}

	shoes, err := s.store.Find(ctx, filter, SearchLimit)
	if err != nil {
		return nil, wrap("Database search error", err)
	}
	logx.Debug().Interface("filter", filter).Int("found", len(shoes)).Msg("catalog search")

	if len(shoes) == 0 {
		return &SearchResult{Message: msgSearchEmpty, Suggestions: msgSearchSuggestions}, nil
	}
	return &SearchResult{
		FoundShoes: len(shoes),
		Shoes:      shoes,
		Message:    fmt.Sprintf(msgSearchFound, len(shoes)),
	}, nil
}

// Recommend returns the best-rated in-stock shoes, highest rating first and
// cheapest first among equal ratings.
func (s *Service) Recommend(ctx context.Context) (*RecommendResult, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{FieldInStock: true, FieldRating: bson.M{"$gte": RecommendMinRating}}}},
		{{Key: "$sort", Value: bson.D{{Key: FieldRating, Value: -1}, {Key: FieldPrice, Value: 1}}}},
		{{Key: "$limit", Value: RecommendLimit}},
	}

	shoes, err := s.store.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, wrap("Recommendation error", err)
	}
	return &RecommendResult{Recommendations: shoes, Message: msgRecommend}, nil
}

// Facets lists the distinct brands, categories and colors in the catalog.
func (s *Service) Facets(ctx context.Context) (*FacetsResult, error) {
	var brands, categories, colors []string

	g, gctx := errgroup.WithContext(ctx)
	distinct := func(field string, out *[]string) func() error {
		return func() error {
			values, err := s.store.Distinct(gctx, field)
			if err != nil {
				return err
			}
			*out = uniqueSorted(values)
			return nil
		}
	}
	g.Go(distinct(FieldBrand, &brands))
	g.Go(distinct(FieldCategory, &categories))
	g.Go(distinct(FieldColor, &colors))

	if err := g.Wait(); err != nil {
		return nil, wrap("Catalog error", err)
	}
	return &FacetsResult{Brands: brands, Categories: categories, Colors: colors, Message: msgFacets}, nil
}

// CheckAvailability finds in-stock shoes whose name contains name and, when
// size is given, that carry it. Stock filtering is not optional here.
func (s *Service) CheckAvailability(ctx context.Context, name string, size model.NumberArg) (*AvailabilityResult, error) {
	filter := bson.M{FieldInStock: true}
	if n := strings.TrimSpace(name); n != "" {
		filter[FieldName] = containsFold(n)
	}
	if size.IsSet() {
		v, err := size.Int()
		if err != nil {
			return nil, errx.InvalidArgument("invalid size", err)
		}
		filter[FieldSizes] = v
	}

	shoes, err := s.store.Find(ctx, filter, 0)
	if err != nil {
		return nil, wrap("Availability check error", err)
	}

	res := &AvailabilityResult{Available: len(shoes) > 0, Shoes: shoes, Message: msgUnavailable}
	if res.Available {
		res.Message = msgAvailable
	}
	return res, nil
}

// wrap keeps existing AppErrors intact and classifies the rest as store failures.
func wrap(message string, err error) error {
	var app *errx.AppError
	if errors.As(err, &app) {
		return errx.New(app.Code, app.Err, app.Status, message)
	}
	return errx.UpstreamUnavailable(message, err)
}

func uniqueSorted(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
