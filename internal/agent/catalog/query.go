package catalog

import (
	"regexp"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
)

// Document field names of the shoes collection.
const (
	FieldName     = "name"
	FieldBrand    = "brand"
	FieldCategory = "category"
	FieldColor    = "color"
	FieldGender   = "gender"
	FieldSizes    = "sizes"
	FieldPrice    = "price"
	FieldRating   = "rating"
	FieldInStock  = "in_stock"
)

// BuildFilter turns search criteria into a shoes-collection filter.
//
// Text criteria match case-insensitively anywhere in the field; the input is
// quoted so it never acts as a pattern. Price bounds are inclusive and merge
// into one range condition. Size matches when the sizes array contains it.
// Stock filtering applies unless InStockOnly is explicitly false.
func BuildFilter(c model.SearchCriteria) (bson.M, error) {
	filter := bson.M{}

	for field, value := range map[string]string{
		FieldBrand:    c.Brand,
		FieldCategory: c.Category,
		FieldColor:    c.Color,
		FieldGender:   c.Gender,
	} {
		if v := strings.TrimSpace(value); v != "" {
			filter[field] = containsFold(v)
		}
	}

	price := bson.M{}
	if c.PriceMin.IsSet() {
		v, err := c.PriceMin.Float64()
		if err != nil {
			return nil, errx.InvalidArgument("invalid price_min", err)
		}
		price["$gte"] = v
	}
	if c.PriceMax.IsSet() {
		v, err := c.PriceMax.Float64()
		if err != nil {
			return nil, errx.InvalidArgument("invalid price_max", err)
		}
		price["$lte"] = v
	}
	if len(price) > 0 {
		filter[FieldPrice] = price
	}

	if c.Size.IsSet() {
		v, err := c.Size.Int()
		if err != nil {
			return nil, errx.InvalidArgument("invalid size", err)
		}
		filter[FieldSizes] = v
	}

	if c.MinRating.IsSet() {
		v, err := c.MinRating.Float64()
		if err != nil {
			return nil, errx.InvalidArgument("invalid min_rating", err)
		}
		filter[FieldRating] = bson.M{"$gte": v}
	}

	if c.StockOnly() {
		filter[FieldInStock] = true
	}

	return filter, nil
}

func containsFold(v string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(v), Options: "i"}
}

