package catalog

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// SeedSize is the number of generated shoes for a fresh catalog.
const SeedSize = 100

var (
	seedBrands     = []string{"Nike", "Adidas", "Puma", "Reebok", "New Balance"}
	seedCategories = []string{"Running", "Basketball", "Casual", "Training"}
	seedColors     = []string{"Black", "White", "Red", "Blue", "Gray"}
	seedGenders    = []string{"Men", "Women", "Unisex"}

	brandImages = map[string]string{
		"Nike":        "https://ma.mojaa.com/cdn/shop/files/FD6454-104_1_575x.jpg?v=1750331146",
		"Adidas":      "https://assets.adidas.com/images/w_1880,f_auto,q_auto/10d27f0989844a15bdae4946ff002c65_9366/JI2307_04_standard.jpg",
		"Puma":        "https://images.puma.com/image/upload/f_auto,q_auto,b_rgb:fafafa,w_550,h_550/global/395205/78/sv04/fnd/EEA/fmt/png/Sneakers-Suede-XL-Unisexe",
		"Reebok":      "https://www.reebok.eu/cdn/shop/files/22253063_52160247_800.webp?v=1744648695&width=800",
		"New Balance": "https://nb.scene7.com/is/image/NB/m2002rcc_nb_05_i?$pdpflexf2$&qlt=80&fmt=webp&wid=440&hei=440",
	}
)

const (
	minSeedSize = 36
	maxSeedSize = 47
)

// GenerateShoes builds n in-stock shoes with European sizes and DH prices.
func GenerateShoes(r *rand.Rand, n int) []model.Shoe {
	shoes := make([]model.Shoe, 0, n)
	for i := 0; i < n; i++ {
		brand := seedBrands[r.IntN(len(seedBrands))]
		category := seedCategories[r.IntN(len(seedCategories))]
		shoes = append(shoes, model.Shoe{
			Name:     fmt.Sprintf("%s %s %d", brand, category, i+1),
			Brand:    brand,
			Category: category,
			Color:    seedColors[r.IntN(len(seedColors))],
			Gender:   seedGenders[r.IntN(len(seedGenders))],
			Sizes:    sampleSizes(r, 3+r.IntN(3)),
			Price:    round(400+r.Float64()*600, 2),
			Rating:   round(3.5+r.Float64()*1.5, 1),
			InStock:  true,
			ImageURL: brandImages[brand],
		})
	}
	return shoes
}

func sampleSizes(r *rand.Rand, k int) []int {
	perm := r.Perm(maxSeedSize - minSeedSize + 1)
	sizes := make([]int, k)
	for i := 0; i < k; i++ {
		sizes[i] = minSeedSize + perm[i]
	}
	return sizes
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// EnsureCollection creates and fills the shoes collection when it does not
// exist. An existing collection is left untouched.
func EnsureCollection(ctx context.Context, db *mongo.Database, r *rand.Rand) (int, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: CollectionName}})
	if err != nil {
		return 0, errx.WrapMongo(err)
	}
	if len(names) > 0 {
		logx.Info().Str("collection", CollectionName).Msg("collection already exists, skipping seed")
		return 0, nil
	}

	if err := db.CreateCollection(ctx, CollectionName); err != nil {
		return 0, errx.WrapMongo(err)
	}
	n, err := NewMongoStore(db).InsertMany(ctx, GenerateShoes(r, SeedSize))
	if err != nil {
		return 0, err
	}
	logx.Info().Str("collection", CollectionName).Int("inserted", n).Msg("collection created")
	return n, nil
}
