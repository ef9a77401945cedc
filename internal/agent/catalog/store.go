package catalog

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	errx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core/error"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// CollectionName is the catalog collection.
const CollectionName = "shoes"

// Store reads shoe records. A limit of zero means unbounded.
type Store interface {
	Find(ctx context.Context, filter bson.M, limit int64) ([]model.Shoe, error)
	Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]model.Shoe, error)
	Distinct(ctx context.Context, field string) ([]string, error)
}

// shoeDocument is the stored shape of a shoe.
type shoeDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Brand    string             `bson:"brand"`
	Category string             `bson:"category"`
	Color    string             `bson:"color"`
	Gender   string             `bson:"gender"`
	Sizes    []int              `bson:"sizes"`
	Price    float64            `bson:"price"`
	Rating   float64            `bson:"rating"`
	InStock  bool               `bson:"in_stock"`
	ImageURL string             `bson:"image,omitempty"`
}

func (d shoeDocument) toShoe() model.Shoe {
	s := model.Shoe{
		Name:     d.Name,
		Brand:    d.Brand,
		Category: d.Category,
		Color:    d.Color,
		Gender:   d.Gender,
		Sizes:    d.Sizes,
		Price:    d.Price,
		Rating:   d.Rating,
		InStock:  d.InStock,
		ImageURL: d.ImageURL,
	}
	if !d.ID.IsZero() {
		s.ID = d.ID.Hex()
	}
	if s.Sizes == nil {
		s.Sizes = []int{}
	}
	return s
}

func newShoeDocument(s model.Shoe) shoeDocument {
	return shoeDocument{
		Name:     s.Name,
		Brand:    s.Brand,
		Category: s.Category,
		Color:    s.Color,
		Gender:   s.Gender,
		Sizes:    s.Sizes,
		Price:    s.Price,
		Rating:   s.Rating,
		InStock:  s.InStock,
		ImageURL: s.ImageURL,
	}
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

func (m *MongoStore) Find(ctx context.Context, filter bson.M, limit int64) ([]model.Shoe, error) {
	opts := options.Find()
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := m.coll.Find(ctx, filter, opts)
	if err != nil {
		logx.Error().Err(err).Interface("filter", filter).Msg("shoes find failed")
		return nil, errx.WrapMongo(err)
	}
	return decodeShoes(ctx, cur)
}

func (m *MongoStore) Aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]model.Shoe, error) {
	cur, err := m.coll.Aggregate(ctx, pipeline)
	if err != nil {
		logx.Error().Err(err).Msg("shoes aggregate failed")
		return nil, errx.WrapMongo(err)
	}
	return decodeShoes(ctx, cur)
}

func (m *MongoStore) Distinct(ctx context.Context, field string) ([]string, error) {
	values, err := m.coll.Distinct(ctx, field, bson.D{})
	if err != nil {
		logx.Error().Err(err).Str("field", field).Msg("shoes distinct failed")
		return nil, errx.WrapMongo(err)
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(v))
	}
	return out, nil
}

// InsertMany stores shoes and returns how many were written.
func (m *MongoStore) InsertMany(ctx context.Context, shoes []model.Shoe) (int, error) {
	docs := make([]interface{}, 0, len(shoes))
	for _, s := range shoes {
		docs = append(docs, newShoeDocument(s))
	}
	if len(docs) == 0 {
		return 0, nil
	}
	res, err := m.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, errx.WrapMongo(err)
	}
	return len(res.InsertedIDs), nil
}

func decodeShoes(ctx context.Context, cur *mongo.Cursor) ([]model.Shoe, error) {
	defer cur.Close(ctx)

	shoes := make([]model.Shoe, 0)
	for cur.Next(ctx) {
		var doc shoeDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, errx.WrapMongo(fmt.Errorf("decode shoe: %w", err))
		}
		shoes = append(shoes, doc.toShoe())
	}
	if err := cur.Err(); err != nil {
		return nil, errx.WrapMongo(err)
	}
	return shoes, nil
}

var _ Store = (*MongoStore)(nil)
