package customer

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

// CollectionName is the customers collection.
const CollectionName = "customers"

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(CollectionName)}
}

func (m *MongoStore) Insert(ctx context.Context, c *model.Customer) (string, error) {
	res, err := m.coll.InsertOne(ctx, c)
	if err != nil {
		logx.Error().Err(err).Msg("customer insert failed")
		return "", errx.WrapMongo(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		return oid.Hex(), nil
	}
	return fmt.Sprint(res.InsertedID), nil
}

// collectionValidator rejects documents without a first name or with mistyped fields.
var collectionValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": bson.A{"first_name", "interested_products"},
		"properties": bson.M{
			"first_name":          bson.M{"bsonType": "string"},
			"last_name":           bson.M{"bsonType": "string"},
			"age":                 bson.M{"bsonType": "int"},
			"phone":               bson.M{"bsonType": "string"},
			"interested_products": bson.M{"bsonType": "array", "items": bson.M{"bsonType": "string"}},
			"conversation_history": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "object"},
			},
			"created_at": bson.M{"bsonType": "date"},
		},
	},
}

// EnsureCollection creates the customers collection with its schema validator
// when missing. It reports whether the collection was created.
func EnsureCollection(ctx context.Context, db *mongo.Database) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: CollectionName}})
	if err != nil {
		return false, errx.WrapMongo(err)
	}
	if len(names) > 0 {
		logx.Info().Str("collection", CollectionName).Msg("collection already exists, skipping")
		return false, nil
	}
	opts := options.CreateCollection().SetValidator(collectionValidator)
	if err := db.CreateCollection(ctx, CollectionName, opts); err != nil {
		return false, errx.WrapMongo(err)
	}
	logx.Info().Str("collection", CollectionName).Msg("collection created with schema validation")
	return true, nil
}

var _ Store = (*MongoStore)(nil)
