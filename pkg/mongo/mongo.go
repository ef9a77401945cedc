package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type Config struct {
	URI                    string `split_words:"true"`
	Database               string `split_words:"true" default:"techno_shoe"`
	ConnectTimeout         int    `split_words:"true" default:"10"`
	ServerSelectionTimeout int    `split_words:"true" default:"5"`
	MaxPoolSize            uint64 `split_words:"true" default:"50"`
}

// New connects and pings the primary so that a misconfigured URI fails at startup.
func (c *Config) New(ctx context.Context) (*mongo.Client, error) {
	if c.URI == "" {
		return nil, errors.New("MONGO_URI is not set")
	}

	opts := options.Client().
		ApplyURI(c.URI).
		SetConnectTimeout(time.Duration(c.ConnectTimeout) * time.Second).
		SetServerSelectionTimeout(time.Duration(c.ServerSelectionTimeout) * time.Second).
		SetMaxPoolSize(c.MaxPoolSize)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Duration(c.ConnectTimeout)*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return client, nil
}

func (c *Config) MustNew(ctx context.Context) *mongo.Client {
	client, err := c.New(ctx)
	if err != nil {
		panic(err)
	}

	return client
}
