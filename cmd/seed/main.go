// Command seed creates the shoes and customers collections when they are
// missing. Existing collections are left untouched.
package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/catalog"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
	pkgmongo "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/mongo"
)

type seedConfig struct {
	Env   string `envconfig:"APP_ENV" default:"development"`
	Mongo pkgmongo.Config
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := godotenv.Load(".env"); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}
	var cfg seedConfig
	if err := envconfig.Process("", &cfg); err != nil {
		logx.Fatal().Err(err).Msg("Failed to process environment config")
	}
	logx.Init(logx.LoggerOpts{Environment: core.ParseEnvironment(cfg.Env)})

	client, err := cfg.Mongo.New(ctx)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	db := client.Database(cfg.Mongo.Database)

	seed := uint64(time.Now().UnixNano())
	inserted, err := catalog.EnsureCollection(ctx, db, rand.New(rand.NewPCG(seed, seed>>1)))
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to seed shoes collection")
	}

	created, err := customer.EnsureCollection(ctx, db)
	if err != nil {
		logx.Fatal().Err(err).Msg("Failed to create customers collection")
	}

	logx.Info().Int("shoes_inserted", inserted).Bool("customers_created", created).Msg("Database initialised")
}
