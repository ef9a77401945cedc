package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/catalog"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/conversations"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/customer"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/llm"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/observers"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/orchestrator"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/repo"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tools"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/tracker"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

const (
	SessionStoreRedis  = "redis"
	SessionStoreMemory = "memory"
)

// App is the wired service shared by the HTTP server and the CLI.
type App struct {
	Config       AppConfig
	Orchestrator *orchestrator.Orchestrator

	closers []func(context.Context) error
}

// Build connects the stores, builds the catalog, customer and tool layers and
// the orchestrator. A database that cannot be reached is an error.
func Build(ctx context.Context, cfg AppConfig) (*App, error) {
	a := &App{Config: cfg}

	mongoClient, err := cfg.Mongo.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	a.closers = append(a.closers, mongoClient.Disconnect)
	db := mongoClient.Database(cfg.Mongo.Database)
	logx.Info().Str("database", cfg.Mongo.Database).Msg("Connected to MongoDB")

	orch, err := a.buildOrchestrator(ctx, db)
	if err != nil {
		_ = a.Close(context.Background())
		return nil, err
	}
	a.Orchestrator = orch
	return a, nil
}

func (a *App) buildOrchestrator(ctx context.Context, db *mongo.Database) (*orchestrator.Orchestrator, error) {
	cfg := a.Config

	catalogSvc, err := catalog.NewService(catalog.NewMongoStore(db))
	if err != nil {
		return nil, err
	}
	customerSvc, err := customer.NewService(customer.NewMongoStore(db), cfg.Chat.PhoneRegion)
	if err != nil {
		return nil, err
	}

	sessions, err := a.sessionStore(ctx)
	if err != nil {
		return nil, err
	}

	registry, err := tools.NewRegistry(catalogSvc, customerSvc)
	if err != nil {
		return nil, err
	}

	factory, err := llm.NewFactory(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	pool, err := orchestrator.NewModelPool(cfg.LLM.Models, factory, registry.Infos())
	if err != nil {
		return nil, err
	}

	return orchestrator.New(ctx, orchestrator.Config{
		Sessions:        sessions,
		Registry:        registry,
		Customers:       customerSvc,
		Models:          pool,
		Tracker:         tracker.New(nil, nil),
		Messages:        conversations.NewMessagesManager(cfg.Chat),
		Callbacks:       observers.NewAllCallbacks(),
		Prompt:          cfg.Prompt,
		Temperature:     cfg.LLM.Temperature,
		TopP:            cfg.LLM.TopP,
		CallTimeout:     cfg.LLM.CallTimeout,
		SanitizeReplies: cfg.Chat.SanitizeReplies,
	})
}

func (a *App) sessionStore(ctx context.Context) (model.SessionStore, error) {
	switch strings.ToLower(a.Config.Session.Store) {
	case SessionStoreMemory:
		logx.Info().Msg("Using in-memory session store")
		return repo.NewMemorySessionStore(), nil
	case SessionStoreRedis, "":
		rdb, err := a.Config.Redis.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to initialise Redis client: %w", err)
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		logx.Info().Dur("ttl", a.Config.Session.TTL).Msg("Connected to Redis successfully")
		return repo.NewRedisSessionStore(rdb, a.Config.Session.TTL), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", a.Config.Session.Store)
	}
}

// Close releases the store connections in reverse order of creation.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
