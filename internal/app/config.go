package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/core"
	pkgmongo "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/mongo"
	pkgredis "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/redis"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

// AppConfig defines all configurable parameters of the service, sourced from
// environment variables (loaded from .env for local runs).
type AppConfig struct {
	Env      string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL"`

	// HTTP
	HTTPAddr       string  `envconfig:"HTTP_ADDR" default:":5000"`
	RateLimitRPS   float64 `envconfig:"RATE_LIMIT_RPS" default:"5"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"10"`

	// Infrastructure
	Mongo pkgmongo.Config
	Redis pkgredis.Config

	// Agent configs
	Session model.SessionConfig
	LLM     model.LLMConfig
	Prompt  model.PromptConfig
	Chat    model.ChatConfig
}

// Environment returns the parsed APP_ENV.
func (c AppConfig) Environment() core.Environment {
	return core.ParseEnvironment(c.Env)
}

// LoadConfig reads .env when present, fills AppConfig from the environment and
// initialises logging for the configured environment.
func LoadConfig() (AppConfig, error) {
	if err := godotenv.Load(".env"); err != nil {
		logx.Debug().Err(err).Msg("no .env file loaded")
	}

	var cfg AppConfig
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, err
	}
	logx.Init(logx.LoggerOpts{Environment: cfg.Environment(), Level: cfg.LogLevel})
	return cfg, nil
}
