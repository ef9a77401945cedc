package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/IMADDABLIGI/Techno-Shoe-AIAgent/internal/agent/model"
	logx "github.com/IMADDABLIGI/Techno-Shoe-AIAgent/pkg/logger"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderArk    = "ark"
)

// DefaultOpenAIBaseURL is the OpenAI-compatible inference endpoint used when
// LLM_BASE_URL is empty.
const DefaultOpenAIBaseURL = "https://models.github.ai/inference"

// Factory builds a tool-calling chat model for a model identifier.
type Factory func(ctx context.Context, name string) (einomodel.ToolCallingChatModel, error)

// NewFactory returns a Factory for the configured provider. Provider clients
// that can be shared across model identifiers are created once here.
func NewFactory(ctx context.Context, cfg model.LLMConfig) (Factory, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("llm: API key is required")
	}
	temperature := cfg.Temperature
	topP := cfg.TopP
	maxTokens := cfg.MaxTokens

	switch strings.ToLower(cfg.Provider) {
	case ProviderOpenAI, "":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = DefaultOpenAIBaseURL
		}
		return func(ctx context.Context, name string) (einomodel.ToolCallingChatModel, error) {
			cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
				APIKey:      cfg.APIKey,
				BaseURL:     baseURL,
				Model:       name,
				Temperature: &temperature,
				TopP:        &topP,
				MaxTokens:   &maxTokens,
				Timeout:     cfg.CallTimeout,
			})
			if err != nil {
				logx.Error().Err(err).Str("model", name).Msg("Error creating OpenAI-compatible chat model")
				return nil, fmt.Errorf("error creating openai chat model %s: %w", name, err)
			}
			return cm, nil
		}, nil

	case ProviderGemini:
		clientCfg := &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if cfg.BaseURL != "" {
			clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
		}
		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			logx.Error().Err(err).Msg("Error creating Gemini client")
			return nil, fmt.Errorf("error creating Gemini client: %w", err)
		}
		return func(ctx context.Context, name string) (einomodel.ToolCallingChatModel, error) {
			cm, err := gemini.NewChatModel(ctx, &gemini.Config{
				Client:      client,
				Model:       name,
				Temperature: &temperature,
				MaxTokens:   &maxTokens,
			})
			if err != nil {
				logx.Error().Err(err).Str("model", name).Msg("Error creating Gemini chat model")
				return nil, fmt.Errorf("error creating gemini chat model %s: %w", name, err)
			}
			return cm, nil
		}, nil

	case ProviderArk:
		return func(ctx context.Context, name string) (einomodel.ToolCallingChatModel, error) {
			cm, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
				BaseURL:     cfg.BaseURL,
				APIKey:      cfg.APIKey,
				Model:       name,
				Temperature: &temperature,
				TopP:        &topP,
				MaxTokens:   &maxTokens,
			})
			if err != nil {
				logx.Error().Err(err).Str("model", name).Msg("Error creating Ark chat model")
				return nil, fmt.Errorf("error creating ark chat model %s: %w", name, err)
			}
			return cm, nil
		}, nil

	default:
		return nil, fmt.Errorf("llm: unsupported provider %q", cfg.Provider)
	}
}
