package model

import "time"

// ================ Config ================
type SessionConfig struct {
	// Store selects the session backend: "redis" or "memory".
	Store string        `envconfig:"SESSION_STORE" default:"redis"`
	TTL   time.Duration `envconfig:"SESSION_TTL" default:"30m"`
}

type LLMConfig struct {
	Provider    string        `envconfig:"LLM_PROVIDER" default:"openai"`
	APIKey      string        `envconfig:"LLM_API_KEY" required:"true"`
	BaseURL     string        `envconfig:"LLM_BASE_URL"`
	Models      []string      `envconfig:"LLM_MODELS" default:"openai/gpt-4.1,openai/gpt-4.1-mini,openai/gpt-4.1-nano,openai/gpt-4o,openai/gpt-4o-mini,openai/o4-mini"`
	MaxTokens   int           `envconfig:"LLM_MAX_TOKENS" default:"1024"`
	Temperature float32       `envconfig:"LLM_TEMPERATURE" default:"0.7"`
	TopP        float32       `envconfig:"LLM_TOP_P" default:"0.9"`
	CallTimeout time.Duration `envconfig:"LLM_CALL_TIMEOUT" default:"45s"`
}

type PromptConfig struct {
	StoreName     string `envconfig:"PROMPT_STORE_NAME" default:"Techno Shoe"`
	StoreLocation string `envconfig:"PROMPT_STORE_LOCATION" default:"Casablanca Sidi Maarouf, Morocco"`
	AssistantName string `envconfig:"PROMPT_ASSISTANT_NAME" default:"Amine"`
	Currency      string `envconfig:"PROMPT_CURRENCY" default:"DH"`
	SizeSystem    string `envconfig:"PROMPT_SIZE_SYSTEM" default:"European sizes 36-47"`
}

type ChatConfig struct {
	SanitizeReplies bool   `envconfig:"CHAT_SANITIZE_REPLIES" default:"true"`
	PhoneRegion     string `envconfig:"CHAT_PHONE_REGION" default:"MA"`
	// MaxHistory caps the stored messages sent to the model per call; 0 sends all.
	MaxHistory int `envconfig:"CHAT_MAX_HISTORY" default:"40"`
}
