package generator

import (
	"net/http"

	"dailyvocab/internal/config"

	"github.com/sashabaranov/go-openai"
)

// NewClient builds an OpenAI-compatible client, or nil when no API key is configured
func NewClient(cfg config.OpenAIConfig) *openai.Client {
	if cfg.APIKey == "" {
		return nil
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return openai.NewClientWithConfig(clientCfg)
}
