package review

import (
	"fmt"
	"strings"
)

const defaultOllamaURL = "http://localhost:11434/v1"

// NewProvider selects a provider by name. An empty name disables review
// and returns a nil provider.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(config.Provider)) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		// Ollama serves the OpenAI protocol and ignores the key.
		if config.BaseURL == "" {
			config.BaseURL = defaultOllamaURL
		}
		if config.APIKey == "" {
			config.APIKey = "ollama"
		}
		if config.Model == "" {
			return nil, fmt.Errorf("ollama provider requires a model name")
		}
		return newCompatibleProvider("ollama", config), nil

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown review provider: %s (supported: openai, ollama)", config.Provider)
	}
}
