package factory

import (
	"fmt"

	"ide-assistant-be/pkg/llm"
	"ide-assistant-be/pkg/llm/ollama"
	"ide-assistant-be/pkg/llm/openai"
)

// NewLLMProvider selects the provider backend from config. "openai" is the
// production default; "ollama" exists for local development without a key.
func NewLLMProvider(provider, model, baseURL, apiKey string) (llm.LLMProvider, error) {
	switch provider {
	case "openai":
		return openai.NewOpenAIProvider(baseURL, apiKey, model), nil
	case "ollama":
		return ollama.NewOllamaProvider(baseURL, model), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %q", provider)
	}
}
