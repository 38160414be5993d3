package llm

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// defaultMaxTokens is the fallback when Request.MaxTokens is not set.
const defaultMaxTokens = 4096

// Request holds the parameters for an LLM completion call.
type Request struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	// Model overrides the provider's configured model when non-empty.
	Model string
}

// Response holds the result of an LLM completion call.
type Response struct {
	Content string
	Model   string // "provider:model" actually used, echoed back for meta
}

// Provider is the interface for LLM completion backends.
type Provider interface {
	Complete(ctx context.Context, req *Request) (*Response, error)
}

// Settings selects a provider.
type Settings struct {
	// Model is "provider:model", e.g. "anthropic:claude-sonnet-4-6".
	Model string
	// BaseURL overrides the provider endpoint (proxies, tests).
	BaseURL string
}

// apiKeyEnv maps each provider to the environment variable holding its key.
var apiKeyEnv = map[string]string{
	"anthropic": "ANTHROPIC_API_KEY",
	"openai":    "OPENAI_API_KEY",
}

// ConfigError reports a missing or malformed provider configuration. It is
// returned at construction time so a bad setup never surfaces as a
// transport failure mid-request.
type ConfigError struct {
	Variable string
	Msg      string
}

func (e *ConfigError) Error() string { return e.Msg }

// NewProvider parses s.Model and returns the matching Provider. The API key
// is read from the environment now and validated immediately.
func NewProvider(s Settings) (Provider, error) {
	parts := strings.SplitN(s.Model, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, &ConfigError{Msg: fmt.Sprintf("invalid model format %q: expected provider:model (e.g. anthropic:claude-sonnet-4-6)", s.Model)}
	}
	name, model := parts[0], parts[1]
	envVar, ok := apiKeyEnv[name]
	if !ok {
		return nil, &ConfigError{Msg: fmt.Sprintf("unknown provider %q: supported providers are anthropic, openai", name)}
	}
	apiKey := os.Getenv(envVar)
	if apiKey == "" {
		return nil, &ConfigError{
			Variable: envVar,
			Msg:      fmt.Sprintf("%s environment variable not set; the completion service cannot be reached without it", envVar),
		}
	}
	switch name {
	case "anthropic":
		return newAnthropicProvider(apiKey, model, s.BaseURL), nil
	default:
		return newOpenAIProvider(apiKey, model, s.BaseURL), nil
	}
}

// truncate limits a string to maxLen runes, appending "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen]) + "..."
}
