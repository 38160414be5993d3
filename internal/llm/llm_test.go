package llm

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewProvider_UnknownPrefix(t *testing.T) {
	_, err := NewProvider(Settings{Model: "gemini:gemini-pro"})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError for unknown provider prefix, got %v", err)
	}
}

func TestNewProvider_InvalidFormat(t *testing.T) {
	for _, m := range []string{"nocolon", ":model", "anthropic:"} {
		if _, err := NewProvider(Settings{Model: m}); err == nil {
			t.Errorf("NewProvider(%q): expected error, got nil", m)
		}
	}
}

func TestNewProvider_Anthropic_NoKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewProvider(Settings{Model: "anthropic:claude-sonnet-4-6"})
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ConfigError when ANTHROPIC_API_KEY not set, got %v", err)
	}
	if ce.Variable != "ANTHROPIC_API_KEY" {
		t.Errorf("Variable = %q", ce.Variable)
	}
	if !strings.Contains(ce.Error(), "ANTHROPIC_API_KEY") {
		t.Errorf("message should name the variable: %q", ce.Error())
	}
}

func TestNewProvider_OpenAI_NoKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	_, err := NewProvider(Settings{Model: "openai:gpt-4o"})
	var ce *ConfigError
	if !errors.As(err, &ce) || ce.Variable != "OPENAI_API_KEY" {
		t.Fatalf("expected *ConfigError naming OPENAI_API_KEY, got %v", err)
	}
}

func TestNewProvider_WithKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-key-for-construction-only")
	t.Setenv("OPENAI_API_KEY", "sk-test-key-for-construction-only")
	for _, m := range []string{"anthropic:claude-sonnet-4-6", "openai:gpt-4o"} {
		p, err := NewProvider(Settings{Model: m})
		if err != nil {
			t.Fatalf("NewProvider(%q): %v", m, err)
		}
		if p == nil {
			t.Errorf("NewProvider(%q) returned nil provider", m)
		}
	}
}

const anthropicOK = `{
  "id": "msg_01",
  "type": "message",
  "role": "assistant",
  "model": "claude-sonnet-4-6",
  "content": [{"type": "text", "text": "{\"hero\": {}}"}],
  "stop_reason": "end_turn",
  "usage": {"input_tokens": 10, "output_tokens": 5}
}`

const openaiOK = `{
  "id": "chatcmpl-1",
  "object": "chat.completion",
  "created": 1700000000,
  "model": "gpt-4o",
  "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"hero\": {}}"}, "finish_reason": "stop"}]
}`

func stubServer(t *testing.T, status int, body string, seen *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			b, _ := io.ReadAll(r.Body)
			*seen = string(b)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAnthropicProvider_Complete(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	var seen string
	srv := stubServer(t, http.StatusOK, anthropicOK, &seen)

	p, err := NewProvider(Settings{Model: "anthropic:claude-sonnet-4-6", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	resp, err := p.Complete(context.Background(), &Request{SystemPrompt: "sys", UserPrompt: "bakery site", MaxTokens: 100})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Content != `{"hero": {}}` {
		t.Errorf("Content = %q", resp.Content)
	}
	if resp.Model != "anthropic:claude-sonnet-4-6" {
		t.Errorf("Model = %q", resp.Model)
	}
	if !strings.Contains(seen, "bakery site") {
		t.Errorf("request body missing user prompt: %s", seen)
	}
}

func TestOpenAIProvider_Complete(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")
	srv := stubServer(t, http.StatusOK, openaiOK, nil)

	p, err := NewProvider(Settings{Model: "openai:gpt-4o", BaseURL: srv.URL + "/"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	resp, err := p.Complete(context.Background(), &Request{UserPrompt: "hi"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if resp.Model != "openai:gpt-4o" {
		t.Errorf("Model = %q", resp.Model)
	}
}

func TestClassify_HTTPStatus(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	cases := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindAuth},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindUpstream},
		{http.StatusBadRequest, KindBadRequest},
	}
	for _, model := range []string{"anthropic:claude-sonnet-4-6", "openai:gpt-4o"} {
		for _, tc := range cases {
			srv := stubServer(t, tc.status, `{"type":"error","error":{"type":"x","message":"nope"}}`, nil)
			p, err := NewProvider(Settings{Model: model, BaseURL: srv.URL + "/"})
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			_, err = p.Complete(context.Background(), &Request{UserPrompt: "hi", MaxTokens: 10})
			if err == nil {
				t.Fatalf("%s %d: expected error", model, tc.status)
			}
			ge := classify(err)
			if ge.Kind != tc.want {
				t.Errorf("%s %d: Kind = %q, want %q", model, tc.status, ge.Kind, tc.want)
			}
			if ge.Status != tc.status {
				t.Errorf("%s %d: Status = %d", model, tc.status, ge.Status)
			}
			if strings.Contains(ge.Message, "nope") {
				t.Errorf("message leaks raw upstream body: %q", ge.Message)
			}
		}
	}
}

func TestClassify_Transport(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/"
	srv.Close()

	p, err := NewProvider(Settings{Model: "anthropic:claude-sonnet-4-6", BaseURL: url})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	_, err = p.Complete(context.Background(), &Request{UserPrompt: "hi"})
	if got := classify(err).Kind; got != KindTransport {
		t.Errorf("Kind = %q, want transport", got)
	}
}

func TestClassify_SentinelKinds(t *testing.T) {
	if got := classify(context.DeadlineExceeded).Kind; got != KindTimeout {
		t.Errorf("deadline: got %q", got)
	}
	if got := classify(errEmptyCompletion).Kind; got != KindEmpty {
		t.Errorf("empty: got %q", got)
	}
	if !IsTimeout(classify(context.DeadlineExceeded)) {
		t.Error("IsTimeout = false")
	}
	if KindOf(errors.New("plain")) != "" {
		t.Error("KindOf on a plain error should be empty")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Errorf("truncate short string: got %q", got)
	}
	if got := truncate("hello world", 5); got != "hello..." {
		t.Errorf("truncate long string: got %q", got)
	}
	if got := truncate("héllo", 3); got != "hél..." {
		t.Errorf("truncate multibyte: got %q, want %q", got, "hél...")
	}
}
