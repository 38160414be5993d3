package llm_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/sitegen/internal/llm"
	"github.com/dshills/sitegen/internal/llm/llmtest"
)

type outcomes struct {
	mu  sync.Mutex
	got []string
}

func (o *outcomes) Completion(outcome string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.got = append(o.got, outcome)
}

func TestGateway_AppliesDefaultsAndRedacts(t *testing.T) {
	fake := llmtest.New(`{"ok": true}`)
	rec := &outcomes{}
	gw := llm.NewGateway(fake, llm.GatewayConfig{Temperature: 0.4, MaxTokens: 900}, nil, rec)

	_, err := gw.Complete(context.Background(), &llm.Request{
		UserPrompt: "Bakery site. admin password: hunter2",
	})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	req := fake.LastRequest()
	if strings.Contains(req.UserPrompt, "hunter2") {
		t.Errorf("secret reached the provider: %q", req.UserPrompt)
	}
	if req.Temperature != 0.4 || req.MaxTokens != 900 {
		t.Errorf("defaults not applied: %+v", req)
	}
	if len(rec.got) != 1 || rec.got[0] != "ok" {
		t.Errorf("outcomes = %v", rec.got)
	}
}

func TestGateway_Timeout(t *testing.T) {
	fake := llmtest.New(`{}`)
	fake.Delay = 200 * time.Millisecond
	gw := llm.NewGateway(fake, llm.GatewayConfig{Timeout: 10 * time.Millisecond}, nil, nil)

	_, err := gw.Complete(context.Background(), &llm.Request{UserPrompt: "x"})
	if !llm.IsTimeout(err) {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func TestGateway_CallerCancelIsNotTimeout(t *testing.T) {
	fake := llmtest.New(`{}`)
	fake.Delay = 200 * time.Millisecond
	gw := llm.NewGateway(fake, llm.GatewayConfig{Timeout: time.Second}, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := gw.Complete(ctx, &llm.Request{UserPrompt: "x"})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if llm.KindOf(err) != "" {
		t.Errorf("cancellation should not be classified, got %q", llm.KindOf(err))
	}
}

func TestGateway_EmptyContent(t *testing.T) {
	gw := llm.NewGateway(llmtest.New("   "), llm.GatewayConfig{}, nil, nil)
	_, err := gw.Complete(context.Background(), &llm.Request{UserPrompt: "x"})
	if llm.KindOf(err) != llm.KindEmpty {
		t.Fatalf("expected empty kind, got %v", err)
	}
}

func TestGateway_ProviderErrorIsTransport(t *testing.T) {
	rec := &outcomes{}
	gw := llm.NewGateway(llmtest.New().Fail(errors.New("dial tcp: refused")), llm.GatewayConfig{}, nil, rec)
	_, err := gw.Complete(context.Background(), &llm.Request{UserPrompt: "x"})
	var ge *llm.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *llm.Error, got %T", err)
	}
	if ge.Kind != llm.KindTransport {
		t.Errorf("Kind = %q", ge.Kind)
	}
	if len(rec.got) != 1 || rec.got[0] != "transport" {
		t.Errorf("outcomes = %v", rec.got)
	}
}

type nilProvider struct{}

func (nilProvider) Complete(context.Context, *llm.Request) (*llm.Response, error) { return nil, nil }

func TestGateway_NilResponseIsEmpty(t *testing.T) {
	rec := &outcomes{}
	gw := llm.NewGateway(nilProvider{}, llm.GatewayConfig{}, nil, rec)
	resp, err := gw.Complete(context.Background(), &llm.Request{UserPrompt: "x"})
	if resp != nil {
		t.Errorf("resp = %+v, want nil", resp)
	}
	if llm.KindOf(err) != llm.KindEmpty {
		t.Fatalf("expected empty kind, got %v", err)
	}
	if len(rec.got) != 1 || rec.got[0] != string(llm.KindEmpty) {
		t.Errorf("outcomes = %v", rec.got)
	}
}
