// Package llmtest provides a scripted completion provider for tests.
package llmtest

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dshills/sitegen/internal/llm"
)

// ErrNoScript is returned when a Fake has nothing left to answer with.
var ErrNoScript = errors.New("llmtest: no scripted response")

type step struct {
	content string
	err     error
}

// Fake is an llm.Provider that replays scripted replies in order. The last
// step repeats once the script is exhausted. Safe for concurrent use.
type Fake struct {
	// Delay is applied before answering; the request context can cut it short.
	Delay time.Duration

	mu       sync.Mutex
	steps    []step
	fn       func(req *llm.Request) (string, error)
	requests []llm.Request
}

// New returns a Fake that answers with each response in turn.
func New(responses ...string) *Fake {
	f := &Fake{}
	for _, r := range responses {
		f.steps = append(f.steps, step{content: r})
	}
	return f
}

// NewFunc returns a Fake that computes every reply with fn.
func NewFunc(fn func(req *llm.Request) (string, error)) *Fake {
	return &Fake{fn: fn}
}

// Reply appends a successful response to the script.
func (f *Fake) Reply(content string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, step{content: content})
	return f
}

// Fail appends a failing call to the script.
func (f *Fake) Fail(err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps = append(f.steps, step{err: err})
	return f
}

// Complete implements llm.Provider.
func (f *Fake) Complete(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.mu.Lock()
	f.requests = append(f.requests, *req)
	n := len(f.requests)
	f.mu.Unlock()

	if f.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Delay):
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	content, err := f.next(req, n)
	if err != nil {
		return nil, err
	}
	return &llm.Response{Content: content, Model: "fake:scripted"}, nil
}

func (f *Fake) next(req *llm.Request, call int) (string, error) {
	if f.fn != nil {
		return f.fn(req)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.steps) == 0 {
		return "", ErrNoScript
	}
	i := call - 1
	if i >= len(f.steps) {
		i = len(f.steps) - 1
	}
	s := f.steps[i]
	return s.content, s.err
}

// Calls returns how many completions were requested.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// Requests returns a copy of every request received.
func (f *Fake) Requests() []llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]llm.Request(nil), f.requests...)
}

// LastRequest returns the most recent request, or the zero value.
func (f *Fake) LastRequest() llm.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		return llm.Request{}
	}
	return f.requests[len(f.requests)-1]
}
