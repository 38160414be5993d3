package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go"
)

// Kind classifies a completion failure.
type Kind string

const (
	KindAuth        Kind = "auth"
	KindRateLimited Kind = "rate_limited"
	KindUpstream    Kind = "upstream"
	KindBadRequest  Kind = "bad_request"
	KindTimeout     Kind = "timeout"
	KindTransport   Kind = "transport"
	KindEmpty       Kind = "empty"
)

var errEmptyCompletion = errors.New("completion contained no text")

// Error is the normalized failure returned by the Gateway. Message is safe to
// show to a user; Err keeps the underlying cause for logs.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or "" if err is not a gateway Error.
func KindOf(err error) Kind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}

// IsTimeout reports whether err is a gateway timeout.
func IsTimeout(err error) bool { return KindOf(err) == KindTimeout }

// classify maps a provider error onto the small Kind taxonomy.
func classify(err error) *Error {
	var ge *Error
	if errors.As(err, &ge) {
		return ge
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "the completion service did not respond in time", Err: err}
	}
	if errors.Is(err, errEmptyCompletion) {
		return &Error{Kind: KindEmpty, Message: "the completion service returned an empty response", Err: err}
	}
	if status, ok := statusOf(err); ok {
		return fromStatus(status, err)
	}
	return &Error{Kind: KindTransport, Message: fmt.Sprintf("could not reach the completion service: %s", truncate(err.Error(), 200)), Err: err}
}

func statusOf(err error) (int, bool) {
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return ae.StatusCode, true
	}
	var oe *openai.Error
	if errors.As(err, &oe) {
		return oe.StatusCode, true
	}
	return 0, false
}

func fromStatus(status int, err error) *Error {
	e := &Error{Status: status, Err: err}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuth
		e.Message = "authentication with the completion service failed; check the configured API key"
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.Message = "the completion service is rate limiting requests; retry shortly"
	case status >= http.StatusInternalServerError:
		e.Kind = KindUpstream
		e.Message = fmt.Sprintf("the completion service is unavailable (HTTP %d); retry shortly", status)
	default:
		e.Kind = KindBadRequest
		e.Message = fmt.Sprintf("the completion service rejected the request (HTTP %d)", status)
	}
	return e
}
