package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/tmc/langchaingo/llms/openai"
)

// Kind tags a provider failure by cause. The HTTP layer still answers every
// kind with the same generic error; the tag only feeds logs.
type Kind int

const (
	Unknown Kind = iota
	RateLimited
	AuthFailed
	NetworkError
	Malformed
)

func (k Kind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case AuthFailed:
		return "auth_failed"
	case NetworkError:
		return "network_error"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

var ErrMissingAPIKey = errors.New("missing provider API key")

// ProviderError wraps an error returned by the completion provider.
type ProviderError struct {
	Kind Kind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider request failed (%s): %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// The openai client's own client package reports an empty choice list with an
// unexported sentinel, so it can only be matched by text.
const emptyResponseText = "empty response"

// isEmptyResponse reports whether err means the provider answered without any
// choices.
func isEmptyResponse(err error) bool {
	if errors.Is(err, openai.ErrEmptyResponse) {
		return true
	}
	for ; err != nil; err = errors.Unwrap(err) {
		if err.Error() == emptyResponseText {
			return true
		}
	}
	return false
}

// langchaingo's openai client reports HTTP failures only through the error text.
var statusPattern = regexp.MustCompile(`status code: (\d{3})`)

// Classify maps a raw provider error to a Kind.
func Classify(err error) Kind {
	if err == nil {
		return Unknown
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return NetworkError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return NetworkError
	}

	msg := err.Error()
	if m := statusPattern.FindStringSubmatch(msg); m != nil {
		code, _ := strconv.Atoi(m[1])
		switch {
		case code == 429:
			return RateLimited
		case code == 401 || code == 403:
			return AuthFailed
		case code == 400 || code == 404 || code == 413 || code == 422:
			return Malformed
		case code >= 500:
			return NetworkError
		}
		return Unknown
	}

	switch {
	case strings.Contains(msg, "connection refused"), strings.Contains(msg, "no such host"):
		return NetworkError
	case strings.Contains(msg, "not supported"):
		return Malformed
	}
	return Unknown
}

// KindOf returns the Kind carried by err, classifying it if it is not a
// *ProviderError.
func KindOf(err error) Kind {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return Classify(err)
}
