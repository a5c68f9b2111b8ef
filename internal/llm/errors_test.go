package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Unknown},
		{"rate limit", errors.New("API returned unexpected status code: 429: Rate limit reached"), RateLimited},
		{"unauthorized", errors.New("API returned unexpected status code: 401: Invalid API Key"), AuthFailed},
		{"forbidden", errors.New("API returned unexpected status code: 403"), AuthFailed},
		{"bad request", errors.New("API returned unexpected status code: 400: model not found"), Malformed},
		{"unprocessable", errors.New("API returned unexpected status code: 422"), Malformed},
		{"upstream", errors.New("API returned unexpected status code: 503"), NetworkError},
		{"teapot", errors.New("API returned unexpected status code: 418"), Unknown},
		{"deadline", fmt.Errorf("call: %w", context.DeadlineExceeded), NetworkError},
		{"canceled", context.Canceled, NetworkError},
		{"dial", &url.Error{Op: "Post", URL: "http://x", Err: &net.OpError{Op: "dial", Err: errors.New("boom")}}, NetworkError},
		{"refused text", errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), NetworkError},
		{"bad role", errors.New("role robot not supported"), Malformed},
		{"other", errors.New("something odd"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKindOf_PrefersTag(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &ProviderError{Kind: AuthFailed, Err: errors.New("x")})
	if got := KindOf(err); got != AuthFailed {
		t.Errorf("KindOf() = %s, want auth_failed", got)
	}
}
