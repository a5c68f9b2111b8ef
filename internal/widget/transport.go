package widget

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/RichardoC/support-chat/internal/models"
)

var ErrTransportStatus = errors.New("unexpected response status")

// Transport carries a conversation to the relay and returns the raw reply.
type Transport interface {
	Exchange(ctx context.Context, messages []models.Message) (string, error)
}

// HTTPTransport posts conversations to the relay's /api/chat endpoint.
type HTTPTransport struct {
	url    string
	client *http.Client
}

func NewHTTPTransport(url string, client *http.Client) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{url: url, client: client}
}

// Exchange sends messages and reads the whole response body before returning.
// Any non-2xx status is an error wrapping ErrTransportStatus.
func (t *HTTPTransport) Exchange(ctx context.Context, messages []models.Message) (string, error) {
	body, err := json.Marshal(models.ChatRequest{Messages: messages})
	if err != nil {
		return "", fmt.Errorf("failed to encode messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %d", ErrTransportStatus, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read reply: %w", err)
	}
	return strings.ToValidUTF8(string(data), "�"), nil
}
