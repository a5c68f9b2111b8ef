package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/RichardoC/support-chat/internal/llm"
	"github.com/RichardoC/support-chat/internal/models"
	"github.com/RichardoC/support-chat/internal/version"
	"go.uber.org/zap"
)

// GenericErrorMessage is the only error text the chat endpoint ever returns.
const GenericErrorMessage = "There was an error processing your request."

// Completer produces the assistant reply for a conversation.
type Completer interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

type Handler struct {
	llm    Completer
	logger *zap.Logger
}

func NewHandler(completer Completer, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		llm:    completer,
		logger: logger,
	}
}

// HandleChat relays the posted conversation to the provider and writes the
// reply as the raw response body.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	logger := h.logger.With(zap.String("request_id", RequestIDFromContext(r.Context())))

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Error("Failed to decode chat request", zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	content, err := h.llm.Complete(r.Context(), req.Messages)
	if err != nil {
		logger.Error("Failed to get completion",
			zap.Error(err),
			zap.Stringer("kind", llm.KindOf(err)),
			zap.Int("messages", len(req.Messages)))
		h.respondError(w, http.StatusInternalServerError, GenericErrorMessage)
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	if content != "" {
		if _, err := io.WriteString(w, content); err != nil {
			logger.Warn("Failed to write chat response", zap.Error(err))
			return
		}
	}
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

func (h *Handler) HandleVersion(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, version.Get())
}
