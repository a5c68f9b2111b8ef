package widget

import (
	"context"
	"strings"
	"sync"

	"github.com/RichardoC/support-chat/internal/models"
	"go.uber.org/zap"
)

// FallbackReply replaces the assistant reply whenever a send fails for any reason.
const FallbackReply = "I'm sorry, but I encountered an error. Please try again later."

// KeyEvent is a key press delivered by the front-end.
type KeyEvent struct {
	Key   string
	Shift bool
	Alt   bool
	Ctrl  bool
	Meta  bool
}

// Control describes the state of the send button and input field.
type Control struct {
	Label    string
	Disabled bool
}

// Store drives the send/receive cycle for one conversation. At most one send is
// outstanding at a time.
type Store struct {
	conv      *Conversation
	transport Transport
	logger    *zap.Logger

	// appendMu orders the user append of one send against the assistant
	// append of the previous one.
	appendMu sync.Mutex

	mu    sync.Mutex
	input string
	busy  bool
}

func NewStore(transport Transport, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		conv:      NewConversation(),
		transport: transport,
		logger:    logger,
	}
}

func (s *Store) Conversation() *Conversation {
	return s.conv
}

// SetInput replaces the pending input. It is ignored while a send is in flight.
func (s *Store) SetInput(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.input = text
	return true
}

func (s *Store) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Store) SendControl() Control {
	if s.Busy() {
		return Control{Label: "Sending...", Disabled: true}
	}
	return Control{Label: "Send"}
}

// HandleKey sends the pending input on a bare Enter. It reports whether a send
// took place.
func (s *Store) HandleKey(ctx context.Context, ev KeyEvent) bool {
	if ev.Key != "Enter" || ev.Shift || ev.Alt || ev.Ctrl || ev.Meta {
		return false
	}
	return s.Send(ctx)
}

// Send appends the pending input as a user message, exchanges the conversation
// with the relay and appends the reply. It is a no-op, returning false, when
// the trimmed input is empty or another send is in flight.
func (s *Store) Send(ctx context.Context) bool {
	snapshot, ok := s.appendUser()
	if !ok {
		return false
	}
	s.send(ctx, snapshot)
	return true
}

func (s *Store) appendUser() ([]models.Message, bool) {
	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	s.mu.Lock()
	text := strings.TrimSpace(s.input)
	if text == "" || s.busy {
		s.mu.Unlock()
		return nil, false
	}
	s.input = ""
	s.busy = true
	s.mu.Unlock()

	return s.conv.Append(models.Message{Role: models.RoleUser, Content: text}), true
}

func (s *Store) send(ctx context.Context, snapshot []models.Message) {
	content := FallbackReply
	reply, err := s.transport.Exchange(ctx, snapshot)
	if err != nil {
		s.logger.Warn("Chat request failed", zap.Error(err), zap.Int("messages", len(snapshot)))
	} else {
		content = strings.TrimSpace(reply)
	}

	s.appendMu.Lock()
	defer s.appendMu.Unlock()

	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()

	s.conv.Append(models.Message{Role: models.RoleAssistant, Content: content})
}
