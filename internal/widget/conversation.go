// Package widget holds the client side of the support chat: the in-memory
// conversation, the send/receive cycle against the relay, and rendering.
package widget

import (
	"sync"

	"github.com/RichardoC/support-chat/internal/models"
)

// Greeting opens every conversation.
const Greeting = "Hi! I'm the Headstarter support assistant. How can I help you today?"

type subscriber struct {
	id int
	fn func([]models.Message)
}

// Conversation is an append-only message list that notifies subscribers after
// every append. It is safe for concurrent use.
type Conversation struct {
	mu       sync.Mutex
	messages []models.Message
	subs     []subscriber
	nextID   int
}

func NewConversation() *Conversation {
	return &Conversation{
		messages: []models.Message{{Role: models.RoleAssistant, Content: Greeting}},
	}
}

// Append adds m to the end of the conversation and returns a snapshot that
// includes it. Subscribers run synchronously, in registration order, after the
// lock is released.
func (c *Conversation) Append(m models.Message) []models.Message {
	c.mu.Lock()
	c.messages = append(c.messages, m)
	snapshot := c.snapshotLocked()
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, s := range subs {
		s.fn(snapshot)
	}
	return snapshot
}

func (c *Conversation) Snapshot() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Conversation) snapshotLocked() []models.Message {
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// Subscribe registers fn to receive a snapshot after each append. fn is called
// once immediately with the current state. The returned func unsubscribes.
func (c *Conversation) Subscribe(fn func([]models.Message)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	fn(snapshot)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}
