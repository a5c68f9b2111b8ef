package widget

import (
	"testing"

	"github.com/RichardoC/support-chat/internal/models"
)

func TestNewConversation_Greeting(t *testing.T) {
	conv := NewConversation()

	msgs := conv.Snapshot()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != models.RoleAssistant || msgs[0].Content != Greeting {
		t.Errorf("unexpected first message: %+v", msgs[0])
	}
}

func TestConversation_AppendOnly(t *testing.T) {
	conv := NewConversation()

	snap := conv.Append(models.Message{Role: models.RoleUser, Content: "one"})
	snap[0].Content = "mutated"

	conv.Append(models.Message{Role: models.RoleAssistant, Content: "two"})

	msgs := conv.Snapshot()
	if conv.Len() != 3 || len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Content != Greeting {
		t.Error("snapshot mutation leaked into the conversation")
	}
	if msgs[1].Content != "one" || msgs[2].Content != "two" {
		t.Errorf("unexpected order: %+v", msgs)
	}
}

func TestConversation_Subscribe(t *testing.T) {
	conv := NewConversation()

	var seen []int
	unsubscribe := conv.Subscribe(func(msgs []models.Message) {
		seen = append(seen, len(msgs))
	})

	conv.Append(models.Message{Role: models.RoleUser, Content: "a"})
	conv.Append(models.Message{Role: models.RoleAssistant, Content: "b"})
	unsubscribe()
	conv.Append(models.Message{Role: models.RoleUser, Content: "c"})

	want := []int{1, 2, 3}
	if len(seen) != len(want) {
		t.Fatalf("subscriber saw %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("notification %d had %d messages, want %d", i, seen[i], want[i])
		}
	}
}

func TestConversation_SubscribersInOrder(t *testing.T) {
	conv := NewConversation()

	var order []string
	conv.Subscribe(func([]models.Message) { order = append(order, "first") })
	unsubscribeSecond := conv.Subscribe(func([]models.Message) { order = append(order, "second") })
	conv.Subscribe(func([]models.Message) { order = append(order, "third") })
	unsubscribeSecond()
	order = nil

	conv.Append(models.Message{Role: models.RoleUser, Content: "x"})

	if len(order) != 2 || order[0] != "first" || order[1] != "third" {
		t.Errorf("unexpected notification order: %v", order)
	}
}
