package models

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"` // user, assistant, or system
	Content string `json:"content"`
}

// ChatRequest is the body accepted by POST /api/chat.
type ChatRequest struct {
	Messages []Message `json:"messages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
