package llm

// MessageRole identifies the author of a chat message.
type MessageRole string

const (
	// RoleSystem is the role for system prompt messages.
	RoleSystem MessageRole = "system"

	// RoleUser is the role for user-authored messages.
	RoleUser MessageRole = "user"

	// RoleAssistant is the role for model responses.
	RoleAssistant MessageRole = "assistant"
)

// Message is a single entry in a chat-completion exchange.
type Message struct {
	Role    MessageRole
	Content string
}

// NewSystemMessage creates a system message with the given content.
func NewSystemMessage(content string) *Message {
	return &Message{Role: RoleSystem, Content: content}
}

// NewUserMessage creates a user message with the given content.
func NewUserMessage(content string) *Message {
	return &Message{Role: RoleUser, Content: content}
}

// NewAssistantMessage creates an assistant message with the given content.
func NewAssistantMessage(content string) *Message {
	return &Message{Role: RoleAssistant, Content: content}
}
