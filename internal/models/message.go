// ABOUTME: Chat message model shared between the session and the model runtime
// ABOUTME: Mirrors the role/content shape of OpenAI-compatible chat APIs
package models

// Message roles in a conversation history.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
