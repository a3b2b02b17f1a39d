// ABOUTME: Conversation session with retrieval-augmented prompting
// ABOUTME: Owns the append-only history and builds Context/Question prompts
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/harper/docrag/internal/models"
)

const systemPrompt = "You are a helpful assistant. Use the provided context. " +
	"If the answer is not in the context, say 'I don't know'."

// WelcomeMessage is the assistant greeting seeded into every session
const WelcomeMessage = "Hello! I'm your RAG assistant. I can answer questions based on " +
	"the indexed documents. Type 'exit' or 'end' to quit."

// ContextRetriever supplies ranked context documents for a question
type ContextRetriever interface {
	Retrieve(query string) []models.RetrievedDocument
}

// Session is one interactive conversation. History is append-only and
// owned exclusively by the session; the retrieval core never mutates it.
type Session struct {
	id        string
	retriever ContextRetriever
	runtime   Runtime
	history   []models.ChatMessage
}

// NewSession creates a session seeded with the system prompt and welcome
// message
func NewSession(retriever ContextRetriever, runtime Runtime) *Session {
	return &Session{
		id:        fmt.Sprintf("session_%s", uuid.New().String()[:8]),
		retriever: retriever,
		runtime:   runtime,
		history: []models.ChatMessage{
			{Role: models.RoleSystem, Content: systemPrompt},
			{Role: models.RoleAssistant, Content: WelcomeMessage},
		},
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// BuildRAGPrompt constructs the augmented prompt for a question. The
// Context and Question markers are always present, even with no retrieved
// documents: downstream consumers rely on the fixed shape.
func BuildRAGPrompt(question string, docs []models.RetrievedDocument) string {
	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}
	return fmt.Sprintf("Context:\n%s\n\nQuestion:\n%s", strings.Join(texts, "\n\n"), question)
}

// Ask retrieves context for the question, appends the augmented prompt as
// a user turn, and returns the complete assistant response
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	docs := s.retriever.Retrieve(question)
	s.history = append(s.history, models.ChatMessage{
		Role:    models.RoleUser,
		Content: BuildRAGPrompt(question, docs),
	})

	answer, err := s.runtime.Generate(ctx, s.history)
	if err != nil {
		return "", fmt.Errorf("generating response: %w", err)
	}

	s.history = append(s.history, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: answer,
	})
	return answer, nil
}

// AskStream is Ask with token-by-token delivery via emit. The assistant
// turn is appended once the stream completes.
func (s *Session) AskStream(ctx context.Context, question string, emit func(token string)) error {
	docs := s.retriever.Retrieve(question)
	s.history = append(s.history, models.ChatMessage{
		Role:    models.RoleUser,
		Content: BuildRAGPrompt(question, docs),
	})

	var response strings.Builder
	err := s.runtime.GenerateStream(ctx, s.history, func(token string) {
		response.WriteString(token)
		emit(token)
	})
	if err != nil {
		return fmt.Errorf("streaming response: %w", err)
	}

	s.history = append(s.history, models.ChatMessage{
		Role:    models.RoleAssistant,
		Content: response.String(),
	})
	return nil
}

// History returns a copy of the conversation history
func (s *Session) History() []models.ChatMessage {
	out := make([]models.ChatMessage, len(s.history))
	copy(out, s.history)
	return out
}
