// ABOUTME: Runtime abstracts the model-serving backend used for generation
// ABOUTME: Lifecycle and generation behind one injected capability interface
package chat

import (
	"context"

	"github.com/harper/docrag/internal/models"
)

// Runtime is the model-serving capability the session depends on. Remote
// endpoints implement Start and Stop as no-ops; a locally managed server
// would start and stop its own process here.
type Runtime interface {
	Start(ctx context.Context) error
	EnsureModel(ctx context.Context) error
	Generate(ctx context.Context, history []models.ChatMessage) (string, error)
	GenerateStream(ctx context.Context, history []models.ChatMessage, emit func(token string)) error
	Stop() error
}
