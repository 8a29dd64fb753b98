package port

import (
	"context"

	"github.com/srinathstart/HealthSyncAI/internal/llm"
)

// ChatCompleter sends a chat conversation to a language model and returns
// the model's text answer verbatim.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
	// Model reports the model id answers are produced with.
	Model() string
}
