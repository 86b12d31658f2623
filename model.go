package quakeagent

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// Model is the text-completion capability the agent loop drives: prompt in,
// completion out. The loop always passes [llms.WithStopWords] with the
// observation marker and [llms.WithTemperature] pinned to zero; providers
// that ignore stop sequences are handled by the loop's own truncation.
//
// Use models.NewWrapper to adapt any LangChainGo llms.Model, or a scripted
// implementation for deterministic tests.
type Model interface {
	Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}
