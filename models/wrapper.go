// Package models adapts LangChainGo models to the quakeagent Model
// interface.
package models

import (
	"context"

	"github.com/quakewatch/quakeagent"
	"github.com/tmc/langchaingo/llms"
)

// Wrapper wraps an llms.Model and implements quakeagent.Model.
//
// Example usage:
//
//	llm, _ := openai.New(openai.WithToken(apiKey), openai.WithModel("gpt-4o-mini"))
//	model := models.NewWrapper(llm)
type Wrapper struct {
	model    llms.Model
	defaults []llms.CallOption
}

// NewWrapper creates a new Wrapper around the given llms.Model.
func NewWrapper(model llms.Model) *Wrapper {
	return &Wrapper{model: model}
}

// WithDefaultOptions sets call options applied to every Call, before any
// per-call options. Returns the wrapper for chaining.
func (m *Wrapper) WithDefaultOptions(options ...llms.CallOption) *Wrapper {
	m.defaults = append(m.defaults, options...)
	return m
}

// Unwrap returns the underlying llms.Model.
func (m *Wrapper) Unwrap() llms.Model {
	return m.model
}

// Call implements quakeagent.Model. The prompt is sent as a single human
// message; per-call options override the wrapper's defaults.
func (m *Wrapper) Call(
	ctx context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	opts := make([]llms.CallOption, 0, len(m.defaults)+len(options))
	opts = append(opts, m.defaults...)
	opts = append(opts, options...)
	return llms.GenerateFromSinglePrompt(ctx, m.model, prompt, opts...)
}

// Compile-time check that Wrapper implements quakeagent.Model.
var _ quakeagent.Model = (*Wrapper)(nil)
