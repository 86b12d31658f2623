// Package tt provides shared test doubles and assertions.
package tt

import (
	"context"

	"github.com/quakewatch/quakeagent"
	"github.com/tmc/langchaingo/llms"
)

// ScriptedModel implements quakeagent.Model with a queue of canned
// responses. When the queue runs out, the last response is repeated, which
// makes it easy to script a model that never converges.
type ScriptedModel struct {
	responses []string
	errors    []error
	callCount int

	// CapturedPrompts stores the prompt passed to each Call.
	CapturedPrompts []string

	// CapturedOptions stores the resolved call options of each Call.
	CapturedOptions []llms.CallOptions
}

// NewScriptedModel creates an empty ScriptedModel.
func NewScriptedModel() *ScriptedModel {
	return &ScriptedModel{}
}

// AddResponse queues a response. Returns the model for chaining.
func (m *ScriptedModel) AddResponse(text string) *ScriptedModel {
	m.responses = append(m.responses, text)
	return m
}

// AddError queues an error for the call at the current queue position.
// Returns the model for chaining.
func (m *ScriptedModel) AddError(err error) *ScriptedModel {
	for len(m.responses) <= len(m.errors) {
		m.responses = append(m.responses, "")
	}
	m.errors = append(m.errors, err)
	return m
}

// CallCount returns the number of times Call has been invoked.
func (m *ScriptedModel) CallCount() int {
	return m.callCount
}

// Call implements quakeagent.Model.
func (m *ScriptedModel) Call(
	_ context.Context,
	prompt string,
	options ...llms.CallOption,
) (string, error) {
	idx := m.callCount
	m.callCount++

	m.CapturedPrompts = append(m.CapturedPrompts, prompt)

	resolved := llms.CallOptions{}
	for _, opt := range options {
		opt(&resolved)
	}
	m.CapturedOptions = append(m.CapturedOptions, resolved)

	if idx < len(m.errors) && m.errors[idx] != nil {
		return "", m.errors[idx]
	}
	if idx < len(m.responses) {
		return m.responses[idx], nil
	}
	if len(m.responses) > 0 {
		return m.responses[len(m.responses)-1], nil
	}
	return "", nil
}

// Compile-time check that ScriptedModel implements quakeagent.Model.
var _ quakeagent.Model = (*ScriptedModel)(nil)
