package quakeagent

import (
	"errors"
	"fmt"
)

// ErrMaxIterationsExceeded is returned when the agent loop reaches its
// iteration ceiling without the model producing a final answer.
var ErrMaxIterationsExceeded = errors.New("quakeagent: maximum iterations exceeded")

// ParseError is returned when model output matches neither the final answer
// marker nor the Action / Action Input grammar. It is fatal for the run:
// the model broke the output protocol, so there is no observation to feed
// back to it.
type ParseError struct {
	// Output is the raw model output that failed to classify.
	Output string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("quakeagent: could not parse model output: %q", e.Output)
}

// UnknownToolError is returned when a parsed action names a tool that is
// not in the registry. Like [ParseError] it aborts the run, since the
// prompt only ever advertises registered tools.
type UnknownToolError struct {
	// Name is the tool name the model asked for.
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("quakeagent: unknown tool %q", e.Name)
}
