package quakeagent

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// StopMarker is the stop sequence passed to the model on every call. Model
// output is also truncated at the marker's first occurrence before parsing,
// so a model that hallucinates its own observation never gets to keep it.
const StopMarker = "\nObservation:"

// DefaultMaxIterations bounds a run when no explicit ceiling is configured.
// Without a ceiling a non-converging model would loop forever.
const DefaultMaxIterations = 15

// Step is one executed action in a run's transcript. The transcript grows
// monotonically within a run, is owned exclusively by that run, and is
// discarded when the run ends.
type Step struct {
	// ToolName is the dispatched tool's name.
	ToolName string

	// ToolInput is the parsed action input handed to the tool.
	ToolInput string

	// RawLog is the model output that produced this step, replayed verbatim
	// into later prompts.
	RawLog string

	// Observation is the stringified tool result, or the tool's error text.
	Observation string
}

// Result is the outcome of a run that reached a final answer.
type Result struct {
	// Answer is the final answer extracted from the model output.
	Answer string

	// Steps is the transcript of executed actions, in order.
	Steps []Step

	// Iterations is the number of model calls the run took.
	Iterations int
}

// Hook receives progress notifications during a run. All methods are called
// synchronously from the loop, in order. The CLI uses one for live display;
// loggers.Zap writes structured logs through another.
type Hook interface {
	// OnModelResponse is called with each (truncated) raw model output.
	OnModelResponse(iteration int, text string)

	// OnAction is called before a tool is dispatched.
	OnAction(toolName, toolInput string)

	// OnObservation is called with the observation fed back to the model.
	OnObservation(toolName, observation string)

	// OnFinish is called once with the final answer.
	OnFinish(answer string)
}

// Agent runs the ReAct loop: render prompt, call the model, parse the
// output, dispatch the chosen tool, and repeat until a final answer or a
// stop condition.
//
// Error policy: tool invocation failures (unresolvable places, remote
// errors, bad argument JSON) become observations, giving the model a chance
// to react to the failure text. Contract violations are fatal for the run:
// *[ParseError] when the output fits neither grammar, *[UnknownToolError]
// when the model names an unregistered tool, and [ErrMaxIterationsExceeded]
// when the run does not converge.
type Agent struct {
	model         Model
	registry      *Registry
	formatter     *Formatter
	maxIterations int
	stopMarker    string
	hooks         []Hook
}

// New creates an Agent with the given model and tool registry, using a
// default [Formatter] over the registry and [DefaultMaxIterations].
func New(model Model, registry *Registry) *Agent {
	return &Agent{
		model:         model,
		registry:      registry,
		formatter:     NewFormatter(registry),
		maxIterations: DefaultMaxIterations,
		stopMarker:    StopMarker,
	}
}

// WithFormatter sets a custom prompt formatter. Returns the agent for
// chaining.
func (a *Agent) WithFormatter(f *Formatter) *Agent {
	a.formatter = f
	return a
}

// WithMaxIterations sets the iteration ceiling. Returns the agent for
// chaining.
func (a *Agent) WithMaxIterations(n int) *Agent {
	a.maxIterations = n
	return a
}

// WithHooks registers hooks notified during runs. Returns the agent for
// chaining.
func (a *Agent) WithHooks(hooks ...Hook) *Agent {
	a.hooks = append(a.hooks, hooks...)
	return a
}

// Run executes the loop for one question until the model emits a final
// answer, a contract violation aborts the run, or the iteration ceiling is
// reached. Execution is strictly sequential: each iteration blocks on one
// model call and at most one tool call.
func (a *Agent) Run(ctx context.Context, question string) (*Result, error) {
	transcript := make([]Step, 0)

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		prompt, err := a.formatter.Render(question, transcript)
		if err != nil {
			return nil, err
		}

		output, err := a.model.Call(ctx, prompt,
			llms.WithTemperature(0),
			llms.WithStopWords([]string{a.stopMarker}),
		)
		if err != nil {
			return nil, fmt.Errorf("quakeagent: model call: %w", err)
		}

		output = truncateAtMarker(output, a.stopMarker)
		a.fireModelResponse(iteration, output)

		parsed, err := ParseOutput(output)
		if err != nil {
			return nil, err
		}

		if parsed.Finish {
			a.fireFinish(parsed.Answer)
			return &Result{
				Answer:     parsed.Answer,
				Steps:      transcript,
				Iterations: iteration,
			}, nil
		}

		tool, ok := a.registry.Lookup(parsed.ToolName)
		if !ok {
			return nil, &UnknownToolError{Name: parsed.ToolName}
		}
		a.fireAction(parsed.ToolName, parsed.ToolInput)

		observation, err := tool.Call(ctx, parsed.ToolInput)
		if err != nil {
			// The error text is the observation; the model decides how to
			// proceed (retry with different input, or give up gracefully).
			observation = "Error: " + err.Error()
		}
		a.fireObservation(parsed.ToolName, observation)

		transcript = append(transcript, Step{
			ToolName:    parsed.ToolName,
			ToolInput:   parsed.ToolInput,
			RawLog:      parsed.RawLog,
			Observation: observation,
		})
	}

	return nil, ErrMaxIterationsExceeded
}

// truncateAtMarker cuts s at the first occurrence of marker.
func truncateAtMarker(s, marker string) string {
	if idx := strings.Index(s, marker); idx >= 0 {
		return s[:idx]
	}
	return s
}

func (a *Agent) fireModelResponse(iteration int, text string) {
	for _, h := range a.hooks {
		h.OnModelResponse(iteration, text)
	}
}

func (a *Agent) fireAction(toolName, toolInput string) {
	for _, h := range a.hooks {
		h.OnAction(toolName, toolInput)
	}
}

func (a *Agent) fireObservation(toolName, observation string) {
	for _, h := range a.hooks {
		h.OnObservation(toolName, observation)
	}
}

func (a *Agent) fireFinish(answer string) {
	for _, h := range a.hooks {
		h.OnFinish(answer)
	}
}
