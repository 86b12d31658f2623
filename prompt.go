package quakeagent

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var promptTemplateContent string

// DefaultPromptTemplate is the default instruction scaffold. It has five
// parts: role framing, the tool catalogue, the output-format instructions
// (the Question/Thought/Action/Action Input/Observation cycle), the user's
// question, and the accumulated scratchpad.
//
// Replace it via [Formatter.WithTemplate]; the template receives a
// [PromptData].
var DefaultPromptTemplate = template.Must(
	template.New("prompt").Parse(promptTemplateContent),
)

// PromptData is the data passed to the prompt template.
type PromptData struct {
	// Tools is the tool catalogue: one "{name}: {description}" line per
	// registered tool, joined by newlines.
	Tools string

	// ToolNames enumerates the registered tool names, comma-separated.
	ToolNames string

	// Question is the user's question, verbatim.
	Question string

	// Scratchpad is the rendered transcript of previous iterations.
	Scratchpad string

	// Time provides clock access, e.g. {{.Time.Today}}.
	Time TimeProvider
}

// Formatter renders the model prompt from the question and the transcript
// so far. Rendering has no side effects: the same question, transcript,
// registry, and time provider always produce the same text, which is what
// makes the loop testable without a live model.
type Formatter struct {
	registry     *Registry
	tmpl         *template.Template
	timeProvider TimeProvider
}

// NewFormatter creates a Formatter over the given registry with
// [DefaultPromptTemplate] and the system clock.
func NewFormatter(registry *Registry) *Formatter {
	return &Formatter{
		registry:     registry,
		tmpl:         DefaultPromptTemplate,
		timeProvider: NewDefaultTimeProvider(),
	}
}

// WithTemplate sets a custom prompt template. Returns the formatter for
// chaining.
func (f *Formatter) WithTemplate(tmpl *template.Template) *Formatter {
	f.tmpl = tmpl
	return f
}

// WithTimeProvider sets the time provider exposed to the template. Use a
// [FixedTimeProvider] in tests. Returns the formatter for chaining.
func (f *Formatter) WithTimeProvider(tp TimeProvider) *Formatter {
	f.timeProvider = tp
	return f
}

// Render produces the full model prompt for one iteration.
func (f *Formatter) Render(question string, transcript []Step) (string, error) {
	data := PromptData{
		Tools:      renderToolLines(f.registry),
		ToolNames:  strings.Join(f.registry.Names(), ", "),
		Question:   question,
		Scratchpad: renderScratchpad(transcript),
		Time:       f.timeProvider,
	}

	var buf bytes.Buffer
	if err := f.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("quakeagent: execute prompt template: %w", err)
	}
	return buf.String(), nil
}

// renderToolLines builds the tool catalogue, one line per tool.
func renderToolLines(registry *Registry) string {
	lines := make([]string, 0, len(registry.Names()))
	for _, tool := range registry.Tools() {
		lines = append(lines, fmt.Sprintf("%s: %s", tool.Name(), tool.Description()))
	}
	return strings.Join(lines, "\n")
}

// renderScratchpad replays each step's raw model log followed by its
// observation and a fresh "Thought: " opener, so the model continues the
// cycle exactly where it left off.
func renderScratchpad(transcript []Step) string {
	var sb strings.Builder
	for _, step := range transcript {
		sb.WriteString(step.RawLog)
		sb.WriteString("\nObservation: ")
		sb.WriteString(step.Observation)
		sb.WriteString("\nThought: ")
	}
	return sb.String()
}
