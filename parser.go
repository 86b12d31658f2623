package quakeagent

import (
	"regexp"
	"strings"
)

// FinalAnswerMarker is the literal that classifies model output as a final
// answer. The answer is everything after the marker's last occurrence.
const FinalAnswerMarker = "Final Answer:"

// actionPattern captures the tool name after "Action:" and everything after
// "Action Input:". The input group is dotall so multi-line JSON arguments
// survive. Optional digits tolerate numbered variants ("Action 2:") that
// some models emit.
var actionPattern = regexp.MustCompile(`(?s)Action\s*\d*\s*:\s*(.*?)\s*Action\s*\d*\s*Input\s*\d*\s*:\s*(.*)`)

// ParsedOutput is the classification of one raw model output: either a
// final answer (Finish set) or the next action to dispatch.
type ParsedOutput struct {
	// Finish reports whether the output contained a final answer.
	Finish bool

	// Answer is the final answer text, set only when Finish is true.
	Answer string

	// ToolName and ToolInput describe the next action, set when Finish is
	// false.
	ToolName  string
	ToolInput string

	// RawLog is the raw model output behind this classification. The
	// formatter replays it verbatim into the scratchpad on later
	// iterations.
	RawLog string
}

// ParseOutput classifies raw model output. The parser is stateless; loop
// state lives in the transcript.
//
// Classification rules:
//   - Text containing [FinalAnswerMarker] is a Finish. The answer is the
//     whitespace-trimmed text after the last occurrence of the marker.
//   - Otherwise the Action / Action Input grammar applies. The tool name is
//     whitespace-trimmed; the input is trimmed of surrounding whitespace and
//     one pair of surrounding double quotes.
//   - Anything else fails with *[ParseError].
func ParseOutput(text string) (*ParsedOutput, error) {
	if idx := strings.LastIndex(text, FinalAnswerMarker); idx >= 0 {
		return &ParsedOutput{
			Finish: true,
			Answer: strings.TrimSpace(text[idx+len(FinalAnswerMarker):]),
			RawLog: text,
		}, nil
	}

	match := actionPattern.FindStringSubmatch(text)
	if match == nil {
		return nil, &ParseError{Output: text}
	}

	return &ParsedOutput{
		ToolName:  strings.TrimSpace(match[1]),
		ToolInput: trimSurroundingQuotes(strings.TrimSpace(match[2])),
		RawLog:    text,
	}, nil
}

// trimSurroundingQuotes removes exactly one pair of surrounding double
// quotes, if present.
func trimSurroundingQuotes(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}
