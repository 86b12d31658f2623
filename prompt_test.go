package quakeagent_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quakeagent"
	"github.com/quakewatch/quakeagent/internal/tt"
)

func testFormatter(registry *quakeagent.Registry) *quakeagent.Formatter {
	return quakeagent.NewFormatter(registry).
		WithTimeProvider(&quakeagent.FixedTimeProvider{
			Instant: time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC),
		})
}

func testRegistry() *quakeagent.Registry {
	return quakeagent.NewRegistry(
		&stubTool{
			name:        "Geocode",
			description: "Finds the coordinates of a place.",
		},
		&stubTool{
			name:        "EarthquakeCount",
			description: "Counts earthquakes near a point.",
		},
	)
}

func TestFormatter_Render_EmptyTranscript(t *testing.T) {
	formatter := testFormatter(testRegistry())

	prompt, err := formatter.Render(
		"Is there any earthquake risk near Riverside, CA?", nil)
	require.NoError(t, err)

	expected := strings.Join([]string{
		"Answer the following questions as best you can. Today's date is 2024-02-01. You have access to the following tools:",
		"",
		"Geocode: Finds the coordinates of a place.",
		"EarthquakeCount: Counts earthquakes near a point.",
		"",
		"Use the following format:",
		"",
		"Question: the input question you must answer",
		"Thought: you should always think about what to do",
		"Action: the action to take, should be one of [Geocode, EarthquakeCount]",
		"Action Input: the input to the action",
		"Observation: the result of the action",
		"... (this Thought/Action/Action Input/Observation can repeat N times)",
		"Thought: I now know the final answer",
		"Final Answer: the final answer to the original input question",
		"",
		"Begin!",
		"",
		"Question: Is there any earthquake risk near Riverside, CA?",
		"Thought: ",
	}, "\n")

	tt.RequireTextEqual(t, expected, prompt)
}

func TestFormatter_Render_ReplaysTranscript(t *testing.T) {
	formatter := testFormatter(testRegistry())

	transcript := []quakeagent.Step{
		{
			ToolName:    "Geocode",
			ToolInput:   "Riverside, CA",
			RawLog:      "I should find the coordinates first.\nAction: Geocode\nAction Input: Riverside, CA",
			Observation: "(33.980534, -117.377025)",
		},
	}

	prompt, err := formatter.Render("Is it shaking?", transcript)
	require.NoError(t, err)

	wantTail := "Question: Is it shaking?\n" +
		"Thought: I should find the coordinates first.\n" +
		"Action: Geocode\n" +
		"Action Input: Riverside, CA\n" +
		"Observation: (33.980534, -117.377025)\n" +
		"Thought: "
	assert.True(t, strings.HasSuffix(prompt, wantTail),
		"prompt should end with the replayed transcript, got:\n%s", prompt)
}

func TestFormatter_Render_IsPure(t *testing.T) {
	formatter := testFormatter(testRegistry())
	transcript := []quakeagent.Step{
		{
			ToolName:    "Geocode",
			ToolInput:   "Tokyo",
			RawLog:      "Find it.\nAction: Geocode\nAction Input: Tokyo",
			Observation: "(35.689487, 139.691711)",
		},
	}

	first, err := formatter.Render("How about Tokyo?", transcript)
	require.NoError(t, err)
	second, err := formatter.Render("How about Tokyo?", transcript)
	require.NoError(t, err)

	tt.RequireTextEqual(t, first, second)
	// Rendering never mutates the transcript.
	assert.Equal(t, "(35.689487, 139.691711)", transcript[0].Observation)
}
