package quakeagent_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quakewatch/quakeagent"
	"github.com/quakewatch/quakeagent/internal/tt"
)

// stubTool is a scriptable in-memory tool.
type stubTool struct {
	name        string
	description string
	result      string
	err         error

	// CapturedInputs stores the input of every Call.
	capturedInputs []string
}

func (t *stubTool) Name() string        { return t.name }
func (t *stubTool) Description() string { return t.description }

func (t *stubTool) Call(_ context.Context, input string) (string, error) {
	t.capturedInputs = append(t.capturedInputs, input)
	if t.err != nil {
		return "", t.err
	}
	return t.result, nil
}

// recordHook appends one line per loop event, for ordering assertions.
type recordHook struct {
	events []string
}

func (h *recordHook) OnModelResponse(iteration int, _ string) {
	h.events = append(h.events, "response")
}

func (h *recordHook) OnAction(toolName, _ string) {
	h.events = append(h.events, "action "+toolName)
}

func (h *recordHook) OnObservation(toolName, _ string) {
	h.events = append(h.events, "observation "+toolName)
}

func (h *recordHook) OnFinish(_ string) {
	h.events = append(h.events, "finish")
}

func TestAgent_Run_TwoActionsThenFinish(t *testing.T) {
	geocode := &stubTool{
		name:        "Geocode",
		description: "Finds the coordinates of a place.",
		result:      "(33.980534, -117.377025)",
	}
	count := &stubTool{
		name:        "EarthquakeCount",
		description: "Counts earthquakes near a point.",
		result:      "2",
	}

	model := tt.NewScriptedModel().
		AddResponse("I need the coordinates of Riverside, CA.\n" +
			"Action: Geocode\n" +
			"Action Input: Riverside, CA").
		AddResponse("Now I can count earthquakes around that point.\n" +
			"Action: EarthquakeCount\n" +
			`Action Input: {"starttime": "2024-01-01", "endtime": "2024-01-31", "latitude": 33.980534, "longitude": -117.377025, "maxradius": 0.45, "minmagnitude": 4}`).
		AddResponse("I now know the final answer.\n" +
			"Final Answer: There were 2 significant earthquakes near Riverside, CA in January 2024.")

	agent := quakeagent.New(model, quakeagent.NewRegistry(geocode, count))

	result, err := agent.Run(context.Background(),
		"Is there any significant earthquake in Riverside, CA in Jan 2024?")
	require.NoError(t, err)

	assert.Equal(t,
		"There were 2 significant earthquakes near Riverside, CA in January 2024.",
		result.Answer)
	assert.Equal(t, 3, result.Iterations)

	require.Len(t, result.Steps, 2)
	assert.Equal(t, "Geocode", result.Steps[0].ToolName)
	assert.Equal(t, "Riverside, CA", result.Steps[0].ToolInput)
	assert.Equal(t, "(33.980534, -117.377025)", result.Steps[0].Observation)
	assert.Equal(t, "EarthquakeCount", result.Steps[1].ToolName)
	assert.Equal(t, "2", result.Steps[1].Observation)

	require.Len(t, geocode.capturedInputs, 1)
	assert.Equal(t, "Riverside, CA", geocode.capturedInputs[0])

	// The second prompt replays the first observation.
	require.Len(t, model.CapturedPrompts, 3)
	assert.Contains(t, model.CapturedPrompts[1],
		"\nObservation: (33.980534, -117.377025)\nThought: ")
}

func TestAgent_Run_ToolErrorBecomesObservation(t *testing.T) {
	geocode := &stubTool{
		name:        "Geocode",
		description: "Finds the coordinates of a place.",
		err:         errors.New("tools: location could not be resolved"),
	}

	model := tt.NewScriptedModel().
		AddResponse("Look it up.\nAction: Geocode\nAction Input: Nowhereville").
		AddResponse("The place does not resolve, so I cannot answer precisely.\n" +
			"Final Answer: I could not find that location.")

	agent := quakeagent.New(model, quakeagent.NewRegistry(geocode))

	result, err := agent.Run(context.Background(), "Earthquakes near Nowhereville?")
	require.NoError(t, err)

	require.Len(t, result.Steps, 1)
	assert.Equal(t,
		"Error: tools: location could not be resolved",
		result.Steps[0].Observation)
	assert.Equal(t, "I could not find that location.", result.Answer)
}

func TestAgent_Run_UnknownToolIsFatal(t *testing.T) {
	model := tt.NewScriptedModel().
		AddResponse("Let me try something else.\nAction: Teleport\nAction Input: Riverside, CA")

	registry := quakeagent.NewRegistry(&stubTool{name: "Geocode"})
	agent := quakeagent.New(model, registry)

	result, err := agent.Run(context.Background(), "Any earthquakes?")

	require.Nil(t, result)
	var unknownErr *quakeagent.UnknownToolError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "Teleport", unknownErr.Name)
}

func TestAgent_Run_ParseErrorIsFatal(t *testing.T) {
	model := tt.NewScriptedModel().
		AddResponse("Hmm, earthquakes are quite common in California.")

	agent := quakeagent.New(model, quakeagent.NewRegistry(&stubTool{name: "Geocode"}))

	result, err := agent.Run(context.Background(), "Any earthquakes?")

	require.Nil(t, result)
	var parseErr *quakeagent.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestAgent_Run_IterationCeiling(t *testing.T) {
	geocode := &stubTool{name: "Geocode", result: "(1.000000, 2.000000)"}

	// The scripted model repeats its last response, so it never finishes.
	model := tt.NewScriptedModel().
		AddResponse("Looking again.\nAction: Geocode\nAction Input: Riverside, CA")

	agent := quakeagent.New(model, quakeagent.NewRegistry(geocode)).
		WithMaxIterations(3)

	result, err := agent.Run(context.Background(), "Any earthquakes?")

	require.Nil(t, result)
	assert.ErrorIs(t, err, quakeagent.ErrMaxIterationsExceeded)
	assert.Equal(t, 3, model.CallCount())
}

func TestAgent_Run_TruncatesHallucinatedObservation(t *testing.T) {
	geocode := &stubTool{name: "Geocode", result: "(33.980534, -117.377025)"}

	model := tt.NewScriptedModel().
		AddResponse("Find it.\n" +
			"Action: Geocode\n" +
			"Action Input: Riverside, CA\n" +
			"Observation: (0.000000, 0.000000)\n" +
			"I will just make something up.").
		AddResponse("Final Answer: done")

	agent := quakeagent.New(model, quakeagent.NewRegistry(geocode))

	result, err := agent.Run(context.Background(), "Any earthquakes?")
	require.NoError(t, err)

	// Everything from the stop marker on is cut before parsing, so the
	// hallucinated observation never reaches the transcript.
	require.Len(t, result.Steps, 1)
	assert.Equal(t,
		"Find it.\nAction: Geocode\nAction Input: Riverside, CA",
		result.Steps[0].RawLog)
	assert.Equal(t, "(33.980534, -117.377025)", result.Steps[0].Observation)
}

func TestAgent_Run_ModelCallOptions(t *testing.T) {
	model := tt.NewScriptedModel().
		AddResponse("Final Answer: nothing to do")

	agent := quakeagent.New(model, quakeagent.NewRegistry())

	_, err := agent.Run(context.Background(), "Any earthquakes?")
	require.NoError(t, err)

	require.Len(t, model.CapturedOptions, 1)
	assert.Equal(t, []string{"\nObservation:"}, model.CapturedOptions[0].StopWords)
	assert.Zero(t, model.CapturedOptions[0].Temperature)
}

func TestAgent_Run_HooksObserveEventsInOrder(t *testing.T) {
	geocode := &stubTool{name: "Geocode", result: "(1.000000, 2.000000)"}

	model := tt.NewScriptedModel().
		AddResponse("Find it.\nAction: Geocode\nAction Input: Riverside, CA").
		AddResponse("Final Answer: done")

	hook := &recordHook{}
	agent := quakeagent.New(model, quakeagent.NewRegistry(geocode)).
		WithHooks(hook)

	_, err := agent.Run(context.Background(), "Any earthquakes?")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"response",
		"action Geocode",
		"observation Geocode",
		"response",
		"finish",
	}, hook.events)
}

func TestAgent_Run_ModelErrorAborts(t *testing.T) {
	model := tt.NewScriptedModel().
		AddError(errors.New("rate limited"))

	agent := quakeagent.New(model, quakeagent.NewRegistry())

	result, err := agent.Run(context.Background(), "Any earthquakes?")

	require.Nil(t, result)
	assert.ErrorContains(t, err, "rate limited")
}
