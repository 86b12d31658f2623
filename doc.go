// Package quakeagent implements a single-action ReAct agent that answers
// natural-language questions about earthquake activity near a place.
//
// The agent alternates between model-generated reasoning steps and tool
// execution until the model emits a final answer. Each iteration renders the
// question and the transcript so far into a prompt, sends it to the model,
// parses the output as either a final answer or an action, and dispatches
// the action to the matching tool. Tool failures are fed back to the model
// as observations; protocol violations (unparseable output, unknown tool
// names) abort the run.
//
// # Quick Start
//
//	llm, _ := openai.New(openai.WithToken(apiKey))
//	model := models.NewWrapper(llm)
//
//	geo := tools.NewGeocodeTool(tools.NewGeocodeClient())
//	quakes := tools.NewQuakeCountTool(tools.NewQuakeClient())
//	registry := quakeagent.NewRegistry(geo, quakes)
//
//	agent := quakeagent.New(model, registry).WithMaxIterations(10)
//	result, err := agent.Run(ctx, "Was there a significant earthquake near Riverside, CA in January 2024?")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Answer)
//
// The model is abstracted behind the one-method [Model] interface so the
// loop and parser can be tested with scripted outputs; see internal/tt.
package quakeagent
