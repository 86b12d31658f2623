// Command quakeagent is an interactive CLI for asking natural-language
// questions about earthquake activity near a place.
//
// Configuration comes from quakeagent.yaml in the working directory (all
// fields optional) and an OPENAI_API_KEY environment variable, which may be
// provided via a .env file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/joho/godotenv"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"

	"github.com/quakewatch/quakeagent"
	"github.com/quakewatch/quakeagent/config"
	"github.com/quakewatch/quakeagent/loggers"
	"github.com/quakewatch/quakeagent/models"
	"github.com/quakewatch/quakeagent/tools"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// consoleHook prints each loop event as it happens, so the user can watch
// the Thought/Action/Observation cycle live.
type consoleHook struct {
	w io.Writer
}

func (h *consoleHook) OnModelResponse(iteration int, text string) {
	fmt.Fprintf(h.w, "%s[%d]%s %s\n",
		colorDim, iteration, colorReset, strings.TrimSpace(text))
}

func (h *consoleHook) OnAction(toolName, toolInput string) {
	fmt.Fprintf(h.w, "%s-> %s%s %s\n",
		colorYellow, toolName, colorReset, toolInput)
}

func (h *consoleHook) OnObservation(toolName, observation string) {
	fmt.Fprintf(h.w, "%s<- %s%s %s\n",
		colorCyan, toolName, colorReset, observation)
}

func (h *consoleHook) OnFinish(string) {
	// The final answer is printed by the REPL itself.
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%sError: %v%s\n", colorRed, err, colorReset)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg, err := config.Load("quakeagent.yaml")
	if err != nil {
		return err
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		fmt.Fprintf(os.Stderr,
			"%sWARNING: OPENAI_API_KEY is not set; model calls will fail.%s\n",
			colorYellow, colorReset)
	}

	if dir := filepath.Dir(cfg.LogFile); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.OutputPaths = []string{cfg.LogFile}
	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	llmOpts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		llmOpts = append(llmOpts, openai.WithBaseURL(cfg.BaseURL))
	}
	llm, err := openai.New(llmOpts...)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	geocodeClient := tools.NewGeocodeClient()
	if cfg.Tools.GeocodeBaseURL != "" {
		geocodeClient.WithBaseURL(cfg.Tools.GeocodeBaseURL)
	}
	quakeClient := tools.NewQuakeClient()
	if cfg.Tools.QuakeBaseURL != "" {
		quakeClient.WithBaseURL(cfg.Tools.QuakeBaseURL)
	}

	registry := quakeagent.NewRegistry(
		tools.NewGeocodeTool(geocodeClient),
		tools.NewQuakeCountTool(quakeClient),
	)

	agent := quakeagent.New(models.NewWrapper(llm), registry).
		WithMaxIterations(cfg.MaxIterations).
		WithHooks(&consoleHook{w: os.Stdout}, loggers.NewZap(logger))

	rl, err := readline.New(colorCyan + "question> " + colorReset)
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Printf("%squakeagent%s — ask about earthquake activity near a place ('q' to quit)\n",
		colorBold, colorReset)

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		question := strings.TrimSpace(line)
		if question == "" {
			continue
		}
		if question == "q" || question == "quit" || question == "exit" {
			return nil
		}

		askOne(agent, logger, question)
	}
}

func askOne(agent *quakeagent.Agent, logger *zap.Logger, question string) {
	logger.Info("question", zap.String("text", question))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := agent.Run(ctx, question)
	if err != nil {
		fmt.Printf("%sRun failed: %v%s\n", colorRed, err, colorReset)
		if errors.Is(err, quakeagent.ErrMaxIterationsExceeded) {
			fmt.Printf("%sTry a more specific question.%s\n", colorDim, colorReset)
		}
		return
	}

	fmt.Printf("\n%s%sFinal Answer:%s %s\n", colorBold, colorGreen, colorReset, result.Answer)
	fmt.Printf("%s(%d iterations, %d tool calls)%s\n\n",
		colorDim, result.Iterations, len(result.Steps), colorReset)
}
