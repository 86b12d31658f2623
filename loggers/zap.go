// Package loggers provides run hooks that record agent progress.
package loggers

import (
	"github.com/quakewatch/quakeagent"
	"go.uber.org/zap"
)

// Zap is a quakeagent.Hook that writes structured logs for every loop
// event through a zap.Logger.
type Zap struct {
	logger *zap.Logger
}

// NewZap creates a Zap hook over the given logger.
func NewZap(logger *zap.Logger) *Zap {
	return &Zap{logger: logger}
}

// OnModelResponse logs the truncated raw model output.
func (l *Zap) OnModelResponse(iteration int, text string) {
	l.logger.Info("model response",
		zap.Int("iteration", iteration),
		zap.String("text", text),
	)
}

// OnAction logs a tool dispatch.
func (l *Zap) OnAction(toolName, toolInput string) {
	l.logger.Info("action",
		zap.String("tool", toolName),
		zap.String("input", toolInput),
	)
}

// OnObservation logs the observation fed back to the model.
func (l *Zap) OnObservation(toolName, observation string) {
	l.logger.Info("observation",
		zap.String("tool", toolName),
		zap.String("observation", observation),
	)
}

// OnFinish logs the final answer.
func (l *Zap) OnFinish(answer string) {
	l.logger.Info("final answer", zap.String("answer", answer))
}

// Compile-time check that Zap implements quakeagent.Hook.
var _ quakeagent.Hook = (*Zap)(nil)
