// Package logging builds the application's zap logger. The TUI owns the
// terminal, so logs always go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sadopc/wakutore/internal/config"
	"github.com/sadopc/wakutore/internal/progression"
)

// New returns a JSON logger writing to cfg.File at cfg.Level.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.Sampling = nil
	if cfg.File == "" {
		zc.OutputPaths = []string{"stderr"}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
		zc.OutputPaths = []string{cfg.File}
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// EventLogger records progression milestones. Plain rewards are frequent and
// only logged at debug.
type EventLogger struct {
	log *zap.Logger
}

func NewEventLogger(log *zap.Logger) *EventLogger {
	return &EventLogger{log: log.Named("progression")}
}

func (l *EventLogger) Notify(e progression.Event) {
	switch e.Kind {
	case progression.EventRankUp:
		l.log.Info("rank up",
			zap.String("from", e.FromRank),
			zap.String("to", e.ToRank),
			zap.String("source", string(e.Source)))
	case progression.EventPurchase:
		l.log.Info("upgrade purchased",
			zap.String("upgrade", e.UpgradeID),
			zap.Int64("cost", e.Currency))
	default:
		l.log.Debug("reward",
			zap.String("source", string(e.Source)),
			zap.Float64("xp", e.Amount),
			zap.Int64("currency", e.Currency))
	}
}

// Fanout forwards every event to each notifier in order. Nil entries are
// skipped.
type Fanout []progression.Notifier

func (f Fanout) Notify(e progression.Event) {
	for _, n := range f {
		if n != nil {
			n.Notify(e)
		}
	}
}
