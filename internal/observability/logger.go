package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
)

type ctxKey string

const (
	ctxKeyTurnID ctxKey = "turn_id"
)

// basic global logger, JSON to stderr. The TUI owns stdout, so the
// default sink must not write there.
var logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))

func Logger() *slog.Logger {
	return logger
}

// SetOutput redirects the global logger, e.g. to a log file while the
// terminal UI is running.
func SetOutput(w io.Writer) {
	logger = slog.New(slog.NewJSONHandler(w, nil))
}

// WithFields returns a logger with additional fields.
func WithFields(kv ...any) *slog.Logger {
	return logger.With(kv...)
}

// WithTurnID stores a turn_id in the context.
func WithTurnID(ctx context.Context, turnID string) context.Context {
	return context.WithValue(ctx, ctxKeyTurnID, turnID)
}

// LoggerFromContext adds turn_id if present.
func LoggerFromContext(ctx context.Context) *slog.Logger {
	turnID, _ := ctx.Value(ctxKeyTurnID).(string)
	if turnID == "" {
		return logger
	}
	return logger.With("turn_id", turnID)
}
