package log

import (
	"io"
	"log/slog"
)

// NewDebugLogger returns a text slog.Logger on w at debug level when enabled,
// and a logger that discards everything otherwise.
func NewDebugLogger(w io.Writer, enabled bool) *slog.Logger {
	if !enabled {
		return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// Record appends an audit event and reports a write failure on logger
// instead of returning it; the audit trail never fails a command.
func Record(audit *AuditLogger, logger *slog.Logger, event AuditEvent) {
	if err := audit.Append(event); err != nil && logger != nil {
		logger.Debug("audit log write failed", "event", event.Event, "err", err)
	}
}
