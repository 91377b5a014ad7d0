package engine

import "log/slog"

// LoggingObserver logs every Database event using structured logging
type LoggingObserver struct {
	logger *slog.Logger
}

// NewLoggingObserver creates a logging observer. A nil logger means slog.Default().
func NewLoggingObserver(logger *slog.Logger) *LoggingObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{logger: logger}
}

// OnEvent implements the Observer interface
func (lo *LoggingObserver) OnEvent(event Event) {
	attrs := []any{
		"event", event.Type,
		"op", event.Op,
		"timestamp", event.Timestamp,
	}
	if event.OpID != "" {
		attrs = append(attrs, "op_id", event.OpID)
	}
	if event.Name != "" {
		attrs = append(attrs, "name", event.Name)
	}
	if event.Data != nil {
		attrs = append(attrs, "data", event.Data)
	}
	if event.Err != nil {
		lo.logger.Warn("database_event", append(attrs, "error", event.Err)...)
		return
	}
	lo.logger.Info("database_event", attrs...)
}
