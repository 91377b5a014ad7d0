package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"time"

	slogseq "github.com/sokkalf/slog-seq"

	"github.com/leengari/typestore/internal/config"
)

// multiHandler forwards log records to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

// Enabled reports whether at least one wrapped handler takes level.
func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return slices.ContainsFunc(m.handlers, func(h slog.Handler) bool {
		return h.Enabled(ctx, level)
	})
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			return err
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithAttrs(attrs) })
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	return m.derive(func(h slog.Handler) slog.Handler { return h.WithGroup(name) })
}

// derive applies fn to every wrapped handler and fans out to the results.
func (m *multiHandler) derive(fn func(slog.Handler) slog.Handler) *multiHandler {
	out := &multiHandler{handlers: make([]slog.Handler, 0, len(m.handlers))}
	for _, h := range m.handlers {
		out.handlers = append(out.handlers, fn(h))
	}
	return out
}

// SetupLogger builds the process logger from cfg and returns a cleanup
// function. Console output goes to stderr so dumps on stdout stay clean.
func SetupLogger(cfg config.Log) (*slog.Logger, func(), error) {
	return setupLogger(os.Stderr, cfg)
}

func setupLogger(w io.Writer, cfg config.Log) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: cfg.AddSource,
	}

	consoleHandler := slog.NewTextHandler(w, opts)

	// Console only unless a Seq endpoint is configured
	if cfg.SeqURL == "" {
		return slog.New(consoleHandler), func() {}, nil
	}

	_, seqHandler := slogseq.NewLogger(
		cfg.SeqURL,
		slogseq.WithBatchSize(1),
		slogseq.WithFlushInterval(500*time.Millisecond),
		slogseq.WithHandlerOptions(opts),
	)

	// If Seq is not available, use console only
	if seqHandler == nil {
		return slog.New(consoleHandler), func() {}, nil
	}

	multi := &multiHandler{
		handlers: []slog.Handler{consoleHandler, seqHandler},
	}

	closeFn := func() {
		seqHandler.Close()
	}

	return slog.New(multi), closeFn, nil
}
