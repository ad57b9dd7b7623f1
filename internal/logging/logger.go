package logging

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/rotisserie/eris"
)

const DEFAULT_TRACE_FILE = "sentiment_analysis.log"

type Options struct {
	Level string
	// TracePath is the append-only diagnostic log. Empty disables it.
	TracePath string
	// Console defaults to stderr so logs stay off the prompt stream.
	Console io.Writer
}

// InitLogger installs the default logger: tint on the console plus a plain
// text trace file. The returned func closes the trace file.
func InitLogger(opts Options) (func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		tint.NewHandler(console, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}),
	}
	closeFn := func() error { return nil }

	if opts.TracePath != "" {
		file, err := os.OpenFile(opts.TracePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, eris.Wrapf(err, "logging: open trace file %s", opts.TracePath)
		}
		handlers = append(handlers, slog.NewTextHandler(file, &slog.HandlerOptions{
			Level: min(level, slog.LevelInfo),
		}))
		closeFn = file.Close
	}

	slog.SetDefault(slog.New(Tee(handlers...)))
	return closeFn, nil
}

func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, eris.Wrapf(err, "logging: parse level %q", s)
	}
	return level, nil
}

type teeHandler struct {
	handlers []slog.Handler
}

// Tee sends every record to each handler that accepts its level.
func Tee(handlers ...slog.Handler) slog.Handler {
	return &teeHandler{handlers: handlers}
}

func (t *teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t *teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t.handlers {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		if err := h.Handle(ctx, r.Clone()); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (t *teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithAttrs(attrs)
	}
	return &teeHandler{handlers: out}
}

func (t *teeHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(t.handlers))
	for i, h := range t.handlers {
		out[i] = h.WithGroup(name)
	}
	return &teeHandler{handlers: out}
}
