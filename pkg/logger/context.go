package logger

import (
	"context"
	"log/slog"
	"slices"
	"time"
)

type ctxKey string

const attrsKey ctxKey = "log_attrs"

// With returns a new context whose log records carry fields. Any logger built on a
// ContextHandler picks them up through the *Context logging methods.
func With(ctx context.Context, fields ...any) context.Context {
	r := slog.NewRecord(time.Time{}, 0, "", 0)
	r.Add(fields...)

	attrs := slices.Clone(attrsFrom(ctx))
	r.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, a)
		return true
	})
	return context.WithValue(ctx, attrsKey, attrs)
}

// From returns the default logger bound to the fields stored in ctx, for code that logs
// without passing the context along.
func From(ctx context.Context) *slog.Logger {
	attrs := attrsFrom(ctx)
	if len(attrs) == 0 {
		return LoggerWrapper()
	}
	// bind to the inner handler so a later *Context call does not add the fields twice
	base := LoggerWrapper().Handler()
	if ch, ok := base.(*ContextHandler); ok {
		base = ch.Handler
	}
	return slog.New(base.WithAttrs(attrs))
}

func attrsFrom(ctx context.Context) []slog.Attr {
	if ctx == nil {
		return nil
	}
	attrs, _ := ctx.Value(attrsKey).([]slog.Attr)
	return attrs
}

// ContextHandler adds the fields stored by With to every record logged with that context.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := attrsFrom(ctx); len(attrs) > 0 {
		r = r.Clone()
		r.AddAttrs(attrs...)
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}
