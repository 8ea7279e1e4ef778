package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/go-courier/logr"
)

// ParseLevel parses debug, info, warn or error, empty means info.
func ParseLevel(s string) (slog.Level, error) {
	lvl := slog.LevelInfo
	if s == "" {
		return lvl, nil
	}
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, err
	}
	return lvl, nil
}

// New creates logr.Logger writes span lines into w.
func New(w io.Writer, lvl slog.Level) logr.Logger {
	return &logger{
		ctx:  context.Background(),
		slog: slog.New(&handler{w: w, lvl: lvl, mu: &sync.Mutex{}}),
	}
}

// WithLogger injects l into ctx.
func WithLogger(ctx context.Context, l logr.Logger) context.Context {
	return logr.LoggerInjectContext(ctx, l)
}

type handler struct {
	w     io.Writer
	lvl   slog.Level
	mu    *sync.Mutex
	attrs []slog.Attr
}

func (h *handler) Handle(ctx context.Context, r slog.Record) error {
	line := bytes.NewBuffer(nil)

	span := ""
	target := ""
	cost := ""
	extra := make([]string, 0)

	collect := func(attr slog.Attr) bool {
		switch attr.Key {
		case "span":
			span = attr.Value.String()
		case "target":
			target = attr.Value.String()
		case "cost":
			cost = attr.Value.Duration().String()
		default:
			extra = append(extra, attr.Key+"="+attr.Value.String())
		}
		return true
	}

	for _, attr := range h.attrs {
		collect(attr)
	}
	r.Attrs(collect)

	switch r.Level {
	case slog.LevelDebug:
		line.WriteString("... ")
	case slog.LevelWarn:
		line.WriteString("!!! WARN: ")
	case slog.LevelError:
		line.WriteString("!!! FAILED: ")
	default:
		line.WriteString("--- ")
	}

	if span != "" {
		line.WriteString(span)
		line.WriteString(" ")
	}

	if target != "" {
		line.WriteString("<")
		line.WriteString(target)
		line.WriteString("> ")
	}

	line.WriteString(r.Message)

	if cost != "" {
		line.WriteString(" (")
		line.WriteString(cost)
		line.WriteString(")")
	}

	if len(extra) > 0 {
		line.WriteString("\t")
		line.WriteString(strings.Join(extra, " "))
	}

	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.Copy(h.w, line)
	return err
}

func (h *handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &handler{w: h.w, lvl: h.lvl, mu: h.mu, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...)}
}

func (h *handler) WithGroup(name string) slog.Handler {
	return h
}

func (h *handler) Enabled(ctx context.Context, l slog.Level) bool {
	return l >= h.lvl
}

type logger struct {
	slog      *slog.Logger
	ctx       context.Context
	spans     []string
	attrs     []any
	startedAt time.Time
}

func (d logger) WithValues(keyAndValues ...any) logr.Logger {
	d.attrs = append(append([]any{}, d.attrs...), keyAndValues...)
	return &d
}

func (d *logger) Start(ctx context.Context, name string, keyAndValues ...any) (context.Context, logr.Logger) {
	ll := &logger{
		slog: d.slog,
		ctx:  ctx,

		spans:     append(append([]string{}, d.spans...), name),
		attrs:     append(append([]any{}, d.attrs...), keyAndValues...),
		startedAt: time.Now(),
	}

	return logr.LoggerInjectContext(ctx, ll), ll
}

func (d *logger) End() {
	var dd logr.Logger = d
	if !d.startedAt.IsZero() {
		dd = dd.WithValues(slog.Duration("cost", time.Since(d.startedAt)))
	}
	dd.Debug("done")
}

func (d *logger) toAttrs() []any {
	if len(d.spans) == 0 {
		return d.attrs
	}
	return append(append([]any{}, d.attrs...), slog.String("span", strings.Join(d.spans, "/")))
}

func (d *logger) Debug(format string, args ...any) {
	if !d.slog.Enabled(d.ctx, slog.LevelDebug) {
		return
	}
	d.slog.Log(d.ctx, slog.LevelDebug, fmt.Sprintf(format, args...), d.toAttrs()...)
}

func (d *logger) Info(format string, args ...any) {
	if !d.slog.Enabled(d.ctx, slog.LevelInfo) {
		return
	}
	d.slog.Log(d.ctx, slog.LevelInfo, fmt.Sprintf(format, args...), d.toAttrs()...)
}

func (d *logger) Warn(err error) {
	if !d.slog.Enabled(d.ctx, slog.LevelWarn) {
		return
	}
	d.slog.Log(d.ctx, slog.LevelWarn, err.Error(), d.toAttrs()...)
}

func (d *logger) Error(err error) {
	d.slog.Log(d.ctx, slog.LevelError, err.Error(), d.toAttrs()...)
}
