// Package logging sets up the run log: bare messages on the console and
// timestamped lines in a rotated progress file.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Attribute keys that decorate console output only.
const (
	PrefixKey  = "prefix"
	PostfixKey = "postfix"
)

// Prefix is printed before the message on the console.
func Prefix(s string) slog.Attr { return slog.String(PrefixKey, s) }

// Postfix is printed after the message on the console.
func Postfix(s string) slog.Attr { return slog.String(PostfixKey, s) }

// Config describes where log lines go
type Config struct {
	Level      string    // debug, info, warn or error
	File       string    // progress log path, empty disables the file sink
	MaxSizeMB  int       // rotate after this many megabytes
	MaxBackups int       // rotated files to keep
	Console    io.Writer // defaults to os.Stdout
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		File:       "progress.log",
		MaxSizeMB:  50,
		MaxBackups: 3,
	}
}

// New builds the logger and sets it as the slog default. The returned
// closer releases the log file.
func New(cfg Config) (*slog.Logger, io.Closer) {
	console := cfg.Console
	if console == nil {
		console = os.Stdout
	}

	var file io.WriteCloser
	if cfg.File != "" {
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
	}

	h := NewHandler(console, file, ParseLevel(cfg.Level))
	logger := slog.New(h)
	slog.SetDefault(logger)

	if file == nil {
		return logger, nopCloser{}
	}
	return logger, file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ParseLevel maps a level name to slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Tuple renders a word and its tag the way the log analyzer expects:
// ('word', 'nf.') or ('word', None) when the tag is absent.
func Tuple(word, tag string) string {
	if tag == "" {
		return fmt.Sprintf("('%s', None)", word)
	}
	return fmt.Sprintf("('%s', '%s')", word, tag)
}

// Handler writes each record to a console and an optional file sink.
type Handler struct {
	mu      *sync.Mutex
	console io.Writer
	file    io.Writer
	level   slog.Leveler
	attrs   []boundAttr
	group   string
	now     func() time.Time
}

// boundAttr remembers the group that was open when the attribute was added.
type boundAttr struct {
	group string
	attr  slog.Attr
}

// NewHandler creates a handler. file may be nil.
func NewHandler(console, file io.Writer, level slog.Leveler) *Handler {
	return &Handler{
		mu:      &sync.Mutex{},
		console: console,
		file:    file,
		level:   level,
		now:     time.Now,
	}
}

// Enabled reports whether records at level are written
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes r to both sinks
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var prefix, postfix string
	var extra strings.Builder

	add := func(group string, a slog.Attr) {
		switch a.Key {
		case PrefixKey:
			prefix = a.Value.String()
		case PostfixKey:
			postfix = a.Value.String()
		default:
			appendAttr(&extra, group, a)
		}
	}
	for _, b := range h.attrs {
		add(b.group, b.attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(h.group, a)
		return true
	})

	msg := r.Message + extra.String()

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, err := fmt.Fprintf(h.console, "%s%s%s\n", prefix, msg, postfix); err != nil {
		return err
	}
	if h.file != nil {
		ts := r.Time
		if ts.IsZero() {
			ts = h.now()
		}
		stamp := ts.Format("2006-01-02 15:04:05.000")
		if _, err := fmt.Fprintf(h.file, "%s %s: %s\n", stamp, r.Level.String(), msg); err != nil {
			return err
		}
	}
	return nil
}

// WithAttrs returns a handler that adds attrs to every record
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = append([]boundAttr(nil), h.attrs...)
	for _, a := range attrs {
		h2.attrs = append(h2.attrs, boundAttr{group: h.group, attr: a})
	}
	return &h2
}

// WithGroup qualifies subsequent attribute keys with name
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	if h.group != "" {
		h2.group = h.group + "." + name
	} else {
		h2.group = name
	}
	return &h2
}

func appendAttr(b *strings.Builder, group string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	key := a.Key
	if group != "" && key != "" {
		key = group + "." + key
	} else if key == "" {
		key = group
	}
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			appendAttr(b, key, ga)
		}
		return
	}
	fmt.Fprintf(b, " %s=%v", key, a.Value.Any())
}
