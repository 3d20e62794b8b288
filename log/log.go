// Copyright 2026 The conduwuit Authors. All rights reserved.
// Use of this source code is governed by an LGPL-3.0 license.

// Package log provides the leveled, structured logger used across this
// module. It is a thin skin over log/slog: callers pass a message plus
// alternating key-value pairs, the same calling convention as
// go-ethereum's log package.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
)

// Logger is the interface satisfied by the package-level root logger and
// by any child created with New.
type Logger interface {
	Trace(msg string, ctx ...any)
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
	With(ctx ...any) Logger
}

const levelTrace = slog.Level(-8)

type logger struct {
	inner *slog.Logger
}

var root Logger = newLogger(defaultHandler(os.Stderr))

// Root returns the module-wide root logger.
func Root() Logger { return root }

// SetRoot replaces the module-wide root logger, e.g. to redirect output
// in a test or to attach a different handler at server start.
func SetRoot(l Logger) { root = l }

// New creates a logger around the given handler. Most callers want
// NewWithWriter or the package-level Root().
func New(h slog.Handler) Logger { return newLogger(h) }

// NewWithWriter creates a logger writing to w, auto-detecting whether w
// is an interactive terminal to decide on colorized one-line output.
func NewWithWriter(w io.Writer) Logger { return newLogger(defaultHandlerFor(w)) }

func newLogger(h slog.Handler) Logger { return &logger{inner: slog.New(h)} }

func (l *logger) Trace(msg string, ctx ...any) {
	l.inner.Log(context.Background(), levelTrace, msg, ctx...)
}
func (l *logger) Debug(msg string, ctx ...any) { l.inner.Debug(msg, ctx...) }
func (l *logger) Info(msg string, ctx ...any)  { l.inner.Info(msg, ctx...) }
func (l *logger) Warn(msg string, ctx ...any)  { l.inner.Warn(msg, ctx...) }
func (l *logger) Error(msg string, ctx ...any) { l.inner.Error(msg, ctx...) }

// Crit logs at the highest level and terminates the process, matching
// the teacher's log.Crit convention for unrecoverable startup failures.
func (l *logger) Crit(msg string, ctx ...any) {
	l.inner.Error(msg, ctx...)
	os.Exit(1)
}

func (l *logger) With(ctx ...any) Logger {
	return &logger{inner: l.inner.With(ctx...)}
}

// Package-level convenience wrappers around Root().
func Trace(msg string, ctx ...any) { root.Trace(msg, ctx...) }
func Debug(msg string, ctx ...any) { root.Debug(msg, ctx...) }
func Info(msg string, ctx ...any)  { root.Info(msg, ctx...) }
func Warn(msg string, ctx ...any)  { root.Warn(msg, ctx...) }
func Error(msg string, ctx ...any) { root.Error(msg, ctx...) }
func Crit(msg string, ctx ...any)  { root.Crit(msg, ctx...) }

func defaultHandler(w io.Writer) slog.Handler { return defaultHandlerFor(w) }

func defaultHandlerFor(w io.Writer) slog.Handler {
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		w = colorable.NewColorable(f)
		return &terminalHandler{out: w}
	}
	return slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelTrace})
}

// terminalHandler renders a compact, colorized one-liner per record,
// easier to scan in an interactive shell than slog's default text form.
type terminalHandler struct {
	out  io.Writer
	attr []slog.Attr
}

func (h *terminalHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *terminalHandler) Handle(_ context.Context, r slog.Record) error {
	color := levelColor(r.Level)
	fmt.Fprintf(h.out, "%s[%s]%s %-4s %s",
		color, r.Time.Format(time.TimeOnly), colorReset, levelLabel(r.Level), r.Message)
	for _, a := range h.attr {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		fmt.Fprintf(h.out, " %s=%v", a.Key, a.Value)
		return true
	})
	fmt.Fprintln(h.out)
	return nil
}

func (h *terminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &terminalHandler{out: h.out, attr: append(append([]slog.Attr{}, h.attr...), attrs...)}
}

func (h *terminalHandler) WithGroup(string) slog.Handler { return h }

const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorYellow = "\x1b[33m"
	colorBlue   = "\x1b[34m"
	colorGray   = "\x1b[90m"
)

func levelColor(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return colorRed
	case lvl >= slog.LevelWarn:
		return colorYellow
	case lvl >= slog.LevelInfo:
		return colorBlue
	default:
		return colorGray
	}
}

func levelLabel(lvl slog.Level) string {
	switch {
	case lvl >= slog.LevelError:
		return "ERRO"
	case lvl >= slog.LevelWarn:
		return "WARN"
	case lvl >= slog.LevelInfo:
		return "INFO"
	case lvl >= slog.LevelDebug:
		return "DBUG"
	default:
		return "TRCE"
	}
}
