package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"shoplist/internal/core"
)

// charmLogger adapts a charm logger to core.Logger.
type charmLogger struct {
	l *log.Logger
}

var _ core.Logger = charmLogger{}

func newLogger(w io.Writer, level string, verbose bool) charmLogger {
	l := log.NewWithOptions(w, log.Options{Prefix: "shoplist"})
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	if verbose {
		lvl = log.DebugLevel
	}
	l.SetLevel(lvl)
	return charmLogger{l: l}
}

func (c charmLogger) Debug(msg string, args ...any) { c.l.Debug(msg, args...) }
func (c charmLogger) Info(msg string, args ...any)  { c.l.Info(msg, args...) }
func (c charmLogger) Warn(msg string, args ...any)  { c.l.Warn(msg, args...) }
func (c charmLogger) Error(msg string, args ...any) { c.l.Error(msg, args...) }
