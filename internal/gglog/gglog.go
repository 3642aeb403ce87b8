// Package gglog is the module's leveled logger, grounded on
// gogpu-gg/logger.go: a package-level atomic logger pointer defaulting
// to silent output, swappable at runtime via SetLogger, shared by every
// package in this module without an import cycle.
package gglog

import (
	"context"
	"log/slog"
	"sync/atomic"
)

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by every package in this module.
// Pass nil to restore the default silent behavior. Safe for concurrent
// use.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the currently configured logger.
func Logger() *slog.Logger { return loggerPtr.Load() }
