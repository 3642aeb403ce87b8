package gglog

import (
	"bytes"
	"log/slog"
	"testing"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	if Logger().Enabled(nil, slog.LevelError) {
		t.Fatal("expected default logger to be disabled for all levels")
	}
}

func TestSetLoggerSwapsActiveLogger(t *testing.T) {
	defer SetLogger(nil)
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("hello")
	if buf.Len() == 0 {
		t.Fatal("expected the configured logger to receive output")
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)
	if Logger().Enabled(nil, slog.LevelError) {
		t.Fatal("expected nil to restore the silent default")
	}
}
