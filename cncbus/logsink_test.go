package cncbus

import (
	"context"
	"log/slog"
	"sync"
	"testing"
)

func TestLogSinkPublishesDecodableRecord(t *testing.T) {
	pool := NewPool(16)
	bus := NewBus(pool)

	var mu sync.Mutex
	var got LogRecord
	var gotOK bool
	r := bus.Connect(AddressLog, func(msg *Message) {
		buf := make([]byte, msg.Size())
		msg.Read(buf)
		mu.Lock()
		got, gotOK = DecodeLogRecord(buf)
		mu.Unlock()
	})
	defer bus.Disconnect(r)

	sink := NewLogSink(bus, AddressLog, MakeFOURCC('t', 's', 't', '1'), slog.LevelInfo)
	logger := slog.New(sink)
	logger.Info("hello from the bus")

	for bus.Dispatch(DispatchFlush) == DispatchOK {
	}

	mu.Lock()
	defer mu.Unlock()
	if !gotOK {
		t.Fatalf("DecodeLogRecord failed to decode the published message")
	}
	if got.Text != "hello from the bus" {
		t.Fatalf("Text = %q, want %q", got.Text, "hello from the bus")
	}
	if got.Level != LevelInfo {
		t.Fatalf("Level = %v, want %v", got.Level, LevelInfo)
	}
	if got.Tag != MakeFOURCC('t', 's', 't', '1') {
		t.Fatalf("Tag = %v, want tst1", got.Tag)
	}
}

func TestLogSinkEnabledRespectsMinLevel(t *testing.T) {
	pool := NewPool(4)
	bus := NewBus(pool)
	sink := NewLogSink(bus, AddressLog, MakeFOURCC('t', 's', 't', '1'), slog.LevelWarn)

	if sink.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("Enabled(Info) = true, want false when min level is Warn")
	}
	if !sink.Enabled(context.Background(), slog.LevelWarn) {
		t.Fatal("Enabled(Warn) = false, want true when min level is Warn")
	}
	if !sink.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Enabled(Error) = false, want true when min level is Warn")
	}
}

func TestSlogLevelToBusMapsAllFourLevels(t *testing.T) {
	cases := []struct {
		in   slog.Level
		want Level
	}{
		{slog.LevelDebug, LevelDebug},
		{slog.LevelInfo, LevelInfo},
		{slog.LevelWarn, LevelWarn},
		{slog.LevelError, LevelError},
	}
	for _, c := range cases {
		if got := slogLevelToBus(c.in); got != c.want {
			t.Errorf("slogLevelToBus(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
