package cncbus

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// LogSink is a slog.Handler that mirrors every record it receives onto
// the bus as a LOG1 message addressed to AddressLog, so external
// subscribers (metrics, crash reporting) can observe core log traffic
// without the core depending on them (spec.md §6: "the bus carries LOG1
// records end to end").
type LogSink struct {
	bus   *Bus
	dest  Address
	tag   FOURCC
	level slog.Level
}

// NewLogSink constructs a handler publishing to dest (ordinarily
// AddressLog) at or above minLevel.
func NewLogSink(bus *Bus, dest Address, tag FOURCC, minLevel slog.Level) *LogSink {
	return &LogSink{bus: bus, dest: dest, tag: tag, level: minLevel}
}

func (s *LogSink) Enabled(_ context.Context, level slog.Level) bool {
	return level >= s.level
}

func (s *LogSink) Handle(_ context.Context, record slog.Record) error {
	now := time.Now()
	funcName, file, line := sourceOf(record.PC)
	rec := LogRecord{
		EpochSeconds: uint32(now.Unix()),
		EpochMicros:  uint32(now.Nanosecond() / 1000),
		Tag:          s.tag,
		Func:         funcName,
		File:         file,
		Line:         uint16(line & 0xffff), //nolint:gosec // source lines fit uint16 in practice
		Level:        slogLevelToBus(record.Level),
		Text:         record.Message,
	}
	payload := EncodeLogRecord(rec)

	msg := BeginChecked(s.bus.Pool(), Header{Type: MsgTypeLog, DestAddr: s.dest, DestSubnet: MaskAll, TimeMS: uint32(now.UnixMilli())})
	msg.WriteChecked(payload)
	s.bus.Send(msg)
	return nil
}

func (s *LogSink) WithAttrs(_ []slog.Attr) slog.Handler { return s }
func (s *LogSink) WithGroup(_ string) slog.Handler      { return s }

func sourceOf(pc uintptr) (funcName string, file string, line int) {
	if pc == 0 {
		return "", "", 0
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	return frame.Function, frame.File, frame.Line
}

func slogLevelToBus(l slog.Level) Level {
	switch {
	case l >= slog.LevelError:
		return LevelError
	case l >= slog.LevelWarn:
		return LevelWarn
	case l >= slog.LevelInfo:
		return LevelInfo
	default:
		return LevelDebug
	}
}
