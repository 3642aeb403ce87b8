package cncbus

import (
	"encoding/binary"
)

// Level is a log severity, matching spec.md §7 "log entries at
// debug/info/warn/error/always".
type Level uint8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelAlways
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelAlways:
		return "always"
	default:
		return "unknown"
	}
}

// LogRecord is the payload of a MsgTypeLog message (spec.md §6 "Log record
// payload"). The original packs func/file as raw string pointers valid
// only within the logging process; since a Go message has no address
// space to share, func/file are carried as length-prefixed UTF-8 strings
// inline instead.
type LogRecord struct {
	EpochSeconds uint32
	EpochMicros  uint32
	Tag          FOURCC
	Func         string
	File         string
	Line         uint16
	Level        Level
	Text         string
}

// EncodeLogRecord serializes r into a byte slice suitable for
// Message.Write.
func EncodeLogRecord(r LogRecord) []byte {
	size := 4 + 4 + 4 + 2 + 1 + // fixed fields
		2 + len(r.Func) + 2 + len(r.File) + len(r.Text)
	buf := make([]byte, size)
	off := 0
	binary.LittleEndian.PutUint32(buf[off:], r.EpochSeconds)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], r.EpochMicros)
	off += 4
	binary.LittleEndian.PutUint32(buf[off:], uint32(r.Tag))
	off += 4
	binary.LittleEndian.PutUint16(buf[off:], uint16(len(r.Func)))
	off += 2
	off += copy(buf[off:], r.Func)
	binary.LittleEndian.PutUint16(buf[off:], uint16(len(r.File)))
	off += 2
	off += copy(buf[off:], r.File)
	binary.LittleEndian.PutUint16(buf[off:], r.Line)
	off += 2
	buf[off] = byte(r.Level)
	off++
	copy(buf[off:], r.Text)
	return buf
}

// DecodeLogRecord parses a LogRecord previously produced by
// EncodeLogRecord out of a fully-received message payload.
func DecodeLogRecord(buf []byte) (LogRecord, bool) {
	var r LogRecord
	if len(buf) < 14 {
		return r, false
	}
	off := 0
	r.EpochSeconds = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	r.EpochMicros = binary.LittleEndian.Uint32(buf[off:])
	off += 4
	r.Tag = FOURCC(binary.LittleEndian.Uint32(buf[off:]))
	off += 4
	funcLen := int(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	if off+funcLen > len(buf) {
		return r, false
	}
	r.Func = string(buf[off : off+funcLen])
	off += funcLen
	if off+2 > len(buf) {
		return r, false
	}
	fileLen := int(binary.LittleEndian.Uint16(buf[off:]))
	off += 2
	if off+fileLen > len(buf) {
		return r, false
	}
	r.File = string(buf[off : off+fileLen])
	off += fileLen
	if off+3 > len(buf) {
		return r, false
	}
	r.Line = binary.LittleEndian.Uint16(buf[off:])
	off += 2
	r.Level = Level(buf[off])
	off++
	r.Text = string(buf[off:])
	return r, true
}
