package cncbus

import "encoding/binary"

// EventRecord is the payload of a MsgTypeEvent message: a typed tag plus
// opaque arguments, grounded on
// _examples/original_source/source/adk/log/private/event_logger.c, which
// publishes structured events over the same bus the log records travel.
type EventRecord struct {
	Tag  FOURCC
	Args []byte
}

// EncodeEventRecord serializes r for Message.Write.
func EncodeEventRecord(r EventRecord) []byte {
	buf := make([]byte, 4+len(r.Args))
	binary.LittleEndian.PutUint32(buf, uint32(r.Tag))
	copy(buf[4:], r.Args)
	return buf
}

// DecodeEventRecord parses a payload previously produced by
// EncodeEventRecord.
func DecodeEventRecord(buf []byte) (EventRecord, bool) {
	if len(buf) < 4 {
		return EventRecord{}, false
	}
	return EventRecord{
		Tag:  FOURCC(binary.LittleEndian.Uint32(buf)),
		Args: append([]byte(nil), buf[4:]...),
	}, true
}
