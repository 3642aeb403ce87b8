package cncbus

// Well-known message type FOURCCs (spec.md §6 "Bus wire").
var (
	MsgTypeUTF8  = MakeFOURCC('U', 'T', 'F', '8')
	MsgTypeLog   = MakeFOURCC('L', 'O', 'G', '1')
	MsgTypeMetric = MakeFOURCC('M', 'E', 'T', '2')
	MsgTypeEvent = MakeFOURCC('E', 'V', 'N', 'T')
)
