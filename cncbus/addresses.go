package cncbus

// Well-known subsystem addresses, carried over from
// _examples/original_source/source/adk/cncbus/cncbus_addresses.h — spec.md
// only specifies the general addressing mechanism, not these constants.
var (
	// AddressLog is where LogSink (logsink.go) ordinarily publishes LOG1
	// records.
	AddressLog = MakeAddress('l', 'o', 'g', '0')

	// AddressMetrics is where metrics publish MET2 records.
	AddressMetrics = MakeAddress('m', 'e', 't', '0')

	// AddressEvents is where application/system EVNT records are routed.
	AddressEvents = MakeAddress('e', 'v', 't', '0')
)
