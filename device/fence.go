package device

// Fence marks a submitted-work point: an order class plus the submission
// counter value assigned to that queue at submit time (spec.md §3
// "Fence"). It retires once the device's monotonically increasing
// done-count for that order class reaches or passes Counter.
type Fence struct {
	order   OrderClass
	counter uint64
}

// zeroFence is the fence value for "nothing submitted yet" — trivially
// retired, since there is nothing to wait for.
var zeroFence = Fence{}
