package cncbus

import "fmt"

// Address is a 4-byte bus address, modeled after IP addressing for routing
// flexibility only — bus addresses are never sent over a network.
type Address uint32

// Broadcast is the well-known address that matches every receiver.
const Broadcast Address = 0

// Invalid is a sentinel used where "no address" needs a distinguishable
// value from Broadcast.
const Invalid Address = 0xFFFFFFFF

// MakeAddress builds an Address from four bytes, most significant first,
// mirroring CNCBUS_MAKE_ADDRESS in the original source.
func MakeAddress(a, b, c, d byte) Address {
	return Address(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// String renders the address in dotted-quad form for log/debug output.
func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", byte(a>>24), byte(a>>16), byte(a>>8), byte(a))
}

// Mask is a subnet mask applied to an Address during routing.
type Mask uint32

// MaskAll matches only an exact address (no wildcard bits).
const MaskAll Mask = 0xFFFFFFFF

// MaskNone matches any address — combined with dest address 0 this is
// broadcast; combined with a non-zero dest address it matches nothing but
// that exact bitwise-masked value, which is everything since the mask is
// zero.
const MaskNone Mask = 0

// Matches reports whether a message destined for (dest, mask) should be
// delivered to a receiver at address recv, per spec.md §4.4 step 1:
// broadcast (dest == 0) matches all; otherwise recv&mask == dest&mask.
func Matches(dest Address, mask Mask, recv Address) bool {
	if dest == Broadcast {
		return true
	}
	return uint32(recv)&uint32(mask) == uint32(dest)&uint32(mask)
}
