// Package memory provides the paged-region and guarded-allocator
// primitives: a fixed-size region descriptor, a mutex-protected heap
// carved out of that region, and a single-threaded linear (bump) allocator
// for per-pass scratch space. No other package in this module imports it;
// the device and the glyph atlas allocate their own storage.
//
// Nothing here allocates hidden memory behind the caller's back — every
// heap and arena is constructed over a Region the caller supplies, rather
// than reaching for the Go heap midway through a frame.
package memory
