// Package pool recycles the per-decode pixel-cache buffers. A decode
// allocates one byte per (scaled) raster pixel to track consumed
// regions; for callers decoding frames of the same size in a loop, that
// buffer is by far the largest recurring allocation, so it is parked
// here between calls instead of handed back to the garbage collector.
package pool

import "sync"

var caches = sync.Pool{New: func() any { return new([]byte) }}

// Get returns a zeroed byte slice of exactly size bytes. Pass it back
// with Put when the decode finishes.
func Get(size int) []byte {
	bp := caches.Get().(*[]byte)
	if cap(*bp) >= size {
		b := (*bp)[:size]
		for i := range b {
			b[i] = 0
		}
		return b
	}
	// Too small to reuse; let it go and start over at the larger size.
	return make([]byte, size)
}

// Put parks a slice obtained from Get for reuse by a later Get.
func Put(b []byte) {
	if cap(b) == 0 {
		return
	}
	caches.Put(&b)
}
