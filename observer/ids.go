package observer

import "sync/atomic"

var idCounter uint64

// NextID returns the next identifier for a dep or subscriber. IDs are
// monotonically increasing and never reused, so they double as creation order.
func NextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
