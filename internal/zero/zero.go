// Package zero provides an explicit memory-wipe primitive for secret
// buffers. A plain scope exit is not enough in a garbage-collected runtime:
// the backing array can survive in freed memory until reclaimed and
// overwritten by something else. Every secret buffer used by this module
// (ephemeral private keys, shared points, derived symmetric keys, payload
// secrets) is wiped with Bytes on every exit path, success or failure.
package zero

// Bytes overwrites b with zeroes in place.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
