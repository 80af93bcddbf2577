// Package transport provides the packet transports used to reach a dive
// computer. The original hardware speaks IrDA; in practice the link is a
// serial-over-IP bridge reachable over plain TCP or a WebSocket endpoint.
//
// Both implementations expose the same narrow contract: blocking reads and
// writes with a per-operation deadline, plus a non-blocking Available probe
// the download engine uses to size its read chunks. Short reads and writes
// are possible and are the caller's problem to detect; the session layer
// treats any byte-count mismatch as a failure.
package transport

import (
	"errors"
	"net"
	"os"
)

// Transport is a byte channel to a dive computer or bridge.
type Transport interface {
	// Write sends len(p) bytes. A short write without an error is still
	// a failure for the protocol layers above.
	Write(p []byte) (int, error)

	// Read fills p with up to len(p) bytes, blocking until at least one
	// byte arrives, the deadline passes, or the link fails.
	Read(p []byte) (int, error)

	// Available reports how many bytes can be read without blocking.
	// Best effort; zero never means the link is idle for good.
	Available() int

	// Close shuts the link down. Safe to call more than once.
	Close() error
}

// IsTimeout reports whether err is a transport-level timeout, as opposed to
// a hard I/O failure. Retrying after a timeout can make sense; retrying a
// broken link cannot.
func IsTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
