package protocol

import "errors"

// Error taxonomy for the whole download/decode pipeline. Callers are
// expected to test with errors.Is and decide whether a retry makes sense:
// ErrIO and ErrTimeout are transport conditions that may clear up, while
// ErrProtocol and ErrDataFormat indicate corrupted or unsupported data and
// will not improve on retry.
var (
	// ErrInvalidArgument reports bad caller input, such as a fingerprint
	// of the wrong size.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoSpace reports a destination buffer too small for the data the
	// device produced.
	ErrNoSpace = errors.New("insufficient buffer space")

	// ErrIO reports a transport read or write that moved the wrong number
	// of bytes without being a timeout.
	ErrIO = errors.New("transport i/o failure")

	// ErrTimeout reports a transport-level timeout.
	ErrTimeout = errors.New("transport timeout")

	// ErrProtocol reports an answer the device should never send: a bad
	// handshake byte or an inconsistent dump total.
	ErrProtocol = errors.New("unexpected answer from device")

	// ErrDataFormat reports malformed binary structure: a truncated
	// record, an overlapping record chain, a profile stream without its
	// terminal marker, or a truncated overflow continuation.
	ErrDataFormat = errors.New("malformed dive data")

	// ErrUnsupported reports a field the format cannot produce.
	ErrUnsupported = errors.New("unsupported field")
)
