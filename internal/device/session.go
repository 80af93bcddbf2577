package device

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/logging"
	"github.com/divelog/divelink/internal/protocol"
	"github.com/divelog/divelink/internal/transport"
)

// Session is an open connection to a dive computer. It is not safe for
// concurrent use; the protocol itself is strictly sequential.
type Session struct {
	transport transport.Transport

	// timestamp is the fingerprint filter sent with dump commands.
	// Zero means "everything".
	timestamp uint32

	// Clock calibration pair recorded by the last dump.
	devtime uint32
	systime time.Time

	handshakeOK bool
	events      Events
}

// Open creates a session over an already-connected transport and performs
// the handshake. The session takes ownership of the transport.
//
// A failed handshake does not fail Open. Some units stay mute on the
// handshake commands after waking up and answer everything else normally,
// so the failure is logged, recorded, and left to the caller to judge via
// HandshakeOK. Transport-level errors during the handshake are still
// returned, since they mean the link itself is broken.
func Open(t transport.Transport) (*Session, error) {
	s := &Session{transport: t}

	if err := s.Handshake(); err != nil {
		if !errors.Is(err, protocol.ErrProtocol) {
			t.Close()
			return nil, err
		}
		logging.Warn("Handshake refused, continuing anyway", zap.Error(err))
	} else {
		s.handshakeOK = true
	}

	return s, nil
}

// HandshakeOK reports whether the device acknowledged both handshake
// stages during Open.
func (s *Session) HandshakeOK() bool {
	return s.handshakeOK
}

// SetEvents installs the notification callbacks used by Dump.
func (s *Session) SetEvents(events Events) {
	s.events = events
}

// SetFingerprint sets the dive filter from a stored fingerprint. An empty
// fingerprint clears the filter; anything but 0 or 4 bytes is rejected.
func (s *Session) SetFingerprint(data []byte) error {
	if len(data) != 0 && len(data) != protocol.FingerprintSize {
		return fmt.Errorf("%w: fingerprint must be %d bytes, got %d",
			protocol.ErrInvalidArgument, protocol.FingerprintSize, len(data))
	}

	if len(data) == 0 {
		s.timestamp = 0
	} else {
		s.timestamp = binary.LittleEndian.Uint32(data)
	}

	return nil
}

// SetTimestamp sets the dive filter directly from a device timestamp.
func (s *Session) SetTimestamp(timestamp uint32) {
	s.timestamp = timestamp
}

// Timestamp returns the current dive filter value.
func (s *Session) Timestamp() uint32 {
	return s.timestamp
}

// Clock returns the calibration pair recorded by the last dump. The zero
// Clock means no dump has run yet.
func (s *Session) Clock() Clock {
	return Clock{SysTime: s.systime, DevTime: s.devtime}
}

// Close shuts the transport down.
func (s *Session) Close() error {
	if err := s.transport.Close(); err != nil {
		return fmt.Errorf("%w: closing transport: %v", protocol.ErrIO, err)
	}
	return nil
}
