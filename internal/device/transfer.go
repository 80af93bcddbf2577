package device

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/logging"
	"github.com/divelog/divelink/internal/protocol"
	"github.com/divelog/divelink/internal/transport"
)

// transfer sends one command frame and reads an answer of exactly asize
// bytes. Byte counts are exact in both directions; anything else is a
// transport failure. No retries happen at this layer.
func (s *Session) transfer(command []byte, asize int) ([]byte, error) {
	logging.LogRawBytes("Sending command", command)

	n, err := s.transport.Write(command)
	if err != nil || n != len(command) {
		logging.Error("Failed to send the command",
			zap.Int("written", n),
			zap.Int("expected", len(command)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to send the command: %w", classify(err))
	}

	answer := make([]byte, asize)
	if _, err := io.ReadFull(s.transport, answer); err != nil {
		logging.Error("Failed to receive the answer",
			zap.Int("expected", asize),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to receive the answer: %w", classify(err))
	}

	logging.LogRawBytes("Received answer", answer)

	return answer, nil
}

// classify maps a transport error onto the error taxonomy: timeouts stay
// timeouts, everything else (including a short write with a nil error)
// is an I/O failure.
func classify(err error) error {
	if err != nil && transport.IsTimeout(err) {
		return protocol.ErrTimeout
	}
	return protocol.ErrIO
}
