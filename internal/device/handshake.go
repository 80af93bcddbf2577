package device

import (
	"fmt"

	"github.com/divelog/divelink/internal/protocol"
)

// Handshake performs the two-stage challenge/response that establishes the
// peer is a compatible dive computer. Stage 2 is only attempted after
// stage 1 succeeds.
func (s *Session) Handshake() error {
	// Stage 1: single-byte challenge.
	answer, err := s.transfer([]byte{protocol.CmdHandshake1}, 1)
	if err != nil {
		return err
	}
	if answer[0] != protocol.AnswerOK {
		return fmt.Errorf("%w: handshake stage 1 answered 0x%02x",
			protocol.ErrProtocol, answer[0])
	}

	// Stage 2: fixed 5-byte frame.
	answer, err = s.transfer(protocol.Handshake2Frame[:], 1)
	if err != nil {
		return err
	}
	if answer[0] != protocol.AnswerOK {
		return fmt.Errorf("%w: handshake stage 2 answered 0x%02x",
			protocol.ErrProtocol, answer[0])
	}

	return nil
}
