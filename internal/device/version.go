package device

import (
	"encoding/binary"

	"github.com/divelog/divelink/internal/protocol"
)

// Version reads the device identity: model number, serial number and the
// device clock. Three independent fixed-size queries; the first failure
// aborts the whole read.
func (s *Session) Version() (DevInfo, uint32, error) {
	var info DevInfo

	// Model number.
	answer, err := s.transfer([]byte{protocol.CmdModel}, 1)
	if err != nil {
		return info, 0, err
	}
	info.Model = answer[0]

	// Serial number.
	answer, err = s.transfer([]byte{protocol.CmdSerial}, 4)
	if err != nil {
		return info, 0, err
	}
	info.Serial = binary.LittleEndian.Uint32(answer)

	// Device clock, in device seconds.
	answer, err = s.transfer([]byte{protocol.CmdClock}, 4)
	if err != nil {
		return info, 0, err
	}
	devtime := binary.LittleEndian.Uint32(answer)

	return info, devtime, nil
}
