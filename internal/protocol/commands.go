package protocol

import "encoding/binary"

// Command opcodes.
const (
	CmdHandshake1 = 0x1B // handshake stage 1
	CmdHandshake2 = 0x1C // handshake stage 2
	CmdModel      = 0x10 // model number
	CmdSerial     = 0x14 // serial number
	CmdClock      = 0x1A // device clock (seconds)
	CmdDumpLength = 0xC6 // query dump payload length
	CmdDumpData   = 0xC4 // request dump payload
)

// AnswerOK is the single-byte acknowledgement to both handshake stages.
const AnswerOK = 0x01

// FingerprintSize is the size of a dive fingerprint (a device timestamp).
const FingerprintSize = 4

// Dive record framing inside a raw memory dump.
const (
	RecordHeaderSize      = 8  // marker + LE32 length
	RecordFingerprintOff  = 8  // fingerprint offset from marker start
	RecordFingerprintSize = 4
)

// RecordMarker delimits the start of a dive record inside a dump.
var RecordMarker = [4]byte{0xA5, 0xA5, 0x5A, 0x5A}

// Handshake2Frame is the fixed stage-2 handshake frame. Bytes 2-4 are
// baud-style parameters, constant on every known unit.
var Handshake2Frame = [5]byte{CmdHandshake2, 0x00, 0x10, 0x27, 0x00}

// dumpTrailer closes both dump commands. Same constants as the stage-2
// handshake parameters plus two zero bytes.
var dumpTrailer = [4]byte{0x10, 0x27, 0x00, 0x00}

// DumpCommand builds the 9-byte dump command for the given opcode
// (CmdDumpLength or CmdDumpData). The fingerprint timestamp selects how far
// back the device reaches: zero means everything, a non-zero value means
// only dives newer than the matching one.
func DumpCommand(opcode byte, timestamp uint32) []byte {
	cmd := make([]byte, 9)
	cmd[0] = opcode
	binary.LittleEndian.PutUint32(cmd[1:5], timestamp)
	copy(cmd[5:], dumpTrailer[:])
	return cmd
}
