// Package protocol defines the wire protocol spoken by Uwatec Smart family
// dive computers.
//
// The protocol is a strict command/response exchange over an IrDA-class
// packet transport (today usually reached through a serial-over-IP bridge).
// Every command is a fixed-size frame; every answer is a fixed number of
// bytes. There is no framing beyond the byte counts themselves, so a reply
// of the wrong length is indistinguishable from a broken link and is treated
// as an I/O failure by the layers above.
//
// # Command Set
//
// Single-byte commands:
//   - 0x1B  handshake stage 1, answers 0x01 on success
//   - 0x10  model number, 1-byte answer
//   - 0x14  serial number, 4-byte little-endian answer
//   - 0x1A  device clock, 4-byte little-endian answer (seconds)
//
// Multi-byte commands:
//   - 0x1C  handshake stage 2: 1C 00 10 27 00, answers 0x01
//   - 0xC6  dump length query: C6 + LE32 fingerprint + 10 27 00 00,
//     answers LE32 payload length
//   - 0xC4  dump data query: C4 + LE32 fingerprint + 10 27 00 00,
//     answers LE32 total (= length+4) followed by the raw payload
//
// # Memory Dump Layout
//
// A dump is a concatenation of dive records, newest first. Each record
// starts with the marker A5 A5 5A 5A, followed by a little-endian 32-bit
// record length (counted from the marker), followed at offset +8 by a
// 4-byte fingerprint. Because the length field points forward while the
// records are ordered newest-first, record boundaries are recovered by
// scanning the dump backward (see the dive package).
//
// This package holds the constants, the command builders, and the error
// taxonomy shared by the device session and the dive decoding layers.
package protocol
