package dive

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/divelog/divelink/internal/protocol"
)

// Record is one delimited dive inside a dump. Both slices are views into
// the dump buffer and must not outlive it.
type Record struct {
	// Data is the full record, marker and header included.
	Data []byte

	// Fingerprint is the 4-byte device timestamp identifying the dive.
	Fingerprint []byte
}

// Callback consumes one record. Returning false stops the extraction
// without an error; records already delivered stand.
type Callback func(Record) bool

// Extract scans a completed dump for dive records and hands them to fn,
// newest first. The scan runs backward from the tail (see the package
// comment); a record whose length would overlap the previously accepted
// record is a format error and stops everything.
//
// An empty dump, or a dump without any marker, yields no records and no
// error.
func Extract(data []byte, fn Callback) error {
	marker := protocol.RecordMarker[:]

	previous := len(data)
	current := len(data) - len(marker)
	if current < 0 {
		current = 0
	}

	for current > 0 {
		current--
		if !bytes.Equal(data[current:current+len(marker)], marker) {
			continue
		}

		// The length field must fit inside the dump.
		if current+protocol.RecordHeaderSize > len(data) {
			return fmt.Errorf("%w: record header at %d truncated by end of dump",
				protocol.ErrDataFormat, current)
		}

		length := int(binary.LittleEndian.Uint32(data[current+4 : current+8]))

		// The record may not reach into the one found before it, and
		// must at least cover its own header and fingerprint.
		if current+length > previous {
			return fmt.Errorf("%w: record at %d (length %d) overlaps offset %d",
				protocol.ErrDataFormat, current, length, previous)
		}
		if length < protocol.RecordHeaderSize+protocol.RecordFingerprintSize {
			return fmt.Errorf("%w: record at %d truncated (length %d)",
				protocol.ErrDataFormat, current, length)
		}

		record := Record{
			Data: data[current : current+length],
			Fingerprint: data[current+protocol.RecordFingerprintOff : current+
				protocol.RecordFingerprintOff+protocol.RecordFingerprintSize],
		}
		if fn != nil && !fn(record) {
			return nil
		}

		previous = current
		current -= len(marker)
		if current < 0 {
			current = 0
		}
	}

	return nil
}
