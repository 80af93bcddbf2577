// Package dive locates dive records inside a raw memory dump and decodes
// their delta-coded profile streams into time/depth/event samples.
//
// # Record Splitting
//
// Dives are stored newest-first in the dump, but each record only carries a
// forward length. Boundaries are therefore recovered by scanning the dump
// backward for the record marker, using each accepted record's start as an
// exclusive upper bound for the next candidate. A length field that would
// cross that bound means the chain is corrupt.
//
// # Profile Stream
//
// A record's profile is a byte stream after a 3-byte header. Each byte is
// either a signed depth delta (implying one 3-minute time tick), an event
// marker in the 0x7E..0x82 band, or the 0x80 terminator. The sentinel
// deltas 0x7D and 0x83 pull in one continuation byte to encode deltas
// beyond the single-byte range. The byte after the terminator holds the
// sub-3-minute remainder of the total dive time.
package dive
