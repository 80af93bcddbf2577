package device

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/divelog/divelink/internal/buffer"
	"github.com/divelog/divelink/internal/dive"
	"github.com/divelog/divelink/internal/protocol"
)

func le32(v uint32) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, v)
	return b
}

func versionSteps() []step {
	return []step{
		{expect: []byte{0x10}, answer: []byte{0x12}},
		{expect: []byte{0x14}, answer: le32(0x11223344)},
		{expect: []byte{0x1A}, answer: le32(0x40302010)},
	}
}

func dumpCommand(opcode byte, timestamp uint32) []byte {
	return protocol.DumpCommand(opcode, timestamp)
}

func TestDump_EmptySkipsDataQuery(t *testing.T) {
	// L == 0 means no new dives: the data query must never be sent.
	steps := append(versionSteps(),
		step{expect: dumpCommand(0xC6, 0), answer: le32(0)},
	)
	f := &scriptTransport{t: t, steps: steps}
	s := &Session{transport: f}

	var events []Progress
	s.SetEvents(Events{Progress: func(p Progress) { events = append(events, p) }})

	buf := buffer.New(8) // pre-filled buffer must come back empty
	if err := s.Dump(buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("buffer length = %d, want 0", buf.Len())
	}
	if len(f.steps) != 0 {
		t.Errorf("%d scripted steps left unconsumed", len(f.steps))
	}

	final := events[len(events)-1]
	if final.Maximum != 13 || final.Current != 13 {
		t.Errorf("final progress = %d/%d, want 13/13", final.Current, final.Maximum)
	}
}

func TestDump_FullTransfer(t *testing.T) {
	payload := make([]byte, 40)
	for i := range payload {
		payload[i] = byte(i)
	}
	length := uint32(len(payload))
	timestamp := uint32(0x12345678)

	steps := append(versionSteps(),
		step{expect: dumpCommand(0xC6, timestamp), answer: le32(length)},
		// The total answer and the payload arrive on the same query.
		step{expect: dumpCommand(0xC4, timestamp), answer: append(le32(length+4), payload...)},
	)
	f := &scriptTransport{t: t, steps: steps}
	s := &Session{transport: f}
	s.SetTimestamp(timestamp)

	var clock Clock
	var info DevInfo
	var events []Progress
	s.SetEvents(Events{
		Progress: func(p Progress) { events = append(events, p) },
		Clock:    func(c Clock) { clock = c },
		DevInfo:  func(d DevInfo) { info = d },
	})

	var buf buffer.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if !bytes.Equal(buf.Bytes(), payload) {
		t.Errorf("buffer = % x, want % x", buf.Bytes(), payload)
	}

	if info.Model != 0x12 || info.Serial != 0x11223344 || info.Firmware != 0 {
		t.Errorf("devinfo = %+v", info)
	}
	if clock.DevTime != 0x40302010 {
		t.Errorf("clock devtime = 0x%08x, want 0x40302010", clock.DevTime)
	}
	if clock.SysTime.IsZero() {
		t.Error("clock systime not sampled")
	}

	wantMax := uint32(4 + 9 + length + 4)
	final := events[len(events)-1]
	if final.Maximum != wantMax || final.Current != wantMax {
		t.Errorf("final progress = %d/%d, want %d/%d",
			final.Current, final.Maximum, wantMax, wantMax)
	}

	// The first event fires before any traffic.
	if events[0].Current != 0 {
		t.Errorf("first progress current = %d, want 0", events[0].Current)
	}
}

func TestDump_TotalMismatch(t *testing.T) {
	length := uint32(16)
	steps := append(versionSteps(),
		step{expect: dumpCommand(0xC6, 0), answer: le32(length)},
		step{expect: dumpCommand(0xC4, 0), answer: le32(length + 8)},
	)
	f := &scriptTransport{t: t, steps: steps}
	s := &Session{transport: f}

	var buf buffer.Buffer
	err := s.Dump(&buf)
	if !errors.Is(err, protocol.ErrProtocol) {
		t.Fatalf("Dump() error = %v, want ErrProtocol", err)
	}
}

func TestDump_ChunkSizing(t *testing.T) {
	// With Available capped at 1, chunks fall back to the 32-byte
	// minimum, with the final chunk clipped to the remaining total.
	payload := make([]byte, 40)
	length := uint32(len(payload))

	steps := append(versionSteps(),
		step{expect: dumpCommand(0xC6, 0), answer: le32(length)},
		step{expect: dumpCommand(0xC4, 0), answer: append(le32(length+4), payload...)},
	)
	f := &scriptTransport{t: t, steps: steps, capAvailable: 1}
	s := &Session{transport: f}

	var chunks []uint32
	var last uint32
	s.SetEvents(Events{Progress: func(p Progress) {
		if p.Maximum > 0 && p.Current > last {
			chunks = append(chunks, p.Current-last)
		}
		last = p.Current
	}})

	var buf buffer.Buffer
	if err := s.Dump(&buf); err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	// Data chunks are the progress deltas after the two 4-byte answers.
	want := []uint32{4, 4, 32, 8}
	if len(chunks) != len(want) {
		t.Fatalf("progress deltas = %v, want %v", chunks, want)
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Fatalf("progress deltas = %v, want %v", chunks, want)
		}
	}
}

func TestForeachDive_NewestFirst(t *testing.T) {
	// Two records; the splitter yields the higher offset first.
	older := record([]byte{0x01, 0x01, 0x01, 0x01}, []byte{0x00, 0x00, 0x00, 0x03, 0x80, 0x00})
	newer := record([]byte{0x02, 0x02, 0x02, 0x02}, []byte{0x00, 0x00, 0x00, 0x05, 0x80, 0x01})
	payload := append(append([]byte{}, older...), newer...)
	length := uint32(len(payload))

	steps := append(versionSteps(),
		step{expect: dumpCommand(0xC6, 0), answer: le32(length)},
		step{expect: dumpCommand(0xC4, 0), answer: append(le32(length+4), payload...)},
	)
	f := &scriptTransport{t: t, steps: steps}
	s := &Session{transport: f}

	var fingerprints [][]byte
	err := s.ForeachDive(func(r dive.Record) bool {
		fingerprints = append(fingerprints, append([]byte{}, r.Fingerprint...))
		return true
	})
	if err != nil {
		t.Fatalf("ForeachDive() error = %v", err)
	}

	if len(fingerprints) != 2 {
		t.Fatalf("got %d dives, want 2", len(fingerprints))
	}
	if !bytes.Equal(fingerprints[0], []byte{0x02, 0x02, 0x02, 0x02}) {
		t.Errorf("first fingerprint = % x, want the record nearer the tail", fingerprints[0])
	}
	if !bytes.Equal(fingerprints[1], []byte{0x01, 0x01, 0x01, 0x01}) {
		t.Errorf("second fingerprint = % x", fingerprints[1])
	}
}

// record builds a wire-format dive record from a fingerprint and profile.
func record(fingerprint, profile []byte) []byte {
	r := []byte{0xA5, 0xA5, 0x5A, 0x5A}
	r = append(r, le32(uint32(8+len(fingerprint)+len(profile)))...)
	r = append(r, fingerprint...)
	r = append(r, profile...)
	return r
}
