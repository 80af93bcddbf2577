package device

import (
	"github.com/divelog/divelink/internal/buffer"
	"github.com/divelog/divelink/internal/dive"
)

// ForeachDive downloads the device memory and hands every dive record to
// fn, newest first. The records are views into a dump buffer owned by this
// call; they are only valid inside the callback.
//
// fn returning false stops the iteration successfully; dives already
// delivered stand.
func (s *Session) ForeachDive(fn dive.Callback) error {
	buf := &buffer.Buffer{}

	if err := s.Dump(buf); err != nil {
		return err
	}

	return dive.Extract(buf.Bytes(), fn)
}
