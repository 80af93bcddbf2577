package device

import "time"

// Progress reports how far a dump has come, in protocol bytes. Maximum is
// zero until the device has answered the length query; after that it stays
// fixed for the rest of the dump.
type Progress struct {
	Current uint32
	Maximum uint32
}

// Clock is a single instantaneous correlation between the host clock and
// the device clock, sampled right after the device info queries. No
// filtering or smoothing is applied.
type Clock struct {
	SysTime time.Time
	DevTime uint32
}

// DevInfo identifies the device behind the session. Firmware is always
// zero: this family does not report a firmware version.
type DevInfo struct {
	Model    byte
	Firmware uint32
	Serial   uint32
}

// Events carries the optional notification callbacks a dump emits.
// Nil callbacks are skipped. Callbacks run on the calling goroutine,
// between transport operations, so they must not block for long.
type Events struct {
	Progress func(Progress)
	Clock    func(Clock)
	DevInfo  func(DevInfo)
}

func (s *Session) emitProgress(p Progress) {
	if s.events.Progress != nil {
		s.events.Progress(p)
	}
}

func (s *Session) emitClock(c Clock) {
	if s.events.Clock != nil {
		s.events.Clock(c)
	}
}

func (s *Session) emitDevInfo(d DevInfo) {
	if s.events.DevInfo != nil {
		s.events.DevInfo(d)
	}
}
