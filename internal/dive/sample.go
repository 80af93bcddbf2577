package dive

import "fmt"

// SampleType discriminates the decoded sample kinds.
type SampleType int

const (
	// SampleTime carries elapsed dive time in seconds.
	SampleTime SampleType = iota

	// SampleDepth carries the current depth in meters.
	SampleDepth

	// SampleEvent carries a profile event marker.
	SampleEvent
)

// EventKind classifies profile events.
type EventKind int

const (
	// EventUnknown is an event byte the format does not document.
	EventUnknown EventKind = iota

	// EventDecoStop marks a decompression stop violation.
	EventDecoStop

	// EventCeiling marks a ceiling violation.
	EventCeiling

	// EventSlowAscent marks an ascent-rate warning.
	EventSlowAscent
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventDecoStop:
		return "deco stop"
	case EventCeiling:
		return "ceiling"
	case EventSlowAscent:
		return "slow ascent"
	default:
		return "unknown"
	}
}

// Sample is one decoded observation from a dive profile. Exactly one of
// the value fields is meaningful, selected by Type. For every profile byte
// that is a depth delta, a SampleTime and a SampleDepth are emitted as a
// pair, in that order.
type Sample struct {
	Type SampleType

	// Time is the elapsed dive time in seconds (SampleTime).
	Time uint32

	// Depth is the current depth in meters (SampleDepth).
	Depth float64

	// Event is the event classification (SampleEvent).
	Event EventKind
}

// String renders the sample for logs and debugging.
func (s Sample) String() string {
	switch s.Type {
	case SampleTime:
		return fmt.Sprintf("time %ds", s.Time)
	case SampleDepth:
		return fmt.Sprintf("depth %.2fm", s.Depth)
	case SampleEvent:
		return fmt.Sprintf("event %s", s.Event)
	default:
		return fmt.Sprintf("sample type %d", int(s.Type))
	}
}
