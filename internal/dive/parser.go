package dive

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/logging"
	"github.com/divelog/divelink/internal/protocol"
)

// Profile stream constants.
const (
	// profileHeaderSize is the opaque record header skipped before the
	// coded bytes begin.
	profileHeaderSize = 3

	// terminalByte ends the coded stream. The byte after it holds the
	// sub-tick remainder of the dive time, in minutes.
	terminalByte = 0x80

	// eventLow..eventHigh is the band reserved for event markers; bytes
	// outside it are depth deltas.
	eventLow  = 0x7E
	eventHigh = 0x82

	// overflowDown and overflowUp are the sentinel deltas that pull in a
	// continuation byte for deltas beyond the single-byte range.
	overflowDown = 0x7D
	overflowUp   = 0x83

	// tickMinutes is the fixed sample interval.
	tickMinutes = 3

	// feet converts the stored depth unit to meters.
	feet = 0.3048
)

// SampleCallback consumes decoded samples in production order. Returning
// false stops the decoding without an error.
type SampleCallback func(Sample) bool

// Parser decodes one dive record's profile stream. Derived fields
// (dive time, max depth) are computed on first use and cached until the
// next SetData. The zero value is a parser with no data.
type Parser struct {
	data []byte

	// Cached fields.
	cached   bool
	divetime uint32
	maxdepth int
}

// NewParser returns a parser with no data.
func NewParser() *Parser {
	return &Parser{}
}

// SetData points the parser at one dive record (marker and header
// included) and resets the field cache.
func (p *Parser) SetData(data []byte) {
	p.data = data
	p.cached = false
	p.divetime = 0
	p.maxdepth = 0
}

// ForeachSample replays the profile stream, feeding every decoded sample
// to fn in stream order.
func (p *Parser) ForeachSample(fn SampleCallback) error {
	if len(p.data) < profileHeaderSize+1 {
		return fmt.Errorf("%w: profile too short (%d bytes)",
			protocol.ErrDataFormat, len(p.data))
	}

	var time uint32
	var depth int

	offset := profileHeaderSize
	for offset < len(p.data) && p.data[offset] != terminalByte {
		value := p.data[offset]
		offset++

		if value < eventLow || value > eventHigh {
			// One delta byte means one time tick.
			time += tickMinutes * 60
			if fn != nil && !fn(Sample{Type: SampleTime, Time: time}) {
				return nil
			}

			depth += int(int8(value))
			if value == overflowDown || value == overflowUp {
				// The rest of the delta lives in the next byte.
				if offset >= len(p.data) {
					return fmt.Errorf("%w: truncated overflow continuation",
						protocol.ErrDataFormat)
				}
				depth += int(int8(p.data[offset]))
				offset++
			}

			if fn != nil && !fn(Sample{Type: SampleDepth, Depth: float64(depth) * feet}) {
				return nil
			}
			continue
		}

		kind := EventUnknown
		switch value {
		case 0x7E:
			kind = EventDecoStop
		case 0x7F:
			kind = EventCeiling
		case 0x81:
			kind = EventSlowAscent
		default:
			logging.Warn("Unknown profile event", zap.Uint8("value", value))
		}

		if fn != nil && !fn(Sample{Type: SampleEvent, Event: kind}) {
			return nil
		}
	}

	// The loop may also stop by running off the end of the record; only
	// an explicit terminal byte is a well-formed stream.
	if offset >= len(p.data) || p.data[offset] != terminalByte {
		return fmt.Errorf("%w: missing terminal marker", protocol.ErrDataFormat)
	}

	return nil
}

// cacheFields runs the derived-field pass: one decode counting samples and
// tracking the depth maximum, then the dive time from the sample count and
// the remainder byte after the terminal marker.
func (p *Parser) cacheFields() error {
	if p.cached {
		return nil
	}

	if len(p.data) < profileHeaderSize+1 {
		return fmt.Errorf("%w: profile too short (%d bytes)",
			protocol.ErrDataFormat, len(p.data))
	}

	var nsamples int
	var depth, maxdepth int

	offset := profileHeaderSize
	for offset < len(p.data) && p.data[offset] != terminalByte {
		value := p.data[offset]
		offset++

		if value < eventLow || value > eventHigh {
			depth += int(int8(value))
			if value == overflowDown || value == overflowUp {
				if offset >= len(p.data) {
					return fmt.Errorf("%w: truncated overflow continuation",
						protocol.ErrDataFormat)
				}
				depth += int(int8(p.data[offset]))
				offset++
			}
			if depth > maxdepth {
				maxdepth = depth
			}
			nsamples++
		}
	}

	// The terminal marker and its remainder byte must both be present.
	if offset+1 >= len(p.data) || p.data[offset] != terminalByte {
		return fmt.Errorf("%w: missing terminal marker", protocol.ErrDataFormat)
	}

	p.divetime = uint32(nsamples*tickMinutes+int(p.data[offset+1])) * 60
	p.maxdepth = maxdepth
	p.cached = true

	return nil
}

// Divetime returns the total dive time in seconds.
func (p *Parser) Divetime() (uint32, error) {
	if err := p.cacheFields(); err != nil {
		return 0, err
	}
	return p.divetime, nil
}

// MaxDepth returns the maximum depth in meters.
func (p *Parser) MaxDepth() (float64, error) {
	if err := p.cacheFields(); err != nil {
		return 0, err
	}
	return float64(p.maxdepth) * feet, nil
}

// GasMix is a breathing gas fraction triple. This format does not record
// the mix, so a single air mix is reported.
type GasMix struct {
	Oxygen   float64
	Helium   float64
	Nitrogen float64
}

// GasMixCount returns the number of gas mixes (always one: air).
func (p *Parser) GasMixCount() int {
	return 1
}

// GasMixAt returns the gas mix at index. Only index 0 exists.
func (p *Parser) GasMixAt(index int) (GasMix, error) {
	if index != 0 {
		return GasMix{}, fmt.Errorf("%w: gas mix %d", protocol.ErrUnsupported, index)
	}
	mix := GasMix{Oxygen: 0.21, Helium: 0}
	mix.Nitrogen = 1.0 - mix.Oxygen - mix.Helium
	return mix, nil
}
