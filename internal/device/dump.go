package device

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/divelog/divelink/internal/buffer"
	"github.com/divelog/divelink/internal/logging"
	"github.com/divelog/divelink/internal/protocol"
)

// versionQuerySize is the number of answer bytes moved by the three
// device info queries, counted into the dump progress.
const versionQuerySize = 9

// minChunkSize is the smallest read issued by the dump loop. When the
// transport has buffered more, the chunk grows to match, which keeps the
// per-read overhead down without ever reading past the announced total.
const minChunkSize = 32

// Dump downloads the raw memory image into buf. The buffer is cleared
// first and sized to exactly the length the device announces; on any error
// the caller must treat its contents as garbage.
//
// Along the way Dump emits progress events after every protocol step and
// every data chunk, one clock calibration event, and one device info
// event. With a fingerprint filter set, the device only sends memory for
// dives newer than the fingerprint; no new dives means an empty (but
// successful) dump.
func (s *Session) Dump(buf *buffer.Buffer) error {
	buf.Clear()

	var progress Progress
	s.emitProgress(progress)

	// Identify the device and record the clock calibration pair. Host
	// time is sampled right after the device clock answer arrives.
	info, devtime, err := s.Version()
	if err != nil {
		return err
	}
	s.systime = time.Now()
	s.devtime = devtime

	progress.Current += versionQuerySize
	s.emitProgress(progress)

	s.emitClock(Clock{SysTime: s.systime, DevTime: s.devtime})
	s.emitDevInfo(info)

	// Ask how much memory the device will send for the current
	// fingerprint filter.
	answer, err := s.transfer(protocol.DumpCommand(protocol.CmdDumpLength, s.timestamp), 4)
	if err != nil {
		return err
	}
	length := binary.LittleEndian.Uint32(answer)

	progress.Maximum = 4 + versionQuerySize
	if length > 0 {
		progress.Maximum += length + 4
	}
	progress.Current += 4
	s.emitProgress(progress)

	logging.Info("Dump length negotiated",
		zap.Uint32("length", length),
		zap.Uint32("fingerprint", s.timestamp),
	)

	if length == 0 {
		return nil
	}

	buf.Resize(int(length))
	data := buf.Bytes()

	// Request the transfer. The device repeats the total size (payload
	// plus the 4-byte answer itself) before streaming the payload.
	answer, err = s.transfer(protocol.DumpCommand(protocol.CmdDumpData, s.timestamp), 4)
	if err != nil {
		return err
	}
	total := binary.LittleEndian.Uint32(answer)

	if total != length+4 {
		return fmt.Errorf("%w: announced %d bytes, transfer total %d",
			protocol.ErrProtocol, length, total)
	}

	progress.Current += 4
	s.emitProgress(progress)

	var nbytes uint32
	for nbytes < length {
		chunk := uint32(minChunkSize)

		// Read bigger chunks when the transport has data waiting.
		if available := s.transport.Available(); available > minChunkSize {
			chunk = uint32(available)
		}

		// Never past the announced total.
		if nbytes+chunk > length {
			chunk = length - nbytes
		}

		if _, err := io.ReadFull(s.transport, data[nbytes:nbytes+chunk]); err != nil {
			logging.Error("Failed to receive dump chunk",
				zap.Uint32("offset", nbytes),
				zap.Uint32("chunk", chunk),
				zap.Error(err),
			)
			return fmt.Errorf("failed to receive the answer: %w", classify(err))
		}

		nbytes += chunk
		progress.Current += chunk
		s.emitProgress(progress)
	}

	logging.Info("Dump complete", zap.Uint32("bytes", length))

	return nil
}
