package protocol

import (
	"bytes"
	"testing"
)

func TestDumpCommand(t *testing.T) {
	tests := []struct {
		name      string
		opcode    byte
		timestamp uint32
		want      []byte
	}{
		{
			name:      "length query without filter",
			opcode:    CmdDumpLength,
			timestamp: 0,
			want:      []byte{0xC6, 0x00, 0x00, 0x00, 0x00, 0x10, 0x27, 0x00, 0x00},
		},
		{
			name:      "data query with fingerprint",
			opcode:    CmdDumpData,
			timestamp: 0x12345678,
			want:      []byte{0xC4, 0x78, 0x56, 0x34, 0x12, 0x10, 0x27, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DumpCommand(tt.opcode, tt.timestamp)
			if !bytes.Equal(got, tt.want) {
				t.Errorf("DumpCommand() = % x, want % x", got, tt.want)
			}
		})
	}
}

func TestHandshake2Frame(t *testing.T) {
	want := []byte{0x1C, 0x00, 0x10, 0x27, 0x00}
	if !bytes.Equal(Handshake2Frame[:], want) {
		t.Errorf("Handshake2Frame = % x, want % x", Handshake2Frame[:], want)
	}
}
