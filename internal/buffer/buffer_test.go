package buffer

import (
	"bytes"
	"testing"
)

func TestBuffer_Resize(t *testing.T) {
	tests := []struct {
		name    string
		initial []byte
		size    int
		want    []byte
	}{
		{
			name:    "grow from empty",
			initial: nil,
			size:    4,
			want:    []byte{0, 0, 0, 0},
		},
		{
			name:    "grow preserves prefix and zero-fills",
			initial: []byte{1, 2, 3},
			size:    5,
			want:    []byte{1, 2, 3, 0, 0},
		},
		{
			name:    "shrink preserves prefix",
			initial: []byte{1, 2, 3, 4},
			size:    2,
			want:    []byte{1, 2},
		},
		{
			name:    "resize to zero",
			initial: []byte{1, 2},
			size:    0,
			want:    []byte{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Buffer{}
			b.Resize(len(tt.initial))
			copy(b.Bytes(), tt.initial)

			b.Resize(tt.size)

			if b.Len() != tt.size {
				t.Errorf("Len() = %d, want %d", b.Len(), tt.size)
			}
			if !bytes.Equal(b.Bytes(), tt.want) {
				t.Errorf("Bytes() = %v, want %v", b.Bytes(), tt.want)
			}
		})
	}
}

func TestBuffer_ClearKeepsCapacityAndZeroFillsRegrowth(t *testing.T) {
	b := New(4)
	copy(b.Bytes(), []byte{0xAA, 0xBB, 0xCC, 0xDD})

	b.Clear()
	if b.Len() != 0 {
		t.Fatalf("Len() after Clear = %d, want 0", b.Len())
	}

	// Growing back over the old contents must yield zeros, not stale bytes.
	b.Resize(4)
	if !bytes.Equal(b.Bytes(), []byte{0, 0, 0, 0}) {
		t.Errorf("regrown bytes = %v, want zeros", b.Bytes())
	}
}
