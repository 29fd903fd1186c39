package smf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestVarLenVectors(t *testing.T) {
	// The canonical examples from the SMF specification.
	tests := []struct {
		value   uint32
		encoded []byte
	}{
		{0x00000000, []byte{0x00}},
		{0x00000040, []byte{0x40}},
		{0x0000007F, []byte{0x7F}},
		{0x00000080, []byte{0x81, 0x00}},
		{0x00002000, []byte{0xC0, 0x00}},
		{0x00003FFF, []byte{0xFF, 0x7F}},
		{0x00004000, []byte{0x81, 0x80, 0x00}},
		{0x00100000, []byte{0xC0, 0x80, 0x00}},
		{0x001FFFFF, []byte{0xFF, 0xFF, 0x7F}},
		{0x00200000, []byte{0x81, 0x80, 0x80, 0x00}},
		{0x08000000, []byte{0xC0, 0x80, 0x80, 0x00}},
		{0x0FFFFFFF, []byte{0xFF, 0xFF, 0xFF, 0x7F}},
	}

	for _, tt := range tests {
		got, err := appendVarLen(nil, tt.value)
		if err != nil {
			t.Fatalf("appendVarLen(0x%08X) returned error: %v", tt.value, err)
		}
		if !bytes.Equal(got, tt.encoded) {
			t.Errorf("appendVarLen(0x%08X) = % X, want % X", tt.value, got, tt.encoded)
		}

		value, n, err := readVarLen(tt.encoded)
		if err != nil {
			t.Fatalf("readVarLen(% X) returned error: %v", tt.encoded, err)
		}
		if value != tt.value || n != len(tt.encoded) {
			t.Errorf("readVarLen(% X) = (0x%08X, %d), want (0x%08X, %d)",
				tt.encoded, value, n, tt.value, len(tt.encoded))
		}
	}
}

func TestVarLenErrors(t *testing.T) {
	if _, _, err := readVarLen(nil); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("readVarLen(nil) error = %v, want ErrTruncatedStream", err)
	}

	// Continuation bit set on the last available byte.
	if _, _, err := readVarLen([]byte{0x81}); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("readVarLen(81) error = %v, want ErrTruncatedStream", err)
	}

	// Four continuation bytes in a row exceed the format's four-byte cap.
	if _, _, err := readVarLen([]byte{0x81, 0x82, 0x83, 0x84, 0x05}); !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("readVarLen(over-long) error = %v, want ErrTruncatedStream", err)
	}

	if _, err := appendVarLen(nil, MaxVarLen+1); err == nil {
		t.Error("appendVarLen(MaxVarLen+1) did not return an error")
	}
}

func TestVarLenRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("decode inverts encode over the full value range", prop.ForAll(
		func(v uint32) bool {
			encoded, err := appendVarLen(nil, v)
			if err != nil {
				return false
			}
			decoded, n, err := readVarLen(encoded)
			return err == nil && decoded == v && n == len(encoded)
		},
		gen.UInt32Range(0, MaxVarLen),
	))

	properties.TestingRun(t)
}
