package mapping

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestFormatNote(t *testing.T) {
	tests := []struct {
		note     int
		expected string
	}{
		{0, "C-2"},
		{1, "C#-2"},
		{11, "B-2"},
		{12, "C-1"},
		{24, "C0"},
		{34, "A#0"},
		{36, "C1"},
		{42, "F#1"},
		{60, "C3"},
		{127, "G8"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got, err := FormatNote(tt.note)
			if err != nil {
				t.Fatalf("FormatNote(%d) returned error: %v", tt.note, err)
			}
			if got != tt.expected {
				t.Errorf("FormatNote(%d) = %q, want %q", tt.note, got, tt.expected)
			}
		})
	}
}

func TestFormatNoteOutOfRange(t *testing.T) {
	for _, n := range []int{-1, 128, 500} {
		if _, err := FormatNote(n); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("FormatNote(%d) error = %v, want ErrOutOfRange", n, err)
		}
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		name     string
		expected int
	}{
		{"C-2", 0},
		{"F#-2", 6},
		{"B-2", 11},
		{"A#0", 34},
		{"C1", 36},
		{"C3", 60},
		{"G8", 127},
		{"c1", 36},     // lowercase tolerated
		{" A#0 ", 34},  // surrounding whitespace tolerated
		{"a#-1", 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseNote(tt.name)
			if err != nil {
				t.Fatalf("ParseNote(%q) returned error: %v", tt.name, err)
			}
			if got != tt.expected {
				t.Errorf("ParseNote(%q) = %d, want %d", tt.name, got, tt.expected)
			}
		})
	}
}

func TestParseNoteInvalid(t *testing.T) {
	tests := []string{
		"",
		"C",    // missing octave
		"H2",   // no such letter
		"Db3",  // flats are not canonical
		"#3",   // missing letter
		"C-3",  // octave below range
		"C9",   // octave above range
		"A8",   // valid octave, note number past 127
		"G#8",
		"C 1",
		"1C",
	}

	for _, name := range tests {
		if _, err := ParseNote(name); !errors.Is(err, ErrInvalidNoteName) {
			t.Errorf("ParseNote(%q) error = %v, want ErrInvalidNoteName", name, err)
		}
	}
}

func TestNoteNameRoundTrip(t *testing.T) {
	for n := 0; n <= 127; n++ {
		name, err := FormatNote(n)
		if err != nil {
			t.Fatalf("FormatNote(%d) returned error: %v", n, err)
		}
		back, err := ParseNote(name)
		if err != nil {
			t.Fatalf("ParseNote(%q) returned error: %v", name, err)
		}
		if back != n {
			t.Errorf("ParseNote(FormatNote(%d)) = %d", n, back)
		}
	}
}

func TestNoteNameRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("parse inverts format for every MIDI note", prop.ForAll(
		func(n int) bool {
			name, err := FormatNote(n)
			if err != nil {
				return false
			}
			back, err := ParseNote(name)
			return err == nil && back == n
		},
		gen.IntRange(0, 127),
	))

	properties.TestingRun(t)
}
