// Package mapping resolves drum part mappings: Cubase-style note names,
// the YAML mapping document and the built-in default table.
package mapping

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidNoteName reports a note name that does not parse: a letter
	// outside A-G, an octave outside -2..8, or a note past the MIDI range.
	ErrInvalidNoteName = errors.New("invalid note name")

	// ErrOutOfRange reports a note number outside 0..127.
	ErrOutOfRange = errors.New("note number out of range")

	// ErrInvalidMapping reports a mapping document that failed to load.
	ErrInvalidMapping = errors.New("invalid mapping")

	// ErrConflictingAssignment reports a note number claimed by two parts.
	ErrConflictingAssignment = errors.New("conflicting note assignment")
)

// Cubase octave numbering: MIDI note 0 is C-2, note 127 is G8. One
// canonical spelling per pitch class, sharps only.
var pitchClasses = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

var semitones = map[string]int{
	"C": 0, "C#": 1, "D": 2, "D#": 3, "E": 4, "F": 5,
	"F#": 6, "G": 7, "G#": 8, "A": 9, "A#": 10, "B": 11,
}

// FormatNote converts a MIDI note number to its Cubase-style name,
// e.g. 36 -> "C1".
func FormatNote(n int) (string, error) {
	if n < 0 || n > 127 {
		return "", fmt.Errorf("%w: %d", ErrOutOfRange, n)
	}
	return fmt.Sprintf("%s%d", pitchClasses[n%12], n/12-2), nil
}

// ParseNote converts a Cubase-style note name to its MIDI note number,
// e.g. "A#0" -> 34. Sharps only; flats are not a canonical spelling.
func ParseNote(name string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return 0, fmt.Errorf("%w: empty name", ErrInvalidNoteName)
	}
	letterLen := 1
	if len(s) > 1 && s[1] == '#' {
		letterLen = 2
	}
	pc, ok := semitones[s[:letterLen]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	octave, err := strconv.Atoi(s[letterLen:])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNoteName, name)
	}
	if octave < -2 || octave > 8 {
		return 0, fmt.Errorf("%w: %q: octave %d outside -2..8", ErrInvalidNoteName, name, octave)
	}
	n := (octave+2)*12 + pc
	if n > 127 {
		return 0, fmt.Errorf("%w: %q: note number %d past the MIDI range", ErrInvalidNoteName, name, n)
	}
	return n, nil
}
