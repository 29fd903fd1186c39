package mapping

import (
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-yaml"
)

// canonicalOrder fixes the ordering of the six standard drum parts.
// Parts outside this list sort alphabetically after them.
var canonicalOrder = map[string]int{
	"Kick": 0, "Snare": 1, "Hihat": 2, "Ride": 3, "Crash": 4, "Tom": 5,
}

// PartNotes is one drum part with its assigned note numbers, sorted
// ascending.
type PartNotes struct {
	Name  string
	Notes []uint8
}

// Mapping is a validated assignment of note numbers to drum parts. A note
// number belongs to at most one part. Build one with Load, LoadFile or
// Default; a Mapping is immutable once built.
type Mapping struct {
	Parts   []PartNotes
	reverse map[uint8]string
}

// PartFor returns the part that owns the given note number, if any.
func (m *Mapping) PartFor(note uint8) (string, bool) {
	name, ok := m.reverse[note]
	return name, ok
}

// PartNames returns the part names in mapping order.
func (m *Mapping) PartNames() []string {
	names := make([]string, len(m.Parts))
	for i, p := range m.Parts {
		names[i] = p.Name
	}
	return names
}

// document is the on-disk shape of a mapping: a drum_parts section keyed
// by part name, each value a list of Cubase-style note names.
type document struct {
	DrumParts map[string][]string `yaml:"drum_parts"`
}

// Load parses and validates a YAML mapping document. A note name that
// does not parse aborts the whole load; a note number claimed by two
// different parts is an error rather than a silent overwrite, since an
// overwrite would make notes vanish from one part without warning.
func Load(data []byte) (*Mapping, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	if len(doc.DrumParts) == 0 {
		return nil, fmt.Errorf("%w: missing or empty drum_parts section", ErrInvalidMapping)
	}

	names := make([]string, 0, len(doc.DrumParts))
	for name := range doc.DrumParts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iKnown := canonicalOrder[names[i]]
		rj, jKnown := canonicalOrder[names[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown != jKnown:
			return iKnown
		default:
			return names[i] < names[j]
		}
	})

	m := &Mapping{
		Parts:   make([]PartNotes, 0, len(names)),
		reverse: make(map[uint8]string),
	}
	for _, name := range names {
		part := PartNotes{Name: name}
		seen := make(map[uint8]bool)
		for _, noteName := range doc.DrumParts[name] {
			n, err := ParseNote(noteName)
			if err != nil {
				return nil, fmt.Errorf("%w: part %q: note %q: %v", ErrInvalidMapping, name, noteName, err)
			}
			note := uint8(n)
			if owner, claimed := m.reverse[note]; claimed && owner != name {
				return nil, fmt.Errorf("%w: note %d (%s) claimed by %q and %q", ErrConflictingAssignment, note, noteName, owner, name)
			}
			if seen[note] {
				continue
			}
			seen[note] = true
			m.reverse[note] = name
			part.Notes = append(part.Notes, note)
		}
		sort.Slice(part.Notes, func(i, j int) bool { return part.Notes[i] < part.Notes[j] })
		m.Parts = append(m.Parts, part)
	}
	return m, nil
}

// LoadFile loads a mapping document from disk.
func LoadFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMapping, err)
	}
	return Load(data)
}

// Default returns the built-in mapping, loaded through the same
// validation path as a user document.
func Default() *Mapping {
	m, err := Load([]byte(DefaultDocument))
	if err != nil {
		panic(fmt.Sprintf("built-in mapping does not load: %v", err))
	}
	return m
}
