// Package smf provides reading and writing of Standard MIDI Files
package smf

// Channel-voice status bytes (high nibble; low nibble is the channel)
const (
	StatusNoteOff         = 0x80
	StatusNoteOn          = 0x90
	StatusPolyAftertouch  = 0xA0
	StatusControlChange   = 0xB0
	StatusProgramChange   = 0xC0
	StatusChannelPressure = 0xD0
	StatusPitchBend       = 0xE0
)

// System status bytes
const (
	StatusSysEx         = 0xF0
	StatusSysExContinue = 0xF7
	StatusMeta          = 0xFF
)

// Meta event types
const (
	MetaText           = 0x01
	MetaCopyright      = 0x02
	MetaTrackName      = 0x03
	MetaInstrumentName = 0x04
	MetaLyric          = 0x05
	MetaMarker         = 0x06
	MetaCuePoint       = 0x07
	MetaEndOfTrack     = 0x2F
	MetaTempo          = 0x51
	MetaSMPTEOffset    = 0x54
	MetaTimeSignature  = 0x58
	MetaKeySignature   = 0x59
)

// Event is a single MIDI event with its absolute timestamp in ticks.
// Status holds the full status byte (channel included for voice events);
// for meta events Status is 0xFF and MetaType identifies the event. Data
// holds the bytes following the status: two (or one) data bytes for voice
// events, the raw payload for meta and system-exclusive events.
type Event struct {
	Tick     uint64
	Status   byte
	MetaType byte
	Data     []byte
}

// IsMeta reports whether the event is a meta event.
func (e Event) IsMeta() bool {
	return e.Status == StatusMeta
}

// IsNote reports whether the event is a note-on or note-off. A note-on
// with velocity zero still counts as a note-on here; callers that care
// about the off semantics check the velocity themselves.
func (e Event) IsNote() bool {
	s := e.Status & 0xF0
	return s == StatusNoteOn || s == StatusNoteOff
}

// IsNoteOn reports whether the event carries a note-on status byte,
// regardless of velocity.
func (e Event) IsNoteOn() bool {
	return e.Status&0xF0 == StatusNoteOn
}

// Channel returns the channel of a voice event.
func (e Event) Channel() uint8 {
	return e.Status & 0x0F
}

// Note returns the note number of a note event.
func (e Event) Note() uint8 {
	if len(e.Data) < 1 {
		return 0
	}
	return e.Data[0] & 0x7F
}

// Velocity returns the velocity of a note event.
func (e Event) Velocity() uint8 {
	if len(e.Data) < 2 {
		return 0
	}
	return e.Data[1] & 0x7F
}

// IsEndOfTrack reports whether the event is the end-of-track meta event.
func (e Event) IsEndOfTrack() bool {
	return e.IsMeta() && e.MetaType == MetaEndOfTrack
}

// IsStructural reports whether the event is one of the non-note meta
// events that every derived file must carry to stay playable: tempo, time
// signature, key signature, SMPTE offset, track and instrument names,
// markers, cue points and end-of-track.
func (e Event) IsStructural() bool {
	if !e.IsMeta() {
		return false
	}
	switch e.MetaType {
	case MetaTempo, MetaTimeSignature, MetaKeySignature, MetaSMPTEOffset,
		MetaTrackName, MetaInstrumentName, MetaMarker, MetaCuePoint,
		MetaEndOfTrack:
		return true
	}
	return false
}

// Clone returns a deep copy of the event that shares no memory with the
// original.
func (e Event) Clone() Event {
	c := e
	if e.Data != nil {
		c.Data = make([]byte, len(e.Data))
		copy(c.Data, e.Data)
	}
	return c
}

// EndOfTrack returns an end-of-track meta event at the given tick.
func EndOfTrack(tick uint64) Event {
	return Event{Tick: tick, Status: StatusMeta, MetaType: MetaEndOfTrack}
}

// Track is an ordered sequence of events, non-decreasing in Tick.
type Track []Event

// File is the in-memory form of a Standard MIDI File. It is built once by
// Parse and treated as read-only afterwards; derived files are fresh
// copies.
type File struct {
	Format   uint16
	Division uint16
	Tracks   []Track
}

// TicksPerQuarterNote returns the metrical resolution, or 0 when the
// division field carries an SMPTE time code instead.
func (f *File) TicksPerQuarterNote() uint16 {
	if f.Division&0x8000 != 0 {
		return 0
	}
	return f.Division
}
