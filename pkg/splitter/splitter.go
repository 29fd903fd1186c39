// Package splitter partitions a parsed MIDI file into one file per drum
// part according to a note mapping.
package splitter

import (
	"sort"

	"github.com/like-daffy/midi-drum-part-splitter/pkg/mapping"
	"github.com/like-daffy/midi-drum-part-splitter/pkg/smf"
)

// Part is one split result: an independent MIDI file holding the note
// events routed to this part plus every structural meta event of the
// source. NoteCount counts the routed note-ons with velocity above zero;
// a part with NoteCount zero is considered empty and is normally not
// written to disk.
type Part struct {
	Name      string
	File      *smf.File
	NoteCount int
}

// Split derives one file per part in the mapping. The source file is not
// mutated and the derived files share no memory with it, so the parts can
// be written concurrently if the caller wants to.
//
// Per source track: note events whose number the mapping assigns to a
// part are routed there with channel, velocity and absolute tick
// preserved; note events assigned to no part are dropped; structural meta
// events (tempo, time signature and the rest) are replicated into every
// part so each output plays at the correct tempo. A note-off with no
// preceding note-on in its part is still emitted, since some encoders use
// note-on with velocity zero in place of note-off and both must survive
// verbatim.
func Split(src *smf.File, m *mapping.Mapping) []Part {
	names := m.PartNames()
	parts := make([]Part, len(names))
	index := make(map[string]int, len(names))
	for i, name := range names {
		parts[i] = Part{
			Name: name,
			File: &smf.File{
				Format:   src.Format,
				Division: src.Division,
				Tracks:   make([]smf.Track, len(src.Tracks)),
			},
		}
		index[name] = i
	}

	for ti, track := range src.Tracks {
		for _, ev := range track {
			switch {
			case ev.IsNote():
				name, ok := m.PartFor(ev.Note())
				if !ok {
					continue // unmapped notes are intentionally excluded
				}
				pi := index[name]
				parts[pi].File.Tracks[ti] = append(parts[pi].File.Tracks[ti], ev.Clone())
				if ev.IsNoteOn() && ev.Velocity() > 0 {
					parts[pi].NoteCount++
				}
			case ev.IsStructural():
				for pi := range parts {
					parts[pi].File.Tracks[ti] = append(parts[pi].File.Tracks[ti], ev.Clone())
				}
			}
		}
	}

	for pi := range parts {
		for ti := range parts[pi].File.Tracks {
			closeTrack(&parts[pi].File.Tracks[ti])
		}
	}
	return parts
}

// closeTrack re-sorts the collected events by absolute tick (stable on
// the original order for ties) and appends a terminal end-of-track meta
// event when the source track did not provide one.
func closeTrack(t *smf.Track) {
	track := *t
	sort.SliceStable(track, func(i, j int) bool { return track[i].Tick < track[j].Tick })
	if len(track) == 0 || !track[len(track)-1].IsEndOfTrack() {
		var last uint64
		if len(track) > 0 {
			last = track[len(track)-1].Tick
		}
		track = append(track, smf.EndOfTrack(last))
	}
	*t = track
}
