package smf

import (
	"encoding/binary"
	"errors"
	"testing"
)

// buildFile assembles a MIDI file from a 14-byte header description and
// raw chunks.
func buildFile(format, trackCount, division uint16, chunks ...[]byte) []byte {
	data := []byte("MThd")
	data = binary.BigEndian.AppendUint32(data, 6)
	data = binary.BigEndian.AppendUint16(data, format)
	data = binary.BigEndian.AppendUint16(data, trackCount)
	data = binary.BigEndian.AppendUint16(data, division)
	for _, c := range chunks {
		data = append(data, c...)
	}
	return data
}

func chunk(chunkType string, payload []byte) []byte {
	c := []byte(chunkType)
	c = binary.BigEndian.AppendUint32(c, uint32(len(payload)))
	return append(c, payload...)
}

var endOfTrackBytes = []byte{0x00, 0xFF, 0x2F, 0x00}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty input", nil, ErrMalformedHeader},
		{"short input", []byte("MThd\x00\x00"), ErrMalformedHeader},
		{"bad magic", buildFile(0, 1, 480), ErrMalformedHeader},
		{"bad header length", buildFile(0, 1, 480), ErrMalformedHeader},
		{"format 3", buildFile(3, 1, 480), ErrUnsupportedFormat},
		{"format 0 with two tracks", buildFile(0, 2, 480), ErrMalformedHeader},
	}
	// Corrupt the specific header field each case targets.
	copy(tests[2].data[0:4], "RIFF")
	tests[3].data[7] = 7

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseTruncation(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"missing track chunk", buildFile(1, 1, 480)},
		{"chunk longer than file", buildFile(1, 1, 480, chunk("MTrk", make([]byte, 100))[:20])},
		{"event without status", buildFile(1, 1, 480, chunk("MTrk", []byte{0x00}))},
		{"meta without type", buildFile(1, 1, 480, chunk("MTrk", []byte{0x00, 0xFF}))},
		{"meta payload too short", buildFile(1, 1, 480, chunk("MTrk", []byte{0x00, 0xFF, 0x51, 0x03, 0x07}))},
		{"sysex payload too short", buildFile(1, 1, 480, chunk("MTrk", []byte{0x00, 0xF0, 0x05, 0x41}))},
		{"voice event cut off", buildFile(1, 1, 480, chunk("MTrk", []byte{0x00, 0x90, 0x24}))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, ErrTruncatedStream) {
				t.Errorf("Parse() error = %v, want ErrTruncatedStream", err)
			}
		})
	}
}

func TestParseRunningStatus(t *testing.T) {
	track := []byte{
		0x00, 0x99, 0x24, 0x64, // note on, channel 9, note 36, velocity 100
		0x60, 0x26, 0x50, // running status: note 38, velocity 80
		0x20, 0x24, 0x00, // running status: note 36, velocity 0
	}
	track = append(track, endOfTrackBytes...)
	f, err := Parse(buildFile(0, 1, 480, chunk("MTrk", track)))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(f.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(f.Tracks))
	}
	events := f.Tracks[0]
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}

	want := []struct {
		tick     uint64
		status   byte
		note     uint8
		velocity uint8
	}{
		{0, 0x99, 36, 100},
		{0x60, 0x99, 38, 80},
		{0x80, 0x99, 36, 0},
	}
	for i, w := range want {
		ev := events[i]
		if ev.Tick != w.tick || ev.Status != w.status || ev.Note() != w.note || ev.Velocity() != w.velocity {
			t.Errorf("event %d = tick %d status 0x%02X note %d vel %d, want tick %d status 0x%02X note %d vel %d",
				i, ev.Tick, ev.Status, ev.Note(), ev.Velocity(), w.tick, w.status, w.note, w.velocity)
		}
		if ev.Channel() != 9 {
			t.Errorf("event %d channel = %d, want 9", i, ev.Channel())
		}
	}
	if !events[3].IsEndOfTrack() {
		t.Error("last event is not end-of-track")
	}
}

func TestParseDataByteWithoutRunningStatus(t *testing.T) {
	track := []byte{0x00, 0x24, 0x64}
	_, err := Parse(buildFile(0, 1, 480, chunk("MTrk", track)))
	if !errors.Is(err, ErrTruncatedStream) {
		t.Errorf("Parse() error = %v, want ErrTruncatedStream", err)
	}
}

func TestParseMetaAndSysEx(t *testing.T) {
	track := []byte{
		0x00, 0xFF, 0x51, 0x03, 0x07, 0xA1, 0x20, // tempo, 500000 us per quarter
		0x00, 0xF0, 0x03, 0x41, 0x10, 0xF7, // sysex
	}
	track = append(track, endOfTrackBytes...)
	f, err := Parse(buildFile(0, 1, 480, chunk("MTrk", track)))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	events := f.Tracks[0]
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3", len(events))
	}

	tempo := events[0]
	if !tempo.IsMeta() || tempo.MetaType != MetaTempo {
		t.Errorf("event 0 = status 0x%02X meta 0x%02X, want tempo meta", tempo.Status, tempo.MetaType)
	}
	if got := uint32(tempo.Data[0])<<16 | uint32(tempo.Data[1])<<8 | uint32(tempo.Data[2]); got != 500000 {
		t.Errorf("tempo payload = %d, want 500000", got)
	}
	if !tempo.IsStructural() {
		t.Error("tempo meta not reported as structural")
	}

	sysex := events[1]
	if sysex.Status != StatusSysEx || len(sysex.Data) != 3 {
		t.Errorf("event 1 = status 0x%02X with %d data bytes, want sysex with 3", sysex.Status, len(sysex.Data))
	}
}

func TestParseSkipsAlienChunks(t *testing.T) {
	track := append([]byte{0x00, 0x90, 0x24, 0x64}, endOfTrackBytes...)
	data := buildFile(0, 1, 480,
		chunk("XFIH", []byte{0xDE, 0xAD, 0xBE, 0xEF}),
		chunk("MTrk", track),
	)
	f, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if len(f.Tracks) != 1 || len(f.Tracks[0]) != 2 {
		t.Fatalf("got %d tracks, want 1 with 2 events", len(f.Tracks))
	}
	if f.Tracks[0][0].Note() != 36 {
		t.Errorf("note = %d, want 36", f.Tracks[0][0].Note())
	}
}

func TestParseMultiTrack(t *testing.T) {
	track1 := append([]byte{0x00, 0x90, 0x24, 0x64}, endOfTrackBytes...)
	track2 := append([]byte{0x10, 0x91, 0x26, 0x40}, endOfTrackBytes...)
	f, err := Parse(buildFile(1, 2, 960, chunk("MTrk", track1), chunk("MTrk", track2)))
	if err != nil {
		t.Fatalf("Parse() returned error: %v", err)
	}
	if f.Format != 1 || len(f.Tracks) != 2 {
		t.Fatalf("format %d with %d tracks, want format 1 with 2 tracks", f.Format, len(f.Tracks))
	}
	if f.TicksPerQuarterNote() != 960 {
		t.Errorf("TicksPerQuarterNote() = %d, want 960", f.TicksPerQuarterNote())
	}
	if f.Tracks[1][0].Tick != 0x10 || f.Tracks[1][0].Channel() != 1 {
		t.Errorf("track 2 first event = tick %d channel %d, want tick 16 channel 1",
			f.Tracks[1][0].Tick, f.Tracks[1][0].Channel())
	}
}
