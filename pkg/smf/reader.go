package smf

import (
	"encoding/binary"
	"fmt"
	"os"
)

const headerLen = 14

// voiceDataLen returns the number of data bytes that follow a
// channel-voice status byte.
func voiceDataLen(status byte) int {
	switch status & 0xF0 {
	case StatusProgramChange, StatusChannelPressure:
		return 1
	default:
		return 2
	}
}

// systemDataLen returns the number of data bytes for a system common or
// real-time status byte (excluding sysex, which is length-prefixed).
func systemDataLen(status byte) int {
	switch status {
	case 0xF1, 0xF3: // MTC quarter frame, song select
		return 1
	case 0xF2: // song position pointer
		return 2
	default:
		return 0
	}
}

// Parse decodes a raw byte buffer into a File. The buffer is never
// mutated; event payloads are copied. Absolute ticks are accumulated per
// track while decoding.
func Parse(data []byte) (*File, error) {
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: file is %d bytes, need at least %d", ErrMalformedHeader, len(data), headerLen)
	}
	if string(data[0:4]) != "MThd" {
		return nil, fmt.Errorf("%w: bad magic bytes % X", ErrMalformedHeader, data[0:4])
	}
	if l := binary.BigEndian.Uint32(data[4:8]); l != 6 {
		return nil, fmt.Errorf("%w: header length %d, want 6", ErrMalformedHeader, l)
	}
	format := binary.BigEndian.Uint16(data[8:10])
	if format > 2 {
		return nil, fmt.Errorf("%w: format type %d", ErrUnsupportedFormat, format)
	}
	trackCount := binary.BigEndian.Uint16(data[10:12])
	if format == 0 && trackCount != 1 {
		return nil, fmt.Errorf("%w: format 0 declares %d tracks", ErrMalformedHeader, trackCount)
	}

	f := &File{
		Format:   format,
		Division: binary.BigEndian.Uint16(data[12:14]),
		Tracks:   make([]Track, 0, trackCount),
	}

	pos := headerLen
	for len(f.Tracks) < int(trackCount) {
		if pos+8 > len(data) {
			return nil, fmt.Errorf("%w: expected chunk header at byte %d", ErrTruncatedStream, pos)
		}
		chunkType := string(data[pos : pos+4])
		chunkLen := int(binary.BigEndian.Uint32(data[pos+4 : pos+8]))
		pos += 8
		if pos+chunkLen > len(data) {
			return nil, fmt.Errorf("%w: chunk at byte %d claims %d bytes, %d remain", ErrTruncatedStream, pos-8, chunkLen, len(data)-pos)
		}
		if chunkType != "MTrk" {
			// Alien chunks are legal in SMF; skip them.
			pos += chunkLen
			continue
		}
		track, err := parseTrack(data[pos:pos+chunkLen], pos)
		if err != nil {
			return nil, err
		}
		f.Tracks = append(f.Tracks, track)
		pos += chunkLen
	}
	return f, nil
}

// ParseFile reads and decodes a MIDI file from disk.
func ParseFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read MIDI file: %w", err)
	}
	return Parse(data)
}

// parseTrack decodes the events of one MTrk chunk. base is the offset of
// the chunk payload within the whole file, used for error context only.
func parseTrack(chunk []byte, base int) (Track, error) {
	// Most events take three or four bytes.
	track := make(Track, 0, len(chunk)/4)
	var tick uint64
	var running byte

	i := 0
	for i < len(chunk) {
		delta, n, err := readVarLen(chunk[i:])
		if err != nil {
			return nil, fmt.Errorf("delta-time at byte %d: %w", base+i, err)
		}
		i += n
		tick += uint64(delta)

		if i >= len(chunk) {
			return nil, fmt.Errorf("%w: event at byte %d has no status byte", ErrTruncatedStream, base+i)
		}
		status := chunk[i]

		switch {
		case status == StatusMeta:
			i++
			if i >= len(chunk) {
				return nil, fmt.Errorf("%w: meta event at byte %d has no type byte", ErrTruncatedStream, base+i)
			}
			metaType := chunk[i]
			i++
			length, n, err := readVarLen(chunk[i:])
			if err != nil {
				return nil, fmt.Errorf("meta event length at byte %d: %w", base+i, err)
			}
			i += n
			if i+int(length) > len(chunk) {
				return nil, fmt.Errorf("%w: meta event at byte %d claims %d bytes, %d remain", ErrTruncatedStream, base+i, length, len(chunk)-i)
			}
			payload := make([]byte, length)
			copy(payload, chunk[i:i+int(length)])
			i += int(length)
			running = 0
			track = append(track, Event{Tick: tick, Status: StatusMeta, MetaType: metaType, Data: payload})

		case status == StatusSysEx || status == StatusSysExContinue:
			i++
			length, n, err := readVarLen(chunk[i:])
			if err != nil {
				return nil, fmt.Errorf("sysex length at byte %d: %w", base+i, err)
			}
			i += n
			if i+int(length) > len(chunk) {
				return nil, fmt.Errorf("%w: sysex event at byte %d claims %d bytes, %d remain", ErrTruncatedStream, base+i, length, len(chunk)-i)
			}
			payload := make([]byte, length)
			copy(payload, chunk[i:i+int(length)])
			i += int(length)
			running = 0
			track = append(track, Event{Tick: tick, Status: status, Data: payload})

		case status >= 0xF1:
			// System common / real-time; fixed payload, copied as-is.
			i++
			dl := systemDataLen(status)
			if i+dl > len(chunk) {
				return nil, fmt.Errorf("%w: system event at byte %d claims %d bytes, %d remain", ErrTruncatedStream, base+i, dl, len(chunk)-i)
			}
			payload := make([]byte, dl)
			copy(payload, chunk[i:i+dl])
			i += dl
			running = 0
			track = append(track, Event{Tick: tick, Status: status, Data: payload})

		default:
			// Channel-voice event. A status byte with the high bit clear
			// reuses the previous status (running status); in that case
			// the byte we are looking at is already the first data byte.
			if status&0x80 != 0 {
				running = status
				i++
			} else if running == 0 {
				return nil, fmt.Errorf("%w: data byte 0x%02X at byte %d with no running status", ErrTruncatedStream, status, base+i)
			} else {
				status = running
			}
			dl := voiceDataLen(status)
			if i+dl > len(chunk) {
				return nil, fmt.Errorf("%w: voice event at byte %d claims %d bytes, %d remain", ErrTruncatedStream, base+i, dl, len(chunk)-i)
			}
			payload := make([]byte, dl)
			copy(payload, chunk[i:i+dl])
			i += dl
			track = append(track, Event{Tick: tick, Status: status, Data: payload})
		}
	}
	return track, nil
}
