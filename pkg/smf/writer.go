package smf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
)

// Encode serializes the file back to Standard MIDI File bytes, recomputing
// per-event delta-times from the absolute ticks. Running status is applied
// to consecutive voice events as an encoding optimization; the output is
// semantically equivalent to the input model, not byte-identical to
// whatever encoder produced it.
func (f *File) Encode() ([]byte, error) {
	if len(f.Tracks) > 0xFFFF {
		return nil, fmt.Errorf("too many tracks: %d", len(f.Tracks))
	}

	var buf bytes.Buffer
	buf.WriteString("MThd")
	if err := binary.Write(&buf, binary.BigEndian, uint32(6)); err != nil {
		return nil, err
	}
	for _, v := range []uint16{f.Format, uint16(len(f.Tracks)), f.Division} {
		if err := binary.Write(&buf, binary.BigEndian, v); err != nil {
			return nil, err
		}
	}

	for ti, track := range f.Tracks {
		chunk, err := encodeTrack(track)
		if err != nil {
			return nil, fmt.Errorf("track %d: %w", ti, err)
		}
		buf.WriteString("MTrk")
		if err := binary.Write(&buf, binary.BigEndian, uint32(len(chunk))); err != nil {
			return nil, err
		}
		buf.Write(chunk)
	}
	return buf.Bytes(), nil
}

// WriteFile encodes the file and writes it to path, overwriting any
// existing file.
func (f *File) WriteFile(path string) error {
	data, err := f.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write MIDI file: %w", err)
	}
	return nil
}

func encodeTrack(track Track) ([]byte, error) {
	chunk := make([]byte, 0, len(track)*4)
	var prev uint64
	var running byte
	var err error

	for i, ev := range track {
		if ev.Tick < prev {
			return nil, fmt.Errorf("event %d at tick %d precedes tick %d", i, ev.Tick, prev)
		}
		delta := ev.Tick - prev
		if delta > MaxVarLen {
			return nil, fmt.Errorf("event %d: delta-time %d exceeds the variable-length range", i, delta)
		}
		chunk, err = appendVarLen(chunk, uint32(delta))
		if err != nil {
			return nil, err
		}
		prev = ev.Tick

		switch {
		case ev.Status == StatusMeta:
			running = 0
			chunk = append(chunk, StatusMeta, ev.MetaType)
			if chunk, err = appendVarLen(chunk, uint32(len(ev.Data))); err != nil {
				return nil, err
			}
			chunk = append(chunk, ev.Data...)

		case ev.Status == StatusSysEx || ev.Status == StatusSysExContinue:
			running = 0
			chunk = append(chunk, ev.Status)
			if chunk, err = appendVarLen(chunk, uint32(len(ev.Data))); err != nil {
				return nil, err
			}
			chunk = append(chunk, ev.Data...)

		case ev.Status >= 0xF1:
			running = 0
			chunk = append(chunk, ev.Status)
			chunk = append(chunk, ev.Data...)

		default:
			if ev.Status&0x80 == 0 {
				return nil, fmt.Errorf("event %d: invalid status byte 0x%02X", i, ev.Status)
			}
			if ev.Status != running {
				chunk = append(chunk, ev.Status)
				running = ev.Status
			}
			chunk = append(chunk, ev.Data...)
		}
	}
	return chunk, nil
}
