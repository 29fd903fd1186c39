package smf

import "errors"

var (
	// ErrMalformedHeader reports a file whose MThd chunk has the wrong
	// magic bytes, length or track count.
	ErrMalformedHeader = errors.New("malformed MIDI header")

	// ErrUnsupportedFormat reports a format type outside {0, 1, 2}.
	ErrUnsupportedFormat = errors.New("unsupported MIDI format")

	// ErrTruncatedStream reports a chunk or event that claims more bytes
	// than remain in the buffer.
	ErrTruncatedStream = errors.New("truncated MIDI stream")
)
