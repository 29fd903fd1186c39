package smf

import "fmt"

// MaxVarLen is the largest value a MIDI variable-length quantity can hold
// (four bytes of seven payload bits each).
const MaxVarLen = 0x0FFFFFFF

// readVarLen decodes a variable-length quantity from the start of buf and
// returns the value and the number of bytes consumed. Each byte
// contributes seven bits, most significant group first; a set high bit
// marks continuation.
func readVarLen(buf []byte) (uint32, int, error) {
	var v uint32
	for i := 0; i < 4; i++ {
		if i >= len(buf) {
			return 0, 0, fmt.Errorf("%w: variable-length quantity runs past end of data", ErrTruncatedStream)
		}
		b := buf[i]
		v = v<<7 | uint32(b&0x7F)
		if b&0x80 == 0 {
			return v, i + 1, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: variable-length quantity longer than 4 bytes", ErrTruncatedStream)
}

// appendVarLen appends the minimal variable-length encoding of v to dst.
func appendVarLen(dst []byte, v uint32) ([]byte, error) {
	if v > MaxVarLen {
		return dst, fmt.Errorf("value 0x%08X too large for a variable-length quantity", v)
	}
	if v == 0 {
		return append(dst, 0), nil
	}
	var groups [4]byte
	n := 0
	for v != 0 {
		groups[n] = byte(v & 0x7F)
		v >>= 7
		n++
	}
	for i := n - 1; i >= 0; i-- {
		b := groups[i]
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst, nil
}
