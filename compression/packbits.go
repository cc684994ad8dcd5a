// Package compression provides the PackBits run-length codec used for
// Photoshop channel data.
package compression

import (
	"errors"
)

// ErrMalformedRun is returned when a run header would require reading past
// the end of the compressed input or writing past the end of the output
// buffer.
var ErrMalformedRun = errors.New("compression: malformed PackBits run")

// maxRunLength is the longest run a single header byte can describe, for
// both literal and repeat runs.
const maxRunLength = 128

// PackBitsCompress compresses data using the PackBits encoding.
//
// The format uses a signed header byte to distinguish run types:
//   - Header in [0, 127]: the next (header+1) bytes are copied literally
//   - Header in [-127, -1]: the next byte is repeated (1-header) times
//   - Header -128: no-op (skipped on decode, never produced here)
//
// For example:
//
//	[B, C, D, A, A, A, A] -> [2, B, C, D, -3, A]
//	(3 literal bytes B, C, D, then 4 copies of A)
//
// Two adjacent equal bytes always start a repeat run, even though folding a
// 2-byte run into a surrounding literal would sometimes pack tighter. The
// reference encoder behaves this way, and byte-for-byte reproducibility of
// previously written files depends on it.
func PackBitsCompress(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}

	// Worst case: one header per 128 literal bytes, plus a final short run.
	dst := make([]byte, 0, len(src)+(len(src)+maxRunLength-1)/maxRunLength)

	i := 0
	for i < len(src) {
		if i+1 < len(src) && src[i] == src[i+1] {
			// Repeat run of 2..128 copies.
			val := src[i]
			runEnd := i + 2
			for runEnd < len(src) && src[runEnd] == val && runEnd-i < maxRunLength {
				runEnd++
			}
			n := runEnd - i
			dst = append(dst, byte(-(n - 1)), val)
			i = runEnd
			continue
		}

		// Literal run of 1..128 bytes, ending where a repeat run starts.
		litStart := i
		i++
		for i < len(src) && i-litStart < maxRunLength {
			if i+1 < len(src) && src[i] == src[i+1] {
				break
			}
			i++
		}
		dst = append(dst, byte(i-litStart-1))
		dst = append(dst, src[litStart:i]...)
	}

	return dst
}

// PackBitsDecompress decompresses PackBits data in whole-buffer mode: the
// loop runs until the input is exhausted and the output grows as needed.
// This mode is used where no external row-length table frames the data.
func PackBitsDecompress(src []byte) ([]byte, error) {
	if len(src) == 0 {
		return nil, nil
	}

	dst := make([]byte, 0, len(src)*2)

	i := 0
	for i < len(src) {
		header := int(int8(src[i]))
		i++

		switch {
		case header == -128:
			// Legacy no-op marker; consume the header byte only.

		case header < 0:
			// Repeat run: the next byte appears (1-header) times.
			if i >= len(src) {
				return nil, ErrMalformedRun
			}
			runLength := 1 - header
			val := src[i]
			i++
			for j := 0; j < runLength; j++ {
				dst = append(dst, val)
			}

		default:
			// Literal run: copy the next (header+1) bytes verbatim.
			literalLength := header + 1
			if i+literalLength > len(src) {
				return nil, ErrMalformedRun
			}
			dst = append(dst, src[i:i+literalLength]...)
			i += literalLength
		}
	}

	return dst, nil
}

// PackBitsDecompressTo decompresses PackBits data in row-bounded mode: the
// loop is driven by the length of src (a single row's compressed slice, as
// declared by the row-length table) and writes into the pre-allocated dst.
// It returns the number of bytes written, which the caller compares against
// the expected row size.
//
// Both cursors are validated once per run before any copy, so a corrupt or
// hostile length field can never cause an out-of-bounds access.
func PackBitsDecompressTo(src, dst []byte) (int, error) {
	pos := 0

	i := 0
	for i < len(src) {
		header := int(int8(src[i]))
		i++

		switch {
		case header == -128:
			// Legacy no-op marker.

		case header < 0:
			runLength := 1 - header
			if i >= len(src) {
				return pos, ErrMalformedRun
			}
			if pos+runLength > len(dst) {
				return pos, ErrMalformedRun
			}
			val := src[i]
			i++
			for end := pos + runLength; pos < end; pos++ {
				dst[pos] = val
			}

		default:
			literalLength := header + 1
			if i+literalLength > len(src) {
				return pos, ErrMalformedRun
			}
			if pos+literalLength > len(dst) {
				return pos, ErrMalformedRun
			}
			copy(dst[pos:], src[i:i+literalLength])
			pos += literalLength
			i += literalLength
		}
	}

	return pos, nil
}
