// Package predictor implements the per-sample delta (prediction) transform
// applied to Photoshop channel rows before compression.
//
// The transform converts absolute sample values to differences from the
// previous sample, which tends to produce more compressible data for images
// with local coherence. It operates on 8-bit or 16-bit samples; the 16-bit
// form works on the native-endian in-memory representation of the already
// decoded buffer, independent of the big-endian on-disk order.
package predictor

import (
	"encoding/binary"
)

// Encode applies the delta transform to 8-bit samples in place. The first
// byte remains unchanged, subsequent bytes become differences from their
// predecessor, with unsigned wraparound.
//
// Iteration runs from the end of the buffer toward the front so that each
// subtraction still sees the pre-transform value of its left neighbor.
func Encode(data []byte) {
	n := len(data)
	if n < 2 {
		return
	}

	// Process in chunks of 8 for better pipelining.
	i := n - 1
	for ; i >= 8; i -= 8 {
		data[i] -= data[i-1]
		data[i-1] -= data[i-2]
		data[i-2] -= data[i-3]
		data[i-3] -= data[i-4]
		data[i-4] -= data[i-5]
		data[i-5] -= data[i-6]
		data[i-6] -= data[i-7]
		data[i-7] -= data[i-8]
	}

	for ; i >= 1; i-- {
		data[i] -= data[i-1]
	}
}

// Decode reverses the delta transform for 8-bit samples in place. Each byte
// becomes the cumulative sum of itself and all bytes before it.
func Decode(data []byte) {
	n := len(data)
	if n < 2 {
		return
	}

	// Process in chunks of 8 for better pipelining.
	i := 1
	for ; i+7 < n; i += 8 {
		data[i] += data[i-1]
		data[i+1] += data[i]
		data[i+2] += data[i+1]
		data[i+3] += data[i+2]
		data[i+4] += data[i+3]
		data[i+5] += data[i+4]
		data[i+6] += data[i+5]
		data[i+7] += data[i+6]
	}

	for ; i < n; i++ {
		data[i] += data[i-1]
	}
}

// Encode16 applies the delta transform to 16-bit samples in place, reading
// and writing native-endian uint16 elements. A trailing odd byte is left
// untouched; callers reject non-divisible buffers before this layer.
func Encode16(data []byte) {
	n := len(data) &^ 1
	if n < 4 {
		return
	}

	for i := n - 2; i >= 2; i -= 2 {
		v := binary.NativeEndian.Uint16(data[i:]) - binary.NativeEndian.Uint16(data[i-2:])
		binary.NativeEndian.PutUint16(data[i:], v)
	}
}

// Decode16 reverses the delta transform for 16-bit samples in place.
func Decode16(data []byte) {
	n := len(data) &^ 1
	if n < 4 {
		return
	}

	prev := binary.NativeEndian.Uint16(data)
	for i := 2; i < n; i += 2 {
		prev += binary.NativeEndian.Uint16(data[i:])
		binary.NativeEndian.PutUint16(data[i:], prev)
	}
}

// EncodeRows applies the delta transform independently to each rowLen-byte
// row of a row-major buffer. sampleWidth selects the 8-bit or 16-bit form.
func EncodeRows(data []byte, rowLen, sampleWidth int) {
	forEachRow(data, rowLen, sampleWidth, Encode, Encode16)
}

// DecodeRows reverses the delta transform independently for each row.
func DecodeRows(data []byte, rowLen, sampleWidth int) {
	forEachRow(data, rowLen, sampleWidth, Decode, Decode16)
}

func forEachRow(data []byte, rowLen, sampleWidth int, fn8, fn16 func([]byte)) {
	if rowLen <= 0 {
		return
	}
	fn := fn8
	if sampleWidth == 2 {
		fn = fn16
	}
	for start := 0; start+rowLen <= len(data); start += rowLen {
		fn(data[start : start+rowLen])
	}
}
