package compression

import (
	"bytes"
	"testing"
)

// FuzzPackBitsDecompress tests whole-buffer decompression with arbitrary data.
func FuzzPackBitsDecompress(f *testing.F) {
	// Valid PackBits seeds
	f.Add([]byte{})
	f.Add([]byte{0x00, 0x41})                   // Single literal byte
	f.Add([]byte{0x80})                         // Legacy no-op
	f.Add([]byte{0xFF, 0x41})                   // 2-byte repeat run
	f.Add([]byte{0x81, 0x41})                   // 128-byte repeat run
	f.Add([]byte{0x03, 0x41, 0x42, 0x43, 0x44}) // 4-byte literal

	// Hostile seeds
	f.Add([]byte{0x7F})                           // Literal header without data
	f.Add(bytes.Repeat([]byte{0x7F}, 1000))       // Many literal headers without data
	f.Add(bytes.Repeat([]byte{0x81, 0x00}, 1000)) // Many maximal runs

	f.Fuzz(func(t *testing.T, data []byte) {
		// Must not panic or read out of bounds.
		_, _ = PackBitsDecompress(data)
	})
}

// FuzzPackBitsDecompressTo tests row-bounded decompression with arbitrary
// data and output sizes, the path exposed to corrupt length tables.
func FuzzPackBitsDecompressTo(f *testing.F) {
	f.Add([]byte{0xFF, 0x41}, 2)
	f.Add([]byte{0x81, 0x41}, 4)
	f.Add([]byte{0x03, 0x41, 0x42, 0x43, 0x44}, 4)
	f.Add(bytes.Repeat([]byte{0x81, 0x00}, 100), 64)

	f.Fuzz(func(t *testing.T, data []byte, size int) {
		if size < 0 || size > 1<<20 {
			return
		}
		dst := make([]byte, size)
		n, err := PackBitsDecompressTo(data, dst)
		if n > size {
			t.Errorf("wrote %d bytes into a %d-byte buffer", n, size)
		}
		if err == nil {
			// A clean row-bounded decode must agree with whole-buffer mode.
			out, werr := PackBitsDecompress(data)
			if werr != nil {
				t.Errorf("row-bounded decode succeeded but whole-buffer failed: %v", werr)
			} else if !bytes.Equal(out, dst[:n]) {
				t.Error("row-bounded and whole-buffer decodes disagree")
			}
		}
	})
}

// FuzzPackBitsRoundtrip tests the compress/decompress round trip.
func FuzzPackBitsRoundtrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{0x00})
	f.Add([]byte{0x41, 0x41, 0x41, 0x41})
	f.Add([]byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05})
	f.Add(bytes.Repeat([]byte{0x42}, 1000))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 100000 {
			return
		}

		compressed := PackBitsCompress(data)

		decompressed, err := PackBitsDecompress(compressed)
		if err != nil {
			t.Errorf("roundtrip failed: compress succeeded but decompress failed: %v", err)
			return
		}
		if !bytes.Equal(data, decompressed) {
			t.Errorf("roundtrip data mismatch")
		}
	})
}
