package channel

import "fmt"

// Version selects the on-disk format generation. The two generations differ
// only in the integer field widths used for row lengths: PSD stores 16-bit
// fields, PSB (the large-document format) stores 32-bit fields. The RLE
// algorithm itself is identical in both.
type Version uint8

const (
	// PSD is the standard format (2-byte row-length fields).
	PSD Version = 1
	// PSB is the large-document format (4-byte row-length fields).
	PSB Version = 2
)

// Valid reports whether v is a known format version.
func (v Version) Valid() bool {
	return v == PSD || v == PSB
}

// RowLengthSize returns the byte width of one row-length table field.
func (v Version) RowLengthSize() int {
	if v == PSB {
		return 4
	}
	return 2
}

// maxRowLength returns the largest compressed row size a table field of
// this version can record.
func (v Version) maxRowLength() uint64 {
	if v == PSB {
		return 0xFFFFFFFF
	}
	return 0xFFFF
}

func (v Version) String() string {
	switch v {
	case PSD:
		return "PSD"
	case PSB:
		return "PSB"
	default:
		return fmt.Sprintf("Version(%d)", uint8(v))
	}
}
