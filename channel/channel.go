// Package channel implements the row-framed PackBits compression used for
// Photoshop channel data.
//
// A compressed channel starts with a row-length table: one unsigned integer
// per scan line, big-endian, 2 bytes wide in PSD files and 4 bytes wide in
// PSB files. The table is followed by the compressed rows, concatenated in
// row order with no padding. Each row is a self-contained PackBits stream,
// so individual rows can be decoded without touching their neighbors.
package channel

import (
	"errors"
	"fmt"
	"math"

	"github.com/psdpack/psdpack/compression"
	"github.com/psdpack/psdpack/internal/xdr"
)

// Framing errors
var (
	// ErrInvalidVersion is returned for a Version other than PSD or PSB.
	ErrInvalidVersion = errors.New("channel: invalid format version")

	// ErrTruncatedTable is returned when the compressed buffer is smaller
	// than the row-length table it must start with.
	ErrTruncatedTable = errors.New("channel: truncated row-length table")

	// ErrTruncatedRow is returned when a row's declared length runs past
	// the end of the compressed buffer.
	ErrTruncatedRow = errors.New("channel: row length exceeds remaining data")

	// ErrTrailingData is returned when the table and row lengths do not
	// add up to the size of the compressed buffer.
	ErrTrailingData = errors.New("channel: trailing data after final row")

	// ErrSizeMismatch is returned when a row decodes to a byte count other
	// than width*bytesPerSample.
	ErrSizeMismatch = errors.New("channel: decoded size mismatch")

	// ErrRowTooLarge is returned when a compressed row does not fit in a
	// row-length table field. Only reachable for PSD's 16-bit fields in
	// practice.
	ErrRowTooLarge = errors.New("channel: compressed row too large for length field")

	// ErrRaggedRows is returned when the rows passed to Encode do not all
	// have the same length.
	ErrRaggedRows = errors.New("channel: rows have unequal lengths")
)

// Decode decompresses a full channel and returns a newly allocated buffer
// of height*width*bytesPerSample bytes. The table and the dimensions are
// validated before the output buffer is allocated, so corrupt sizes fail
// with an error instead of a pathological allocation.
func Decode(compressed []byte, height, width, bytesPerSample int, v Version) ([]byte, error) {
	rows, err := parseRows(compressed, height, v)
	if err != nil {
		return nil, err
	}
	rowSize, total, err := channelSize(height, width, bytesPerSample)
	if err != nil {
		return nil, err
	}

	dst := make([]byte, total)
	if err := decodeRows(rows, dst, rowSize); err != nil {
		return nil, err
	}
	return dst, nil
}

// DecodeTo decompresses a full channel into dst, which the caller sizes to
// exactly height*width*bytesPerSample bytes. The codec never resizes dst; a
// length mismatch is an error, not a silent truncation.
func DecodeTo(dst, compressed []byte, height, width, bytesPerSample int, v Version) error {
	rows, err := parseRows(compressed, height, v)
	if err != nil {
		return err
	}
	rowSize, total, err := channelSize(height, width, bytesPerSample)
	if err != nil {
		return err
	}
	if len(dst) != total {
		return ErrSizeMismatch
	}

	return decodeRows(rows, dst, rowSize)
}

// decodeRows decompresses each framed row into its slice of dst.
func decodeRows(rows [][]byte, dst []byte, rowSize int) error {
	for i, row := range rows {
		if err := decodeRow(row, dst[i*rowSize:(i+1)*rowSize], i); err != nil {
			return err
		}
	}
	return nil
}

// channelSize computes width*bytesPerSample and the full channel byte
// count, rejecting negative or overflowing dimensions. Like the row-length
// table, dimensions originate in a container header and cannot be trusted
// as memory sizes until checked.
func channelSize(height, width, bytesPerSample int) (rowSize, total int, err error) {
	if height < 0 || width < 0 || bytesPerSample <= 0 {
		return 0, 0, ErrSizeMismatch
	}
	if width > 0 && bytesPerSample > math.MaxInt/width {
		return 0, 0, ErrSizeMismatch
	}
	rowSize = width * bytesPerSample
	if rowSize > 0 && height > math.MaxInt/rowSize {
		return 0, 0, ErrSizeMismatch
	}
	return rowSize, height * rowSize, nil
}

// decodeRow decompresses one framed row into an exactly rowSize-long slice.
func decodeRow(row, dst []byte, index int) error {
	n, err := compression.PackBitsDecompressTo(row, dst)
	if err != nil {
		return fmt.Errorf("channel: row %d: %w", index, err)
	}
	if n != len(dst) {
		return fmt.Errorf("channel: row %d: %w", index, ErrSizeMismatch)
	}
	return nil
}

// RowLengths reads the row-length table at the start of a compressed
// channel buffer, one entry per scan line, byte-swapped from the wire's
// big-endian order.
//
// height typically comes from a container header, so it is validated
// against the buffer before anything is allocated: a corrupt value must
// produce ErrTruncatedTable, not a huge allocation.
func RowLengths(compressed []byte, height int, v Version) ([]int, error) {
	if !v.Valid() {
		return nil, ErrInvalidVersion
	}
	if height < 0 || height > len(compressed)/v.RowLengthSize() {
		return nil, ErrTruncatedTable
	}

	r := xdr.NewReader(compressed)
	lengths := make([]int, height)
	for i := range lengths {
		if v == PSB {
			v32, err := r.ReadUint32()
			if err != nil {
				return nil, ErrTruncatedTable
			}
			lengths[i] = int(v32)
		} else {
			v16, err := r.ReadUint16()
			if err != nil {
				return nil, ErrTruncatedTable
			}
			lengths[i] = int(v16)
		}
	}
	return lengths, nil
}

// parseRows reads the row-length table and slices the compressed buffer
// into one self-contained sub-slice per row. It validates that the table
// plus the declared row lengths account for the whole buffer.
func parseRows(compressed []byte, height int, v Version) ([][]byte, error) {
	lengths, err := RowLengths(compressed, height, v)
	if err != nil {
		return nil, err
	}

	r := xdr.NewReader(compressed)
	if err := r.Skip(height * v.RowLengthSize()); err != nil {
		return nil, ErrTruncatedTable
	}

	rows := make([][]byte, height)
	for i, n := range lengths {
		row, err := r.Slice(n)
		if err != nil {
			return nil, fmt.Errorf("channel: row %d: %w", i, ErrTruncatedRow)
		}
		rows[i] = row
	}

	if r.Len() != 0 {
		return nil, ErrTrailingData
	}
	return rows, nil
}

// Encode compresses rows into a framed channel buffer: the row-length
// table followed by each row's PackBits stream. All rows must have the
// same length.
func Encode(rows [][]byte, v Version) ([]byte, error) {
	if !v.Valid() {
		return nil, ErrInvalidVersion
	}

	packed := make([][]byte, len(rows))
	total := len(rows) * v.RowLengthSize()
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, ErrRaggedRows
		}
		p := compression.PackBitsCompress(row)
		if uint64(len(p)) > v.maxRowLength() {
			return nil, fmt.Errorf("channel: row %d: %w", i, ErrRowTooLarge)
		}
		packed[i] = p
		total += len(p)
	}

	return assemble(packed, total, v)
}

// EncodeImage compresses a row-major channel buffer of
// height*width*bytesPerSample bytes.
func EncodeImage(data []byte, height, width, bytesPerSample int, v Version) ([]byte, error) {
	rowSize, total, err := channelSize(height, width, bytesPerSample)
	if err != nil {
		return nil, err
	}
	if len(data) != total {
		return nil, ErrSizeMismatch
	}

	rows := make([][]byte, height)
	for i := range rows {
		rows[i] = data[i*rowSize : (i+1)*rowSize]
	}
	return Encode(rows, v)
}

// EncodeConstant compresses a channel whose every sample byte is the same
// value, without materializing the image. One row is compressed once and
// replicated height times, matching what Encode would produce for the same
// input.
func EncodeConstant(value byte, height, rowBytes int, v Version) ([]byte, error) {
	if !v.Valid() {
		return nil, ErrInvalidVersion
	}
	if height < 0 || rowBytes < 0 {
		return nil, ErrSizeMismatch
	}

	row := make([]byte, rowBytes)
	for i := range row {
		row[i] = value
	}
	p := compression.PackBitsCompress(row)
	if uint64(len(p)) > v.maxRowLength() {
		return nil, ErrRowTooLarge
	}
	perRow := v.RowLengthSize() + len(p)
	if height > 0 && perRow > math.MaxInt/height {
		return nil, ErrSizeMismatch
	}

	packed := make([][]byte, height)
	for i := range packed {
		packed[i] = p
	}
	return assemble(packed, height*perRow, v)
}

// assemble writes the row-length table followed by the packed rows.
func assemble(packed [][]byte, total int, v Version) ([]byte, error) {
	out := make([]byte, total)
	w := xdr.NewWriter(out)

	for _, p := range packed {
		var err error
		if v == PSB {
			err = w.WriteUint32(uint32(len(p)))
		} else {
			err = w.WriteUint16(uint16(len(p)))
		}
		if err != nil {
			return nil, err
		}
	}
	for _, p := range packed {
		if err := w.WriteBytes(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}
