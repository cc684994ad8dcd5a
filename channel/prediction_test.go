package channel

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"
)

func TestPredictionRoundTrip8(t *testing.T) {
	original := []byte{100, 50, 25, 200, 150, 75, 255, 0, 128}
	buf := make([]byte, len(original))
	copy(buf, original)

	if err := EncodePrediction(buf, 1); err != nil {
		t.Fatalf("EncodePrediction: %v", err)
	}
	if bytes.Equal(buf, original) {
		t.Error("EncodePrediction left the buffer unchanged")
	}
	if err := DecodePrediction(buf, 1); err != nil {
		t.Fatalf("DecodePrediction: %v", err)
	}
	if !bytes.Equal(buf, original) {
		t.Errorf("round trip = %v, want %v", buf, original)
	}
}

func TestPredictionRoundTrip16(t *testing.T) {
	original := make([]byte, 64)
	rand.New(rand.NewSource(2)).Read(original)

	buf := make([]byte, len(original))
	copy(buf, original)

	// decode then encode is also an identity
	if err := DecodePrediction(buf, 2); err != nil {
		t.Fatalf("DecodePrediction: %v", err)
	}
	if err := EncodePrediction(buf, 2); err != nil {
		t.Fatalf("EncodePrediction: %v", err)
	}
	if !bytes.Equal(buf, original) {
		t.Error("16-bit prediction round trip mismatch")
	}
}

func TestPrediction16NativeOrder(t *testing.T) {
	// The 16-bit transform sums native-endian elements, not bytes.
	buf := make([]byte, 4)
	binary.NativeEndian.PutUint16(buf[0:], 300)
	binary.NativeEndian.PutUint16(buf[2:], 500)

	if err := DecodePrediction(buf, 2); err != nil {
		t.Fatalf("DecodePrediction: %v", err)
	}
	if got := binary.NativeEndian.Uint16(buf[2:]); got != 800 {
		t.Errorf("second element = %d, want 800", got)
	}
}

func TestPredictionBadSampleWidth(t *testing.T) {
	if err := EncodePrediction(make([]byte, 4), 3); err != ErrBadSampleWidth {
		t.Errorf("sample width 3 = %v, want ErrBadSampleWidth", err)
	}
	if err := DecodePrediction(make([]byte, 5), 2); err != ErrBadSampleWidth {
		t.Errorf("odd buffer = %v, want ErrBadSampleWidth", err)
	}
	if err := EncodePredictionRows(make([]byte, 5), 4, 2); err != ErrBadSampleWidth {
		t.Errorf("rows odd buffer = %v, want ErrBadSampleWidth", err)
	}
}

func TestPredictionRows(t *testing.T) {
	const height, width = 6, 53
	original := make([]byte, height*width)
	rand.New(rand.NewSource(8)).Read(original)

	buf := make([]byte, len(original))
	copy(buf, original)

	if err := EncodePredictionRows(buf, width, 1); err != nil {
		t.Fatalf("EncodePredictionRows: %v", err)
	}

	// Row boundaries are independent: the first sample of every row is
	// unchanged by the transform.
	for row := 0; row < height; row++ {
		if buf[row*width] != original[row*width] {
			t.Errorf("row %d first sample changed", row)
		}
	}

	if err := DecodePredictionRows(buf, width, 1); err != nil {
		t.Fatalf("DecodePredictionRows: %v", err)
	}
	if !bytes.Equal(buf, original) {
		t.Error("per-row prediction round trip mismatch")
	}
}

func TestPredictionImprovesCompression(t *testing.T) {
	// A smooth ramp compresses poorly raw and very well after the delta
	// transform turns it into a constant run.
	row := make([]byte, 256)
	for i := range row {
		row[i] = byte(i)
	}

	plain, err := Encode([][]byte{row}, PSD)
	if err != nil {
		t.Fatal(err)
	}

	transformed := make([]byte, len(row))
	copy(transformed, row)
	if err := EncodePrediction(transformed, 1); err != nil {
		t.Fatal(err)
	}
	packed, err := Encode([][]byte{transformed}, PSD)
	if err != nil {
		t.Fatal(err)
	}

	if len(packed) >= len(plain) {
		t.Errorf("prediction did not help: %d >= %d", len(packed), len(plain))
	}
}
