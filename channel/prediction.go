package channel

import (
	"errors"

	"github.com/psdpack/psdpack/internal/predictor"
)

// ErrBadSampleWidth is returned when a sample width is not 1 or 2 bytes,
// or when a buffer's length is not a multiple of the sample width.
var ErrBadSampleWidth = errors.New("channel: bad sample width for prediction")

// EncodePrediction applies the per-sample delta transform to buf in place:
// each sample becomes the difference from its predecessor, with unsigned
// wraparound. sampleWidth selects 8-bit or 16-bit samples; 16-bit samples
// are taken in the buffer's native in-memory byte order.
//
// The transform never changes the buffer length and is exactly reversed by
// DecodePrediction.
func EncodePrediction(buf []byte, sampleWidth int) error {
	if err := checkSampleWidth(buf, sampleWidth); err != nil {
		return err
	}
	if sampleWidth == 2 {
		predictor.Encode16(buf)
	} else {
		predictor.Encode(buf)
	}
	return nil
}

// DecodePrediction reverses EncodePrediction in place: each sample becomes
// the cumulative sum of itself and all samples before it.
func DecodePrediction(buf []byte, sampleWidth int) error {
	if err := checkSampleWidth(buf, sampleWidth); err != nil {
		return err
	}
	if sampleWidth == 2 {
		predictor.Decode16(buf)
	} else {
		predictor.Decode(buf)
	}
	return nil
}

// EncodePredictionRows applies the delta transform independently to each
// row of a row-major buffer of height rows of width samples, the way the
// transform is applied to a whole decoded channel.
func EncodePredictionRows(buf []byte, width, sampleWidth int) error {
	if err := checkSampleWidth(buf, sampleWidth); err != nil {
		return err
	}
	predictor.EncodeRows(buf, width*sampleWidth, sampleWidth)
	return nil
}

// DecodePredictionRows reverses EncodePredictionRows in place.
func DecodePredictionRows(buf []byte, width, sampleWidth int) error {
	if err := checkSampleWidth(buf, sampleWidth); err != nil {
		return err
	}
	predictor.DecodeRows(buf, width*sampleWidth, sampleWidth)
	return nil
}

func checkSampleWidth(buf []byte, sampleWidth int) error {
	if sampleWidth != 1 && sampleWidth != 2 {
		return ErrBadSampleWidth
	}
	if len(buf)%sampleWidth != 0 {
		return ErrBadSampleWidth
	}
	return nil
}
