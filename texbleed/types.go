// Package texbleed defines the image descriptor, options and sentinel
// errors for the seam-bleed engine.
package texbleed

import (
	"errors"
)

// DefaultThreshold is the alpha level separating "opaque" seeds from
// transparent pixels: a pixel seeds the distance field when its alpha
// byte is strictly greater than the threshold.
const DefaultThreshold uint8 = 128

// Sentinel errors for image descriptor validation.
var (
	// ErrNilPixels indicates a nil pixel buffer.
	ErrNilPixels = errors.New("texbleed: pixel buffer must be non-nil")

	// ErrBadDimensions indicates a non-positive width or height.
	ErrBadDimensions = errors.New("texbleed: width and height must be positive")

	// ErrBadStride indicates a pixel stride below one byte or a row stride
	// smaller than one row of pixels.
	ErrBadStride = errors.New("texbleed: invalid pixel or row stride")

	// ErrAlphaIndex indicates an alpha byte offset outside the pixel.
	ErrAlphaIndex = errors.New("texbleed: alpha index outside pixel stride")

	// ErrShortBuffer indicates a pixel buffer too small for the described
	// image.
	ErrShortBuffer = errors.New("texbleed: pixel buffer shorter than image")
)

// Image describes a caller-owned pixel buffer without assuming a layout.
//
// Fields:
//
//	Pix        - the raw bytes, modified in place by Bleed.
//	W, H       - image dimensions in pixels.
//	AlphaIndex - byte offset of the alpha channel within one pixel.
//	PixStride  - size of one pixel in bytes.
//	RowStride  - size of one row in bytes (>= W*PixStride; rows may be padded).
type Image struct {
	Pix        []byte
	W, H       int
	AlphaIndex int
	PixStride  int
	RowStride  int
}

// NewRGBA returns an Image descriptor for a tightly packed 8-bit RGBA
// buffer of w×h pixels, the common case for baked textures.
// Complexity: O(1); the buffer is referenced, not copied.
func NewRGBA(pix []byte, w, h int) *Image {
	return &Image{
		Pix:        pix,
		W:          w,
		H:          h,
		AlphaIndex: 3,
		PixStride:  4,
		RowStride:  w * 4,
	}
}

// pixel returns the byte offset of pixel (x,y) in Pix.
func (img *Image) pixel(x, y int) int {
	return y*img.RowStride + x*img.PixStride
}

// validate checks the descriptor against the sentinel errors above.
// Complexity: O(1).
func (img *Image) validate() error {
	if img == nil || img.Pix == nil {
		return ErrNilPixels
	}
	if img.W <= 0 || img.H <= 0 {
		return ErrBadDimensions
	}
	if img.PixStride < 1 || img.RowStride < img.W*img.PixStride {
		return ErrBadStride
	}
	if img.AlphaIndex < 0 || img.AlphaIndex >= img.PixStride {
		return ErrAlphaIndex
	}
	if len(img.Pix) < (img.H-1)*img.RowStride+img.W*img.PixStride {
		return ErrShortBuffer
	}

	return nil
}

// Options configures one Bleed call.
//
// Fields:
//
//	Threshold - pixels with alpha strictly above this value seed the
//	            distance field. Copy-back still targets only pixels whose
//	            alpha is exactly 0, regardless of the threshold.
type Options struct {
	Threshold uint8
}

// DefaultOptions returns the stock configuration:
//
//	Threshold: DefaultThreshold (128)
func DefaultOptions() Options {
	return Options{
		Threshold: DefaultThreshold,
	}
}
