// Package parimg implements CPU-parallel spatial image filters over raw
// interleaved RGBA byte buffers: a separable Gaussian blur and an
// edge-preserving Kuwahara filter. Both filters fan work out over a fixed
// number of goroutines partitioned by row and join fully between dependent
// phases, so results are identical for any worker count.
package parimg

import (
	"fmt"
	"image"
)

// channels is the fixed per-pixel component count (R,G,B,A). The whole
// engine assumes interleaved 4-channel buffers; it is an invariant, not a
// parameter.
const channels = 4

// Image is a raw interleaved RGBA pixel buffer, row-major from the top-left.
// len(Pix) is always Width*Height*4.
type Image struct {
	Pix    []byte
	Width  int
	Height int
}

// NewImage allocates a zeroed RGBA buffer of the given dimensions.
func NewImage(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	return &Image{
		Pix:    make([]byte, width*height*channels),
		Width:  width,
		Height: height,
	}, nil
}

// Clone returns a deep copy of img.
func (img *Image) Clone() *Image {
	out := &Image{
		Pix:    make([]byte, len(img.Pix)),
		Width:  img.Width,
		Height: img.Height,
	}
	copy(out.Pix, img.Pix)
	return out
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (img *Image) PixOffset(x, y int) int {
	return (y*img.Width + x) * channels
}

// validate checks the buffer invariant. Decoded and constructed images always
// satisfy it; filters check once per call so a corrupted caller buffer fails
// fast instead of producing garbage or panicking mid-phase.
func (img *Image) validate() error {
	if img == nil {
		return fmt.Errorf("source image is nil")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height*channels {
		return fmt.Errorf("pixel buffer length %d does not match %dx%dx%d",
			len(img.Pix), img.Width, img.Height, channels)
	}
	return nil
}

// FromNRGBA copies a stdlib NRGBA image into a raw buffer. The bounds origin
// is discarded; the result is always anchored at (0,0).
func FromNRGBA(src *image.NRGBA) (*Image, error) {
	if src == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	b := src.Bounds()
	out, err := NewImage(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	for y := 0; y < out.Height; y++ {
		srcIdx := src.PixOffset(b.Min.X, b.Min.Y+y)
		dstIdx := out.PixOffset(0, y)
		copy(out.Pix[dstIdx:dstIdx+out.Width*channels], src.Pix[srcIdx:srcIdx+out.Width*channels])
	}
	return out, nil
}

// ToNRGBA copies img into a stdlib NRGBA image for encoding or compositing.
func (img *Image) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pix)
	return out
}

// FlipVertical returns img mirrored top-to-bottom.
func (img *Image) FlipVertical() *Image {
	out := &Image{
		Pix:    make([]byte, len(img.Pix)),
		Width:  img.Width,
		Height: img.Height,
	}
	rowLen := img.Width * channels
	for y := 0; y < img.Height; y++ {
		src := y * rowLen
		dst := (img.Height - 1 - y) * rowLen
		copy(out.Pix[dst:dst+rowLen], img.Pix[src:src+rowLen])
	}
	return out
}

// FlipHorizontal returns img mirrored left-to-right.
func (img *Image) FlipHorizontal() *Image {
	out := &Image{
		Pix:    make([]byte, len(img.Pix)),
		Width:  img.Width,
		Height: img.Height,
	}
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			src := img.PixOffset(x, y)
			dst := out.PixOffset(img.Width-1-x, y)
			copy(out.Pix[dst:dst+channels], img.Pix[src:src+channels])
		}
	}
	return out
}

// Transpose returns img with rows and columns swapped.
func (img *Image) Transpose() *Image {
	return transpose(img)
}

// clampInt clamps v to [lo,hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampFloatToByte rounds v to the nearest integer and clamps to [0,255],
// guarding the byte cast against overflow wraparound.
func clampFloatToByte(v float64) byte {
	i := int(v + 0.5)
	if i < 0 {
		return 0
	}
	if i > 255 {
		return 255
	}
	return byte(i)
}
