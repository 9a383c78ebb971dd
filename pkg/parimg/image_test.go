package parimg

import (
	"bytes"
	"image"
	"testing"
)

func TestNewImageValidation(t *testing.T) {
	if _, err := NewImage(0, 5); err == nil {
		t.Fatalf("expected error for zero width")
	}
	if _, err := NewImage(5, -1); err == nil {
		t.Fatalf("expected error for negative height")
	}
	img, err := NewImage(3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(img.Pix) != 3*2*channels {
		t.Fatalf("buffer length %d, want %d", len(img.Pix), 3*2*channels)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := makeNoiseImage(4, 4, 11)
	dup := src.Clone()
	if !bytes.Equal(dup.Pix, src.Pix) {
		t.Fatalf("clone differs from source")
	}
	dup.Pix[0] ^= 0xFF
	if src.Pix[0] == dup.Pix[0] {
		t.Fatalf("clone shares backing buffer with source")
	}
}

func TestNRGBARoundTrip(t *testing.T) {
	src := makeNoiseImage(6, 5, 3)
	back, err := FromNRGBA(src.ToNRGBA())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if back.Width != src.Width || back.Height != src.Height || !bytes.Equal(back.Pix, src.Pix) {
		t.Fatalf("NRGBA round-trip changed the image")
	}
}

func TestFromNRGBADiscardsBoundsOrigin(t *testing.T) {
	n := image.NewNRGBA(image.Rect(10, 20, 13, 22))
	n.Pix[0] = 42
	img, err := FromNRGBA(n)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if img.Width != 3 || img.Height != 2 {
		t.Fatalf("dimensions %dx%d, want 3x2", img.Width, img.Height)
	}
	if img.Pix[0] != 42 {
		t.Fatalf("pixel data not anchored at origin")
	}
}

func TestFlips(t *testing.T) {
	src := makeNoiseImage(5, 4, 17)

	v := src.FlipVertical()
	for y := 0; y < src.Height; y++ {
		si := src.PixOffset(0, y)
		vi := v.PixOffset(0, src.Height-1-y)
		if !bytes.Equal(src.Pix[si:si+src.Width*channels], v.Pix[vi:vi+src.Width*channels]) {
			t.Fatalf("vertical flip wrong at row %d", y)
		}
	}
	if !bytes.Equal(v.FlipVertical().Pix, src.Pix) {
		t.Fatalf("double vertical flip does not round-trip")
	}

	h := src.FlipHorizontal()
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			si := src.PixOffset(x, y)
			hi := h.PixOffset(src.Width-1-x, y)
			if !bytes.Equal(src.Pix[si:si+channels], h.Pix[hi:hi+channels]) {
				t.Fatalf("horizontal flip wrong at (%d,%d)", x, y)
			}
		}
	}
	if !bytes.Equal(h.FlipHorizontal().Pix, src.Pix) {
		t.Fatalf("double horizontal flip does not round-trip")
	}
}

func TestClampFloatToByte(t *testing.T) {
	cases := []struct {
		in   float64
		want byte
	}{
		{-10, 0},
		{-0.4, 0},
		{0.4, 0},
		{0.6, 1},
		{127.5, 128},
		{254.4, 254},
		{255.4, 255},
		{300, 255},
	}
	for _, c := range cases {
		if got := clampFloatToByte(c.in); got != c.want {
			t.Fatalf("clampFloatToByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
