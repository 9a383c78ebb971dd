// Package codec loads image files into the raw RGBA buffers the filtering
// engine operates on and saves them back. Every input, whatever its source
// format or channel layout, decodes to a fixed 4-channel interleaved buffer.
package codec

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/pimg/pkg/parimg"
)

// Load reads the file at path and decodes it into an RGBA buffer. The second
// return value is the detected format name ("png", "jpeg", ...). JPEG inputs
// with an EXIF orientation tag are normalized to upright before returning, so
// downstream filters never see rotated pixel data.
func Load(path string) (*parimg.Image, string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read image %s: %w", path, err)
	}
	format := sniffFormat(b)

	img, decodedFormat, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	if format == "" {
		format = decodedFormat
	}

	out, err := parimg.FromNRGBA(toNRGBA(img))
	if err != nil {
		return nil, "", err
	}

	if format == "jpeg" {
		if o, oerr := jpegOrientation(b); oerr == nil && o >= 2 && o <= 8 {
			out = applyOrientation(out, o)
		}
	}
	return out, format, nil
}

// Save encodes img to path. The format is chosen from the file extension:
// .png, .jpg/.jpeg, .gif, .bmp and .tif/.tiff are supported; anything else
// falls back to PNG, matching the lossless default of the filter pipeline.
func Save(path string, img *parimg.Image) error {
	if img == nil {
		return fmt.Errorf("image is nil")
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	nrgba := img.ToNRGBA()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(f, nrgba, &jpeg.Options{Quality: 92})
	case ".gif":
		err = gif.Encode(f, nrgba, nil)
	case ".bmp":
		err = bmp.Encode(f, nrgba)
	case ".tif", ".tiff":
		err = tiff.Encode(f, nrgba, nil)
	default:
		err = png.Encode(f, nrgba)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// sniffFormat detects the container from the file's magic bytes. Returns ""
// when no signature matches; the caller then trusts image.Decode's answer.
func sniffFormat(b []byte) string {
	switch {
	case len(b) >= 3 && bytes.Equal(b[:3], []byte{0xFF, 0xD8, 0xFF}):
		return "jpeg"
	case len(b) >= 8 && bytes.Equal(b[:8], []byte("\x89PNG\r\n\x1a\n")):
		return "png"
	case len(b) >= 6 && (bytes.Equal(b[:6], []byte("GIF87a")) || bytes.Equal(b[:6], []byte("GIF89a"))):
		return "gif"
	case len(b) >= 2 && bytes.Equal(b[:2], []byte("BM")):
		return "bmp"
	case len(b) >= 4 && (bytes.Equal(b[:4], []byte("II*\x00")) || bytes.Equal(b[:4], []byte("MM\x00*"))):
		return "tiff"
	case len(b) >= 12 && bytes.Equal(b[:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP")):
		return "webp"
	}
	return ""
}

// toNRGBA converts any decoded image to non-premultiplied 8-bit RGBA.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, a := src.At(x, y).RGBA()
			out.Pix[idx+0] = uint8(r >> 8)
			out.Pix[idx+1] = uint8(g >> 8)
			out.Pix[idx+2] = uint8(bl >> 8)
			out.Pix[idx+3] = uint8(a >> 8)
			idx += 4
		}
	}
	return out
}

// applyOrientation maps an EXIF orientation value (2-8) to the flip and
// transpose sequence that brings the stored pixels upright.
func applyOrientation(img *parimg.Image, orientation int) *parimg.Image {
	switch orientation {
	case 2:
		return img.FlipHorizontal()
	case 3:
		return img.FlipHorizontal().FlipVertical()
	case 4:
		return img.FlipVertical()
	case 5:
		return img.Transpose()
	case 6: // rotate 90 clockwise
		return img.Transpose().FlipHorizontal()
	case 7: // transverse
		return img.Transpose().FlipHorizontal().FlipVertical()
	case 8: // rotate 270 clockwise
		return img.Transpose().FlipVertical()
	}
	return img
}
