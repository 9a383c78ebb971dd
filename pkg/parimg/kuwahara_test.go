package parimg

import (
	"bytes"
	"testing"
)

func TestKuwaharaUniformImageUnchanged(t *testing.T) {
	// All quadrant variances are zero on a constant image, so the NW
	// tie-break keeps the shared mean and the output is bit-identical.
	src := makeSolidImage(12, 10, 100, 150, 200, 255)
	out, err := KuwaharaFilter(src, 3, 2)
	if err != nil {
		t.Fatalf("kuwahara failed: %v", err)
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("constant image changed under kuwahara")
	}
}

func TestKuwaharaRadiusZeroIsIdentity(t *testing.T) {
	src := makeNoiseImage(9, 7, 5)
	out, err := KuwaharaFilter(src, 0, 1)
	if err != nil {
		t.Fatalf("kuwahara failed: %v", err)
	}
	if !bytes.Equal(out.Pix, src.Pix) {
		t.Fatalf("radius 0 kuwahara is not the identity")
	}
}

func TestKuwaharaAlphaPassthrough(t *testing.T) {
	src := makeNoiseImage(16, 16, 77)
	out, err := KuwaharaFilter(src, 4, 3)
	if err != nil {
		t.Fatalf("kuwahara failed: %v", err)
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			si := src.PixOffset(x, y)
			oi := out.PixOffset(x, y)
			if out.Pix[oi+3] != src.Pix[si+3] {
				t.Fatalf("alpha at (%d,%d) changed: %d -> %d", x, y, src.Pix[si+3], out.Pix[oi+3])
			}
		}
	}
}

func TestKuwaharaDeterministicAcrossWorkerCounts(t *testing.T) {
	src := makeNoiseImage(20, 11, 1234) // 11 rows do not divide evenly by 3
	ref, err := KuwaharaFilter(src, 3, 1)
	if err != nil {
		t.Fatalf("kuwahara failed: %v", err)
	}
	for _, workers := range []int{2, 3, 5, 11} {
		out, err := KuwaharaFilter(src, 3, workers)
		if err != nil {
			t.Fatalf("kuwahara with %d workers failed: %v", workers, err)
		}
		if !bytes.Equal(out.Pix, ref.Pix) {
			t.Fatalf("kuwahara output differs between 1 and %d workers", workers)
		}
	}
}

func TestKuwaharaPreservesHardEdge(t *testing.T) {
	// Left half black, right half white. Pixels next to the boundary have at
	// least one quadrant entirely inside their own half with zero variance,
	// so the edge must stay sharp instead of smearing like a blur would.
	const w, h = 16, 8
	src := makeSolidImage(w, h, 0, 0, 0, 255)
	for y := 0; y < h; y++ {
		for x := w / 2; x < w; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0] = 255
			src.Pix[i+1] = 255
			src.Pix[i+2] = 255
		}
	}
	out, err := KuwaharaFilter(src, 2, 2)
	if err != nil {
		t.Fatalf("kuwahara failed: %v", err)
	}
	for y := 0; y < h; y++ {
		li := out.PixOffset(w/2-1, y)
		if out.Pix[li+0] != 0 {
			t.Fatalf("left of edge at row %d bled to %d, want 0", y, out.Pix[li+0])
		}
		ri := out.PixOffset(w/2, y)
		if out.Pix[ri+0] != 255 {
			t.Fatalf("right of edge at row %d bled to %d, want 255", y, out.Pix[ri+0])
		}
	}
}

func TestKuwaharaParameterValidation(t *testing.T) {
	src := makeSolidImage(8, 8, 1, 2, 3, 255)
	if _, err := KuwaharaFilter(src, -1, 1); err == nil {
		t.Fatalf("expected error for negative radius")
	}
	if _, err := KuwaharaFilter(src, 2, 0); err == nil {
		t.Fatalf("expected error for zero workers")
	}
	if _, err := KuwaharaFilter(src, 2, 9); err == nil {
		t.Fatalf("expected error for more workers than rows")
	}
	var nilImg *Image
	if _, err := KuwaharaFilter(nilImg, 2, 1); err == nil {
		t.Fatalf("expected error for nil source")
	}
}
