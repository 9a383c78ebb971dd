package parimg

// convolveRows applies the 1-D kernel along rows y in [rowStart, rowEnd) of
// src, writing into the same rows of dst. Out-of-range sample coordinates are
// clamped to the nearest edge column; all four channels, alpha included, are
// convolved identically. src and dst must have equal dimensions.
func convolveRows(src, dst *Image, kernel []float64, radius, rowStart, rowEnd int) {
	w := src.Width
	for y := rowStart; y < rowEnd; y++ {
		row := y * w * channels
		for x := 0; x < w; x++ {
			var acc [channels]float64
			for k, weight := range kernel {
				sx := clampInt(x+k-radius, 0, w-1)
				idx := row + sx*channels
				acc[0] += float64(src.Pix[idx+0]) * weight
				acc[1] += float64(src.Pix[idx+1]) * weight
				acc[2] += float64(src.Pix[idx+2]) * weight
				acc[3] += float64(src.Pix[idx+3]) * weight
			}
			out := row + x*channels
			dst.Pix[out+0] = clampFloatToByte(acc[0])
			dst.Pix[out+1] = clampFloatToByte(acc[1])
			dst.Pix[out+2] = clampFloatToByte(acc[2])
			dst.Pix[out+3] = clampFloatToByte(acc[3])
		}
	}
}

// transpose returns src with rows and columns swapped. Running the row
// convolution on a transposed buffer turns it into a vertical pass with
// sequential memory reads, which is why a single row routine serves both
// blur directions.
func transpose(src *Image) *Image {
	dst := &Image{
		Pix:    make([]byte, len(src.Pix)),
		Width:  src.Height,
		Height: src.Width,
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			si := src.PixOffset(x, y)
			di := dst.PixOffset(y, x)
			copy(dst.Pix[di:di+channels], src.Pix[si:si+channels])
		}
	}
	return dst
}

// GaussianBlur applies a separable Gaussian blur of the given radius to src
// and returns a new image, leaving src untouched. The two 1-D passes each run
// on `workers` goroutines over disjoint row ranges with a full join between
// phases: horizontal pass, transpose, horizontal pass on the transposed
// buffer, transpose back.
//
// The same result is produced for every valid worker count. workers must be
// at least 1 and no greater than either image dimension (the second pass
// partitions by the original width).
func GaussianBlur(src *Image, radius, workers int) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	kernel, err := GenerateGaussianKernel(radius)
	if err != nil {
		return nil, err
	}
	hParts, err := partitionRows(src.Height, workers)
	if err != nil {
		return nil, err
	}
	// Partitions for the transposed pass, validated up front so no goroutine
	// is spawned if the second phase cannot run.
	vParts, err := partitionRows(src.Width, workers)
	if err != nil {
		return nil, err
	}

	horiz := &Image{Pix: make([]byte, len(src.Pix)), Width: src.Width, Height: src.Height}
	if err := runParallel(hParts, func(p partition) error {
		convolveRows(src, horiz, kernel, radius, p.Start, p.End)
		return nil
	}); err != nil {
		return nil, err
	}

	flipped := transpose(horiz)
	blurred := &Image{Pix: make([]byte, len(flipped.Pix)), Width: flipped.Width, Height: flipped.Height}
	if err := runParallel(vParts, func(p partition) error {
		convolveRows(flipped, blurred, kernel, radius, p.Start, p.End)
		return nil
	}); err != nil {
		return nil, err
	}

	return transpose(blurred), nil
}
