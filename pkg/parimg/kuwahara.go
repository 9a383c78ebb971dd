package parimg

import (
	"fmt"
	"math"
)

// kuwaharaPixel writes the filtered value of (x, y) into dst. The four
// quadrant windows anchored at the pixel are evaluated in NW, NE, SW, SE
// order; a quadrant wins only on strictly lower aggregate RGB variance, so on
// ties (a uniform image, for instance) the NW quadrant's mean is kept. Alpha
// is copied through from the source, never filtered.
func kuwaharaPixel(src, dst *Image, table *summedAreaTable, x, y, radius int) {
	quadrants := [4][4]int{
		{x - radius, y - radius, x, y},
		{x, y - radius, x + radius, y},
		{x - radius, y, x, y + radius},
		{x, y, x + radius, y + radius},
	}

	minVariance := math.MaxFloat64
	var bestMean [satChannels]float64
	for _, q := range quadrants {
		mean, variance := table.regionStats(q[0], q[1], q[2], q[3])
		total := variance[0] + variance[1] + variance[2]
		if total < minVariance {
			minVariance = total
			bestMean = mean
		}
	}

	idx := dst.PixOffset(x, y)
	dst.Pix[idx+0] = clampFloatToByte(bestMean[0])
	dst.Pix[idx+1] = clampFloatToByte(bestMean[1])
	dst.Pix[idx+2] = clampFloatToByte(bestMean[2])
	dst.Pix[idx+3] = src.Pix[src.PixOffset(x, y)+3]
}

// KuwaharaFilter applies an edge-preserving Kuwahara filter of the given
// radius to src and returns a new image. The summed-area tables are built in
// a single sequential pass, then per-pixel quadrant evaluation runs on
// `workers` goroutines over disjoint row ranges; the tables and source are
// read-only during that phase. Output is identical for every valid worker
// count. workers must be in [1, height].
func KuwaharaFilter(src *Image, radius, workers int) (*Image, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if radius < 0 {
		return nil, fmt.Errorf("filter radius must be >= 0, got %d", radius)
	}
	parts, err := partitionRows(src.Height, workers)
	if err != nil {
		return nil, err
	}

	table := buildSummedAreaTable(src)
	dst := &Image{Pix: make([]byte, len(src.Pix)), Width: src.Width, Height: src.Height}

	if err := runParallel(parts, func(p partition) error {
		for y := p.Start; y < p.End; y++ {
			for x := 0; x < src.Width; x++ {
				kuwaharaPixel(src, dst, table, x, y, radius)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return dst, nil
}
