package parimg

// satChannels is the per-cell scalar count of the summed-area tables: RGB
// only, alpha is never part of the Kuwahara statistics.
const satChannels = 3

// summedAreaTable holds channel-wise prefix sums and prefix sums of squares
// over the RGB channels of one image. Tables are (width+1) x (height+1); row
// 0 and column 0 stay zero so the inclusion-exclusion recurrence needs no
// boundary branches. A table is built once per filter call and read-only
// afterwards.
type summedAreaTable struct {
	sum    []float64
	sumSq  []float64
	width  int
	height int
}

// buildSummedAreaTable computes both tables in one sequential scan. Each cell
// depends on the cell above and to the left, so the scan cannot be split
// across rows the way the filters are.
func buildSummedAreaTable(src *Image) *summedAreaTable {
	w, h := src.Width, src.Height
	iw := w + 1
	t := &summedAreaTable{
		sum:    make([]float64, iw*(h+1)*satChannels),
		sumSq:  make([]float64, iw*(h+1)*satChannels),
		width:  w,
		height: h,
	}
	for y := 1; y <= h; y++ {
		for x := 1; x <= w; x++ {
			srcIdx := ((y-1)*w + (x - 1)) * channels
			idx := (y*iw + x) * satChannels
			up := ((y-1)*iw + x) * satChannels
			left := (y*iw + (x - 1)) * satChannels
			diag := ((y-1)*iw + (x - 1)) * satChannels
			for ch := 0; ch < satChannels; ch++ {
				val := float64(src.Pix[srcIdx+ch])
				t.sum[idx+ch] = val + t.sum[up+ch] + t.sum[left+ch] - t.sum[diag+ch]
				t.sumSq[idx+ch] = val*val + t.sumSq[up+ch] + t.sumSq[left+ch] - t.sumSq[diag+ch]
			}
		}
	}
	return t
}

// regionStats returns the per-channel mean and variance of the rectangle
// (x1,y1)-(x2,y2), inclusive. Coordinates are clamped to the image before
// lookup, so rectangles hanging over an edge shrink to the valid part.
// Variance is floored at 0: sumSq accumulates rounding error over large
// images and the difference can come out slightly negative.
func (t *summedAreaTable) regionStats(x1, y1, x2, y2 int) (mean, variance [satChannels]float64) {
	iw := t.width + 1

	x1 = clampInt(x1, 0, t.width-1)
	y1 = clampInt(y1, 0, t.height-1)
	x2 = clampInt(x2, 0, t.width-1)
	y2 = clampInt(y2, 0, t.height-1)

	// shift into the 1-indexed padded tables
	x1++
	y1++
	x2++
	y2++

	area := float64((x2 - x1 + 1) * (y2 - y1 + 1))
	if area <= 0 {
		return mean, variance
	}
	br := (y2*iw + x2) * satChannels
	bl := (y2*iw + (x1 - 1)) * satChannels
	tr := ((y1-1)*iw + x2) * satChannels
	tl := ((y1-1)*iw + (x1 - 1)) * satChannels
	for ch := 0; ch < satChannels; ch++ {
		s := t.sum[br+ch] - t.sum[bl+ch] - t.sum[tr+ch] + t.sum[tl+ch]
		sq := t.sumSq[br+ch] - t.sumSq[bl+ch] - t.sumSq[tr+ch] + t.sumSq[tl+ch]
		m := s / area
		v := sq/area - m*m
		if v < 0 {
			v = 0
		}
		mean[ch] = m
		variance[ch] = v
	}
	return mean, variance
}
