package parimg

import (
	"fmt"
	"math"
)

// GenerateGaussianKernel builds a normalized 1-D Gaussian kernel of length
// 2*radius+1 with sigma = radius/3, so the kernel support covers three
// standard deviations on each side. The weights sum to 1.
//
// Radius 0 is the null blur: sigma would be 0 and the exponent 0/0, so it is
// special-cased to the identity kernel [1.0] instead of relying on
// implementation-defined float behavior.
func GenerateGaussianKernel(radius int) ([]float64, error) {
	if radius < 0 {
		return nil, fmt.Errorf("kernel radius must be >= 0, got %d", radius)
	}
	if radius == 0 {
		return []float64{1.0}, nil
	}
	sigma := float64(radius) / 3.0
	size := 2*radius + 1
	kern := make([]float64, size)
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - radius)
		kern[i] = math.Exp(-(x * x) / (2.0 * sigma * sigma))
		sum += kern[i]
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, nil
}
