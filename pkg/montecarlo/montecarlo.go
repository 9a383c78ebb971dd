// Package montecarlo estimates pi by sampling random points in the unit
// square across a fixed set of workers. Each worker owns a deterministic
// linear congruential generator seeded from its index, so a given
// (samples, workers) pair always produces the same estimate.
package montecarlo

import (
	"fmt"
	"sync"
)

// Result holds one completed estimation run.
type Result struct {
	Samples  int
	Inside   int
	Estimate float64
}

// lcg is the shared linear congruential generator. The constants are the
// Numerical Recipes pair; the low bit patterns are poor but irrelevant for
// area sampling, and determinism matters more here than statistical polish.
type lcg struct {
	seed uint32
}

func (r *lcg) next() float64 {
	r.seed = r.seed*1664525 + 1013904223
	return float64(r.seed&0x7FFFFFFF) / float64(0x7FFFFFFF)
}

// EstimatePi distributes totalSamples across workers goroutines and counts
// points falling inside the unit quarter circle. Samples divide evenly except
// that the last worker absorbs the remainder. Worker i is seeded with
// 12345 + 67890*i.
func EstimatePi(totalSamples, workers int) (Result, error) {
	if totalSamples < 1 {
		return Result{}, fmt.Errorf("sample count must be >= 1, got %d", totalSamples)
	}
	if workers < 1 {
		return Result{}, fmt.Errorf("worker count must be >= 1, got %d", workers)
	}
	if workers > totalSamples {
		return Result{}, fmt.Errorf("worker count %d exceeds sample count %d", workers, totalSamples)
	}

	perWorker := totalSamples / workers
	remainder := totalSamples % workers
	inside := make([]int, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		samples := perWorker
		if i == workers-1 {
			samples += remainder
		}
		wg.Add(1)
		go func(i, samples int) {
			defer wg.Done()
			rng := lcg{seed: uint32(12345 + 67890*i)}
			count := 0
			for s := 0; s < samples; s++ {
				x := rng.next()
				y := rng.next()
				if x*x+y*y <= 1.0 {
					count++
				}
			}
			inside[i] = count
		}(i, samples)
	}
	wg.Wait()

	total := 0
	for _, n := range inside {
		total += n
	}
	return Result{
		Samples:  totalSamples,
		Inside:   total,
		Estimate: 4.0 * float64(total) / float64(totalSamples),
	}, nil
}
