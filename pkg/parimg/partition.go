package parimg

import (
	"fmt"
	"sync"
)

// partition is a half-open row range [Start, End) assigned to a single
// worker for one parallel phase. Partitions of the same phase never overlap,
// which is what makes each phase race-free without locks: workers write
// disjoint destination rows and read only data that is immutable for the
// phase's duration.
type partition struct {
	Start int
	End   int
}

// partitionRows splits [0, totalRows) into workers contiguous disjoint
// ranges. Rows divide evenly except for the last partition, which absorbs the
// remainder; the resulting imbalance affects timing only, never output.
func partitionRows(totalRows, workers int) ([]partition, error) {
	if workers < 1 {
		return nil, fmt.Errorf("worker count must be >= 1, got %d", workers)
	}
	if workers > totalRows {
		return nil, fmt.Errorf("worker count %d exceeds row count %d", workers, totalRows)
	}
	rowsPerWorker := totalRows / workers
	parts := make([]partition, workers)
	for i := 0; i < workers; i++ {
		parts[i].Start = i * rowsPerWorker
		parts[i].End = parts[i].Start + rowsPerWorker
	}
	parts[workers-1].End = totalRows
	return parts, nil
}

// runParallel executes fn once per partition, each on its own goroutine, and
// blocks until every worker has finished. Worker errors are collected into
// per-partition slots and the first non-nil one is returned after the join,
// so a failure never leaves stragglers writing into shared buffers.
func runParallel(parts []partition, fn func(p partition) error) error {
	var wg sync.WaitGroup
	errs := make([]error, len(parts))
	for i, p := range parts {
		wg.Add(1)
		go func(i int, p partition) {
			defer wg.Done()
			errs[i] = fn(p)
		}(i, p)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
