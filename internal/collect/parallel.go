package collect

import (
	"runtime"
	"sync"
)

// fileJob is one VCF file to read; Seq is its sample index.
type fileJob struct {
	Seq  int
	Path string
}

// fileResult holds the grouping read from a single file.
type fileResult struct {
	Seq    int
	Path   string
	Groups Groups
	Err    error
}

// parallelRead reads files using a pool of workers.
// Results are sent to the returned channel in arrival order (not sequence order).
// If workers is 0, runtime.NumCPU() is used.
func (c *Collector) parallelRead(jobs <-chan fileJob, workers int) <-chan fileResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan fileResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range jobs {
				g, err := c.ReadFile(job.Path, job.Seq)
				results <- fileResult{
					Seq:    job.Seq,
					Path:   job.Path,
					Groups: g,
					Err:    err,
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// orderedCollect calls fn for each result in sequence-number order.
// Out-of-order results wait in a pending map until their turn.
// Blocks until the results channel is closed.
func orderedCollect(results <-chan fileResult, fn func(fileResult) error) error {
	pending := make(map[int]fileResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}
