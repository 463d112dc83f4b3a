package analyzer

import (
	"context"
	"sync"

	"github.com/conneroisu/webpulse/internal/walker"
)

// scanJob is one file handed to the worker pool, together with its
// position in walk order and the channel receiving its result.
type scanJob struct {
	index  int
	entry  walker.Entry
	result chan<- scanResult
}

// scanResult pairs a file result with its walk-order position.
type scanResult struct {
	index int
	file  fileResult
}

// workerPool fans scan jobs out to a fixed number of workers. Results are
// written back by index so the caller can fold them in walk order.
type workerPool struct {
	// jobQueue buffers jobs for worker distribution
	jobQueue chan scanJob
	// workerCount is the number of concurrent workers
	workerCount int
	// scan turns one entry into a file result
	scan func(walker.Entry) fileResult
	wg   sync.WaitGroup
}

// scanWorker processes jobs from the shared queue until it is closed.
type scanWorker struct {
	id       int
	jobQueue <-chan scanJob
	scan     func(walker.Entry) fileResult
}

func newWorkerPool(workerCount int, scan func(walker.Entry) fileResult) *workerPool {
	if workerCount < 1 {
		workerCount = 1
	}
	return &workerPool{
		jobQueue:    make(chan scanJob, workerCount*2),
		workerCount: workerCount,
		scan:        scan,
	}
}

func (w *scanWorker) start(wg *sync.WaitGroup) {
	defer wg.Done()
	for job := range w.jobQueue {
		job.result <- scanResult{index: job.index, file: w.scan(job.entry)}
	}
}

// process scans every entry and returns the results in entry order. It
// stops submitting work once ctx is cancelled and returns ctx.Err().
func (p *workerPool) process(ctx context.Context, entries []walker.Entry) ([]fileResult, error) {
	results := make([]fileResult, len(entries))
	if len(entries) == 0 {
		return results, ctx.Err()
	}

	// Small batches are scanned synchronously
	if len(entries) <= 5 || p.workerCount == 1 {
		for i, entry := range entries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			results[i] = p.scan(entry)
		}
		return results, nil
	}

	resultChan := make(chan scanResult, len(entries))
	for i := 0; i < p.workerCount; i++ {
		worker := &scanWorker{id: i, jobQueue: p.jobQueue, scan: p.scan}
		p.wg.Add(1)
		go worker.start(&p.wg)
	}

	var cancelled error
submit:
	for i, entry := range entries {
		select {
		case p.jobQueue <- scanJob{index: i, entry: entry, result: resultChan}:
		case <-ctx.Done():
			cancelled = ctx.Err()
			break submit
		}
	}
	close(p.jobQueue)
	p.wg.Wait()
	close(resultChan)

	if cancelled != nil {
		return nil, cancelled
	}
	for result := range resultChan {
		results[result.index] = result.file
	}
	return results, nil
}
