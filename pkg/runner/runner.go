package runner

import (
	"context"
	"fmt"
	"runtime"
	"sync"
)

// Task processes a single file.
type Task[T any] func(ctx context.Context, path string) (T, error)

// Run applies task to every file concurrently and returns the outcomes in
// the order of files. A failing task does not stop the others.
//
// The runner:
//   - Processes files using a worker pool of at most jobs workers
//   - Aggregates results into a single Result with statistics
//   - Stops handing out files once ctx is cancelled
func Run[T any](ctx context.Context, files []string, jobs int, task Task[T]) (*Result[T], error) {
	result := &Result[T]{
		Files: make([]FileOutcome[T], 0, len(files)),
	}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	// Don't use more workers than files.
	jobs = min(jobs, len(files))

	workCh := make(chan int)
	outCh := make(chan indexedOutcome[T])

	var wg sync.WaitGroup
	for range jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, files, workCh, outCh, task)
		}()
	}

	go func() {
		defer close(workCh)
		for i := range files {
			select {
			case <-ctx.Done():
				return
			case workCh <- i:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outCh)
	}()

	// Workers finish out of order; slot outcomes by input index.
	outcomes := make([]*FileOutcome[T], len(files))
	for o := range outCh {
		outcomes[o.index] = &o.outcome
	}

	for _, o := range outcomes {
		if o != nil {
			result.accumulate(*o)
		}
	}

	if ctx.Err() != nil {
		return result, fmt.Errorf("run cancelled: %w", ctx.Err())
	}

	return result, nil
}

type indexedOutcome[T any] struct {
	index   int
	outcome FileOutcome[T]
}

// worker processes file indexes from workCh and sends outcomes to outCh.
func worker[T any](
	ctx context.Context,
	files []string,
	workCh <-chan int,
	outCh chan<- indexedOutcome[T],
	task Task[T],
) {
	for i := range workCh {
		if ctx.Err() != nil {
			return
		}

		outcome := FileOutcome[T]{Path: files[i]}
		value, err := task(ctx, files[i])
		if err != nil {
			outcome.Error = err
		} else {
			outcome.Value = value
		}

		select {
		case <-ctx.Done():
			return
		case outCh <- indexedOutcome[T]{index: i, outcome: outcome}:
		}
	}
}
