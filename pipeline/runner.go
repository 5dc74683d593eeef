// Copyright 2026 Civicloom
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// DefaultWorkers is the bounded concurrency for external service calls.
// The limit exists to respect upstream rate limits, not local CPU.
const DefaultWorkers = 7

// Runner executes index-addressed task batches on a bounded worker pool.
type Runner struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// NewRunner creates a runner with the given worker count.
func NewRunner(workers int) (*Runner, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	return &Runner{
		pool:   pool,
		logger: slog.Default().With("component", "runner"),
	}, nil
}

// Release releases the worker pool. The runner must not be used after.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}

// RunIndexed executes fn for every index in [0, n) on the runner's pool and
// collects results by index, so output order matches input order regardless
// of completion order. A failed or panicked task leaves its slot unset and
// false in the ok slice; one bad task never takes down the batch.
func RunIndexed[T any](r *Runner, n int, fn func(i int) (T, error)) ([]T, []bool) {
	results := make([]T, n)
	ok := make([]bool, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		task := func() {
			defer wg.Done()
			defer func() {
				if rec := recover(); rec != nil {
					r.logger.Error("task panicked", "index", i, "panic", rec)
				}
			}()
			v, err := fn(i)
			if err != nil {
				r.logger.Error("task failed", "index", i, "err", err)
				return
			}
			results[i] = v
			ok[i] = true
		}
		if err := r.pool.Submit(task); err != nil {
			r.logger.Error("task submission failed", "index", i, "err", err)
			wg.Done()
		}
	}
	wg.Wait()

	return results, ok
}
