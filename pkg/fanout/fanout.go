// Package fanout runs independent provider calls concurrently with
// all-settled semantics: every task runs to completion and reports its own
// outcome, one failure never cancels the siblings.
package fanout

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc"
)

// Result is the settled outcome of one task. Exactly one of Value and Err
// is meaningful.
type Result[T any] struct {
	Value T
	Err   error
}

// Task produces one value for a fan-out slot.
type Task[T any] func(ctx context.Context) (T, error)

// Settle runs every task concurrently and waits for all of them. The result
// slice is positional: Results[i] belongs to tasks[i]. A panicking task
// settles as an error instead of crashing the group.
func Settle[T any](ctx context.Context, tasks []Task[T]) []Result[T] {
	results := make([]Result[T], len(tasks))

	var wg conc.WaitGroup
	for i, task := range tasks {
		wg.Go(func() {
			defer func() {
				if r := recover(); r != nil {
					results[i].Err = fmt.Errorf("task %d panicked: %v", i, r)
				}
			}()
			results[i].Value, results[i].Err = task(ctx)
		})
	}
	wg.Wait()

	return results
}

// Errs returns the non-nil errors from a settled batch, preserving order.
func Errs[T any](results []Result[T]) []error {
	var errs []error
	for _, r := range results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
