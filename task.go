package cmdflow

import (
	"context"

	"github.com/napalu/cmdflow/errs"
)

// Task is the pending result of an asynchronous handler. A panic raised by the task's
// function is re-raised by Await on the awaiting goroutine.
type Task[T any] struct {
	done      chan struct{}
	value     T
	err       error
	panicked  bool
	recovered any
}

// Go runs fn on a new goroutine and returns a Task completing with its outcome
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer close(t.done)
		defer func() {
			if r := recover(); r != nil {
				t.panicked = true
				t.recovered = r
			}
		}()
		t.value, t.err = fn()
	}()
	return t
}

// Completed returns a Task that has already completed with value and err
func Completed[T any](value T, err error) *Task[T] {
	t := &Task[T]{done: make(chan struct{}), value: value, err: err}
	close(t.done)
	return t
}

// Done is closed when the task completes
func (t *Task[T]) Done() <-chan struct{} {
	return t.done
}

// Await waits for the task or for ctx to be done. A nil Task completes immediately with
// the zero value.
func (t *Task[T]) Await(ctx context.Context) (T, error) {
	var zero T
	if t == nil {
		return zero, nil
	}

	select {
	case <-t.done:
	case <-ctx.Done():
		return zero, errs.Canceled(ctx.Err())
	}

	if t.panicked {
		panic(t.recovered)
	}
	return t.value, t.err
}
