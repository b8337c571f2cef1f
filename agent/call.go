package agent

import (
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
)

// RuntimeError is a failure raised inside the runtime call, with the trace
// captured at the call boundary.
type RuntimeError struct {
	Runtime string
	Err     error
	Trace   string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s runtime: %v", e.Runtime, e.Err)
}

func (e *RuntimeError) Unwrap() error { return e.Err }

// call is the isolated execution context of a single runtime invocation. It is
// created per request, never reused, and torn down with close.
type call struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	result Result
	err    error
}

// startCall runs fn on its own goroutine under a context derived from parent.
func startCall(parent context.Context, name string, fn func(ctx context.Context) (Result, error)) *call {
	ctx, cancel := context.WithCancel(parent)
	c := &call{ctx: ctx, cancel: cancel, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		defer func() {
			if p := recover(); p != nil {
				c.err = &RuntimeError{
					Runtime: name,
					Err:     fmt.Errorf("panic: %v", p),
					Trace:   string(debug.Stack()),
				}
			}
		}()
		c.result, c.err = fn(ctx)
	}()
	return c
}

// wait blocks until the call finishes. Cancelling the parent context cancels
// the call, and wait still waits for fn to return.
func (c *call) wait() (Result, error) {
	<-c.done
	return c.result, c.err
}

// close releases the call context. It yields once so continuations scheduled
// by the finished call get a chance to run; this is best effort.
func (c *call) close() {
	c.cancel()
	runtime.Gosched()
}
