// Package syncutils provides small join strategies for groups of
// goroutines.
package syncutils

import (
	"sync"

	"go.uber.org/atomic"
)

// Any runs functions concurrently and keeps the first error to
// arrive.  The zero value is ready to use.
type Any struct {
	wg sync.WaitGroup
	er atomic.Error
}

// Wait blocks until every function started with Go has returned, then
// reports the first error observed, if any.
func (a *Any) Wait() error {
	a.wg.Wait()
	return a.er.Load()
}

// Go runs fn in its own goroutine.
func (a *Any) Go(fn func() error) {
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.er.CompareAndSwap(nil, fn())
	}()
}
