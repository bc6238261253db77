package summarizer

import (
	"context"
	"sync"
)

// fanOut runs functions with at most limit in flight
type fanOut struct {
	slots chan struct{}
	wg    sync.WaitGroup
}

func newFanOut(limit int) *fanOut {
	if limit < 1 {
		limit = 1
	}
	return &fanOut{slots: make(chan struct{}, limit)}
}

// Go blocks until a slot is free, then runs fn in a goroutine.
// It returns ctx.Err() without running fn if ctx ends first.
func (f *fanOut) Go(ctx context.Context, fn func()) error {
	select {
	case f.slots <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	f.wg.Add(1)
	go func() {
		defer f.wg.Done()
		defer func() { <-f.slots }()
		fn()
	}()
	return nil
}

// Wait blocks until every started function has returned
func (f *fanOut) Wait() {
	f.wg.Wait()
}
