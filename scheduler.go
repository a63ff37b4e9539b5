package main

import (
	"time"
)

// loopScheduler delivers ticks as closures on tasks, which the owning loop
// drains one at a time. A stopped flag, only touched on that loop, drops
// ticks that were already queued when stop ran.
type loopScheduler struct {
	tasks chan func()
	done  <-chan struct{}
}

func newLoopScheduler(done <-chan struct{}) *loopScheduler {
	return &loopScheduler{
		tasks: make(chan func(), 16),
		done:  done,
	}
}

func (s *loopScheduler) Every(d time.Duration, fn func()) func() {
	ticker := time.NewTicker(d)
	quit := make(chan struct{})
	stopped := false

	tick := func() {
		if stopped {
			return
		}
		fn()
	}

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				select {
				case s.tasks <- tick:
				case <-quit:
					return
				case <-s.done:
					return
				}
			case <-quit:
				return
			case <-s.done:
				return
			}
		}
	}()

	return func() {
		if stopped {
			return
		}
		stopped = true
		close(quit)
	}
}
