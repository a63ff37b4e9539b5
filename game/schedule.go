package game

import "time"

// Scheduler runs fn every d on the caller's event loop until the returned
// stop func is called. Stop must be idempotent, and once it returns no
// further call to fn may happen.
type Scheduler interface {
	Every(d time.Duration, fn func()) (stop func())
}

// repeating pairs a scheduler with the stop func of its current run.
type repeating struct {
	sched Scheduler
	stop  func()
}

func (r *repeating) start(d time.Duration, fn func()) {
	r.cancel()
	if r.sched == nil {
		return
	}

	r.stop = r.sched.Every(d, fn)
}

func (r *repeating) cancel() {
	if r.stop == nil {
		return
	}

	r.stop()
	r.stop = nil
}

func (r *repeating) running() bool {
	return r.stop != nil
}
