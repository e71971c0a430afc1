// Package scheduler runs deferred and repeating tasks on the logic thread at
// tick boundaries.
package scheduler

// Task is a scheduled continuation. Cancel stops it before its next run.
type Task struct {
	id        uint64
	nextTick  uint64
	period    uint64 // 0 = run once
	fn        func(*Task)
	cancelled bool
}

// Cancel stops the task. Safe to call more than once and from inside the task.
func (t *Task) Cancel() {
	if t != nil {
		t.cancelled = true
	}
}

// Cancelled reports whether the task was cancelled or has already run to
// completion.
func (t *Task) Cancelled() bool {
	return t == nil || t.cancelled
}

// Scheduler is single-threaded and must only be driven from the logic thread.
type Scheduler struct {
	tick   uint64
	nextID uint64
	tasks  []*Task
}

func New() *Scheduler {
	return &Scheduler{}
}

// CurrentTick returns the number of completed Tick calls.
func (s *Scheduler) CurrentTick() uint64 {
	return s.tick
}

// RunLater runs fn once after delay ticks. A delay below 1 is treated as 1, so
// a task registered during a tick never runs within that same tick.
func (s *Scheduler) RunLater(delay int, fn func()) *Task {
	return s.schedule(delay, 0, func(*Task) { fn() })
}

// RunTimer runs fn after delay ticks and then every period ticks until the
// task is cancelled.
func (s *Scheduler) RunTimer(delay, period int, fn func(*Task)) *Task {
	if period < 1 {
		period = 1
	}
	return s.schedule(delay, uint64(period), fn)
}

func (s *Scheduler) schedule(delay int, period uint64, fn func(*Task)) *Task {
	if delay < 1 {
		delay = 1
	}
	s.nextID++
	t := &Task{
		id:       s.nextID,
		nextTick: s.tick + uint64(delay),
		period:   period,
		fn:       fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Tick advances one tick and runs every due task in registration order.
func (s *Scheduler) Tick() {
	s.tick++

	// Tasks registered while this tick runs land in s.tasks and wait for the
	// next tick.
	due := s.tasks
	s.tasks = nil
	kept := make([]*Task, 0, len(due))

	for _, t := range due {
		if t.cancelled {
			continue
		}
		if t.nextTick > s.tick {
			kept = append(kept, t)
			continue
		}
		t.fn(t)
		if t.period == 0 {
			t.cancelled = true
			continue
		}
		if !t.cancelled {
			t.nextTick = s.tick + t.period
			kept = append(kept, t)
		}
	}

	s.tasks = append(kept, s.tasks...)
}

// Pending returns the number of live tasks.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// CancelAll cancels every task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = nil
}
