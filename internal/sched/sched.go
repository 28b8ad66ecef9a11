// Package sched implements the deferred-task table that drives every timed
// behavior of the simulation. A task resumes either when simulated time has
// advanced by a duration or when the player's segment counter reaches a
// target. Tasks are polled once per tick and can be canceled by handle.
package sched

// TaskID identifies a scheduled task. The zero value never names a task.
type TaskID uint64

// Kind is the resumption condition of a task.
type Kind int

const (
	KindSeconds Kind = iota // resume when now >= at
	KindSegment             // resume when segment >= target
)

type task struct {
	id      TaskID
	kind    Kind
	at      float64
	segment int
	fn      func()
}

// Scheduler is a single-threaded cancelable task table.
type Scheduler struct {
	tasks   []task
	due     []task // scratch, reused across polls
	nextID  TaskID
	now     float64
	segment int
	polling bool
}

// New creates an empty scheduler at time zero, segment zero.
func New() *Scheduler {
	return &Scheduler{
		tasks: make([]task, 0, 32),
		due:   make([]task, 0, 32),
	}
}

// Now returns the latest time seen by Advance or Poll.
func (s *Scheduler) Now() float64 {
	return s.now
}

// Segment returns the segment of the last poll.
func (s *Scheduler) Segment() int {
	return s.segment
}

// Advance moves the clock forward without running tasks, so work scheduled
// earlier in a tick measures its delay from that tick's time. Going back
// in time is ignored.
func (s *Scheduler) Advance(now float64) {
	if now > s.now {
		s.now = now
	}
}

// AfterSeconds schedules fn to run on the first poll at or after now+d,
// where now is the latest time seen by Advance or Poll.
func (s *Scheduler) AfterSeconds(d float64, fn func()) TaskID {
	if d < 0 {
		d = 0
	}
	return s.push(task{kind: KindSeconds, at: s.now + d, fn: fn})
}

// AtSegment schedules fn to run on the first poll whose segment is >= target.
func (s *Scheduler) AtSegment(target int, fn func()) TaskID {
	return s.push(task{kind: KindSegment, segment: target, fn: fn})
}

func (s *Scheduler) push(t task) TaskID {
	s.nextID++
	t.id = s.nextID
	s.tasks = append(s.tasks, t)
	return t.id
}

// Cancel removes a task. A canceled task never runs, even if it was already
// due in the poll that is currently dispatching.
func (s *Scheduler) Cancel(id TaskID) bool {
	if id == 0 {
		return false
	}
	for i := range s.tasks {
		if s.tasks[i].id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	if s.polling {
		for i := range s.due {
			if s.due[i].id == id && s.due[i].fn != nil {
				s.due[i].fn = nil
				return true
			}
		}
	}
	return false
}

// Pending reports whether the task is still waiting to run.
func (s *Scheduler) Pending(id TaskID) bool {
	if id == 0 {
		return false
	}
	for i := range s.tasks {
		if s.tasks[i].id == id {
			return true
		}
	}
	return false
}

// Remaining returns the seconds left before a time-based task resumes.
func (s *Scheduler) Remaining(id TaskID) (float64, bool) {
	for i := range s.tasks {
		if s.tasks[i].id == id && s.tasks[i].kind == KindSeconds {
			r := s.tasks[i].at - s.now
			if r < 0 {
				r = 0
			}
			return r, true
		}
	}
	return 0, false
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}

// Poll advances the clock and segment counter and runs every task whose
// condition is met, in scheduling order. Tasks scheduled while polling are
// evaluated on the next poll.
func (s *Scheduler) Poll(now float64, segment int) {
	s.now = now
	s.segment = segment

	s.due = s.due[:0]
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if s.ready(t) {
			s.due = append(s.due, t)
		} else {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.tasks); i++ {
		s.tasks[i] = task{}
	}
	s.tasks = kept

	s.polling = true
	for i := range s.due {
		fn := s.due[i].fn
		if fn == nil {
			continue
		}
		s.due[i].fn = nil
		fn()
	}
	s.polling = false
	s.due = s.due[:0]
}

func (s *Scheduler) ready(t task) bool {
	switch t.kind {
	case KindSegment:
		return s.segment >= t.segment
	default:
		return s.now >= t.at
	}
}

// Clear drops every pending task and resets the clock.
func (s *Scheduler) Clear() {
	for i := range s.tasks {
		s.tasks[i] = task{}
	}
	s.tasks = s.tasks[:0]
	for i := range s.due {
		s.due[i].fn = nil
	}
	s.now = 0
	s.segment = 0
}
