package sched

import "testing"

func TestAfterSecondsRunsOnce(t *testing.T) {
	s := New()
	runs := 0
	s.AfterSeconds(1.0, func() { runs++ })

	s.Poll(0.5, 0)
	if runs != 0 {
		t.Fatalf("task ran early: runs=%d", runs)
	}
	s.Poll(1.0, 0)
	s.Poll(2.0, 0)
	if runs != 1 {
		t.Errorf("runs = %d, expected 1", runs)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", s.Len())
	}
}

func TestAtSegment(t *testing.T) {
	s := New()
	fired := false
	s.AtSegment(5, func() { fired = true })

	s.Poll(10, 4)
	if fired {
		t.Fatal("segment task fired before segment 5")
	}
	s.Poll(10.1, 5)
	if !fired {
		t.Error("segment task should fire at segment 5")
	}
}

func TestCancel(t *testing.T) {
	s := New()
	ran := false
	id := s.AfterSeconds(1, func() { ran = true })

	if !s.Pending(id) {
		t.Fatal("task should be pending")
	}
	if !s.Cancel(id) {
		t.Fatal("Cancel() should succeed")
	}
	if s.Cancel(id) {
		t.Error("second Cancel() should fail")
	}
	s.Poll(5, 0)
	if ran {
		t.Error("canceled task ran")
	}
	if s.Cancel(0) {
		t.Error("Cancel(0) should be a no-op")
	}
}

func TestCancelDuringDispatch(t *testing.T) {
	s := New()
	secondRan := false
	var second TaskID
	s.AfterSeconds(1, func() { s.Cancel(second) })
	second = s.AfterSeconds(1, func() { secondRan = true })

	s.Poll(1, 0)
	if secondRan {
		t.Error("task canceled by an earlier task in the same poll still ran")
	}
}

func TestScheduleDuringDispatchWaitsForNextPoll(t *testing.T) {
	s := New()
	chained := 0
	s.AfterSeconds(0, func() {
		s.AfterSeconds(0, func() { chained++ })
	})

	s.Poll(0, 0)
	if chained != 0 {
		t.Fatal("task scheduled during poll ran in the same poll")
	}
	s.Poll(0.01, 0)
	if chained != 1 {
		t.Errorf("chained = %d, expected 1", chained)
	}
}

func TestRemaining(t *testing.T) {
	s := New()
	id := s.AfterSeconds(3, func() {})
	s.Poll(1, 0)

	r, ok := s.Remaining(id)
	if !ok || r != 2 {
		t.Errorf("Remaining() = %v, %v, expected 2, true", r, ok)
	}
	seg := s.AtSegment(10, func() {})
	if _, ok := s.Remaining(seg); ok {
		t.Error("Remaining() should not report segment tasks")
	}
}

func TestClear(t *testing.T) {
	s := New()
	ran := false
	s.AfterSeconds(1, func() { ran = true })
	s.Clear()
	s.Poll(2, 0)
	if ran {
		t.Error("Clear() should drop pending tasks")
	}
}

func TestAdvanceAnchorsNewTasks(t *testing.T) {
	s := New()
	s.Advance(1)
	fired := false
	s.AfterSeconds(0.5, func() { fired = true })

	s.Advance(0.5)
	if s.Now() != 1 {
		t.Errorf("Now() = %v after advancing backwards, want 1", s.Now())
	}
	s.Poll(1.25, 0)
	if fired {
		t.Fatal("task measured its delay from the last poll instead of the advanced clock")
	}
	s.Poll(1.5, 0)
	if !fired {
		t.Error("task should fire half a second after the advanced clock")
	}
}
