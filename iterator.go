package cronexp

import (
	"iter"
	"time"
)

// Iterator walks the occurrences of a schedule in either direction from a
// movable cursor. Every returned occurrence becomes the new cursor, so
// Next followed by Prev returns the occurrence before the one just seen.
//
// Once a call finds nothing the iterator is exhausted and every later call
// in either direction reports false.
//
// An Iterator is not safe for concurrent use. Create one per goroutine;
// the Schedule it was made from can be shared.
type Iterator struct {
	engine    *Engine
	sched     Schedule
	cursor    time.Time
	exhausted bool
}

// Iter returns an iterator over s positioned at from, using the default engine.
func (s Schedule) Iter(from time.Time) *Iterator {
	return defaultEngine.Iter(s, from)
}

// Iter returns an iterator over s positioned at from.
func (e *Engine) Iter(s Schedule, from time.Time) *Iterator {
	return &Iterator{engine: e, sched: s, cursor: from}
}

// Next moves to the earliest occurrence strictly after the cursor.
func (it *Iterator) Next() (time.Time, bool) {
	return it.step(it.engine.Next)
}

// Prev moves to the latest occurrence strictly before the cursor.
func (it *Iterator) Prev() (time.Time, bool) {
	return it.step(it.engine.Prev)
}

func (it *Iterator) step(find func(Schedule, time.Time) (time.Time, bool)) (time.Time, bool) {
	if it.exhausted {
		return time.Time{}, false
	}
	t, ok := find(it.sched, it.cursor)
	if !ok {
		it.exhausted = true
		return time.Time{}, false
	}
	it.cursor = t
	return t, true
}

// Cursor returns the current position.
func (it *Iterator) Cursor() time.Time { return it.cursor }

// Exhausted reports whether a previous call found nothing.
func (it *Iterator) Exhausted() bool { return it.exhausted }

// Schedule returns the schedule being iterated.
func (it *Iterator) Schedule() Schedule { return it.sched }

// Forward yields occurrences after the cursor in ascending order until the
// iterator is exhausted or the loop stops.
//
//	for t := range s.Iter(now).Forward() {
//	    if t.After(deadline) {
//	        break
//	    }
//	    fmt.Println(t)
//	}
func (it *Iterator) Forward() iter.Seq[time.Time] {
	return it.seq(it.Next)
}

// Backward yields occurrences before the cursor in descending order.
func (it *Iterator) Backward() iter.Seq[time.Time] {
	return it.seq(it.Prev)
}

func (it *Iterator) seq(move func() (time.Time, bool)) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		for {
			t, ok := move()
			if !ok || !yield(t) {
				return
			}
		}
	}
}
