package cronexp

import (
	"errors"
	"strings"
	"time"
)

// gregorianCycle is the number of years after which the Gregorian calendar
// repeats, weekdays and leap days included.
const gregorianCycle = 400

// FoldPolicy selects how a wall clock that occurs twice, at the end of
// daylight saving time, is resolved.
type FoldPolicy uint8

const (
	// FoldSkip ignores wall clocks that occur twice.
	FoldSkip FoldPolicy = iota
	// FoldEarlier takes the first of the two instants.
	FoldEarlier
	// FoldLater takes the second of the two instants.
	FoldLater
)

var foldNames = [...]string{"skip", "earlier", "later"}

func (p FoldPolicy) String() string {
	if int(p) < len(foldNames) {
		return foldNames[p]
	}
	return "unknown"
}

// ErrUnknownFoldPolicy is returned by ParseFoldPolicy.
var ErrUnknownFoldPolicy = errors.New("cronexp: unknown fold policy")

// ParseFoldPolicy reads "skip", "earlier" or "later", ignoring case.
func ParseFoldPolicy(s string) (FoldPolicy, error) {
	for i, name := range foldNames {
		if strings.EqualFold(s, name) {
			return FoldPolicy(i), nil
		}
	}
	return FoldSkip, ErrUnknownFoldPolicy
}

// Engine finds occurrences of schedules. It is immutable after NewEngine
// and safe for concurrent use.
type Engine struct {
	location *time.Location // nil means the reference's own location
	logger   Logger
	fold     FoldPolicy
}

// NewEngine returns an Engine modified by the given options.
//
// Available Settings
//
//	Location
//	  Description: The time zone occurrences are computed in
//	  Default:     The location of each reference time
//
//	Fold policy
//	  Description: How repeated wall clocks are resolved
//	  Default:     FoldSkip
//
// See "cronexp.With*" to modify the default behavior.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: DiscardLogger,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var defaultEngine = NewEngine()

// Next returns the earliest occurrence strictly after from, evaluated in
// from's location. The result is false when no occurrence exists.
func (s Schedule) Next(from time.Time) (time.Time, bool) {
	return defaultEngine.Next(s, from)
}

// Prev returns the latest occurrence strictly before from, evaluated in
// from's location. The result is false when no occurrence exists.
func (s Schedule) Prev(from time.Time) (time.Time, bool) {
	return defaultEngine.Prev(s, from)
}

// Next returns the earliest occurrence of s strictly after from.
func (e *Engine) Next(s Schedule, from time.Time) (time.Time, bool) {
	return e.find(s, from, 1)
}

// Prev returns the latest occurrence of s strictly before from.
func (e *Engine) Prev(s Schedule, from time.Time) (time.Time, bool) {
	return e.find(s, from, -1)
}

// Location returns the location the engine evaluates in, or nil.
func (e *Engine) Location() *time.Location { return e.location }

// FoldPolicy returns the engine's fold policy.
func (e *Engine) FoldPolicy() FoldPolicy { return e.fold }

func (e *Engine) find(s Schedule, from time.Time, dir int) (time.Time, bool) {
	if !s.valid() || !s.possibleDay() {
		return time.Time{}, false
	}
	loc := e.location
	if loc == nil {
		loc = from.Location()
	}
	sr := search{engine: e, sched: s, loc: loc, ref: from.In(loc), dir: dir}
	var (
		t  time.Time
		ok bool
	)
	if dir > 0 {
		t, ok = sr.forward()
	} else {
		t, ok = sr.backward()
	}
	if sr.gaps > 0 || sr.folds > 0 {
		e.logger.Info("skipped local times",
			"schedule", s.String(),
			"direction", directionName(dir),
			"from", sr.ref,
			"gaps", sr.gaps,
			"folds", sr.folds,
			"found", ok)
	}
	return t, ok
}

func directionName(dir int) string {
	if dir > 0 {
		return "next"
	}
	return "prev"
}

// search is the state of one Next or Prev call.
type search struct {
	engine *Engine
	sched  Schedule
	loc    *time.Location
	ref    time.Time
	dir    int

	gaps, folds int // candidates skipped
}

func (sr *search) granularity() time.Duration {
	if sr.sched.second.kind == KindIgnored {
		return time.Minute
	}
	return time.Second
}

// origin returns the wall clock the search starts at. It is the first
// instant the result may take, widened to cover the whole repeated hour
// when that instant lies inside one.
func (sr *search) origin() time.Time {
	gran := sr.granularity()
	st := floorTo(sr.ref, gran)
	if sr.dir > 0 {
		st = st.Add(gran)
	} else if st.Equal(sr.ref) {
		st = st.Add(-gran)
	}
	if end, ok := overlapEnd(st); ok {
		if sr.dir > 0 {
			return end.In(sr.loc)
		}
		return end.Add(-time.Second).In(sr.loc)
	}
	return st
}

// resolve turns a wall clock into an instant. It reports false for wall
// clocks that do not exist, repeated wall clocks under FoldSkip, and
// instants not strictly beyond the reference.
func (sr *search) resolve(year, month, day, hour, minute, second int) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, sr.loc)
	if !sameWall(t, year, month, day, hour, minute, second) {
		sr.gaps++
		return time.Time{}, false
	}
	if alt, ok := fold(t); ok {
		switch sr.engine.fold {
		case FoldEarlier:
			if alt.Before(t) {
				t = alt
			}
		case FoldLater:
			if alt.After(t) {
				t = alt
			}
		default:
			sr.folds++
			return time.Time{}, false
		}
	}
	if sr.dir > 0 && !t.After(sr.ref) || sr.dir < 0 && !t.Before(sr.ref) {
		return time.Time{}, false
	}
	return t, true
}

// forward walks wall clocks in ascending order from the origin.
func (sr *search) forward() (time.Time, bool) {
	s := sr.sched
	c := newCursor(sr.origin(), forwardReset)

	first := max(c.year, MinYear)
	last := MaxYear
	if s.year.kind == KindUnbounded {
		last = first + gregorianCycle
	}
	for y, ok := s.year.ceil(first); ok && y <= last; y, ok = s.year.ceil(y + 1) {
		if y != c.year {
			c.release(lvMonth)
		}
		for mo, ok := s.month.ceil(c.start(lvMonth)); ok; mo, ok = s.month.ceil(mo + 1) {
			c.visit(lvMonth, mo)
			dim := daysIn(mo, y)
			for d, ok := s.dom.ceil(c.start(lvDay)); ok && d <= dim; d, ok = s.dom.ceil(d + 1) {
				c.visit(lvDay, d)
				if !s.dow.Contains(weekday(y, mo, d)) {
					continue
				}
				for h, ok := s.hour.ceil(c.start(lvHour)); ok; h, ok = s.hour.ceil(h + 1) {
					c.visit(lvHour, h)
					for mi, ok := s.minute.ceil(c.start(lvMinute)); ok; mi, ok = s.minute.ceil(mi + 1) {
						c.visit(lvMinute, mi)
						for sec, ok := s.second.ceil(c.start(lvSecond)); ok; sec, ok = s.second.ceil(sec + 1) {
							if t, valid := sr.resolve(y, mo, d, h, mi, sec); valid {
								return t, true
							}
						}
					}
				}
			}
		}
	}
	return time.Time{}, false
}

// backward mirrors forward in descending order.
func (sr *search) backward() (time.Time, bool) {
	s := sr.sched
	c := newCursor(sr.origin(), backwardReset)

	for y, ok := s.year.floor(c.year); ok && y >= MinYear; y, ok = s.year.floor(y - 1) {
		if y != c.year {
			c.release(lvMonth)
		}
		for mo, ok := s.month.floor(c.start(lvMonth)); ok; mo, ok = s.month.floor(mo - 1) {
			c.visit(lvMonth, mo)
			dim := daysIn(mo, y)
			for d, ok := s.dom.floor(min(c.start(lvDay), dim)); ok; d, ok = s.dom.floor(d - 1) {
				c.visit(lvDay, d)
				if !s.dow.Contains(weekday(y, mo, d)) {
					continue
				}
				for h, ok := s.hour.floor(c.start(lvHour)); ok; h, ok = s.hour.floor(h - 1) {
					c.visit(lvHour, h)
					for mi, ok := s.minute.floor(c.start(lvMinute)); ok; mi, ok = s.minute.floor(mi - 1) {
						c.visit(lvMinute, mi)
						for sec, ok := s.second.floor(c.start(lvSecond)); ok; sec, ok = s.second.floor(sec - 1) {
							if t, valid := sr.resolve(y, mo, d, h, mi, sec); valid {
								return t, true
							}
						}
					}
				}
			}
		}
	}
	return time.Time{}, false
}
