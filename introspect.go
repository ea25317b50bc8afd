package cronexp

import "time"

// NextN returns the next n occurrences of the schedule, starting after t.
// It returns fewer when the schedule runs out, and nil if n <= 0.
//
// This is useful for:
//   - Calendar previews showing upcoming runs
//   - Capacity planning
//   - Debugging expressions
//
// Example:
//
//	schedule := cronexp.MustParse("0 9 * * MON-FRI")
//	for _, t := range cronexp.NextN(schedule, time.Now(), 10) {
//	    fmt.Println("Next run:", t)
//	}
func NextN(schedule Schedule, t time.Time, n int) []time.Time {
	return defaultEngine.NextN(schedule, t, n)
}

// NextN is like the package-level NextN but searches with e.
func (e *Engine) NextN(schedule Schedule, t time.Time, n int) []time.Time {
	return collect(e.Iter(schedule, t).Next, n)
}

// PrevN returns the previous n occurrences before t, most recent first.
// It returns nil if n <= 0.
func PrevN(schedule Schedule, t time.Time, n int) []time.Time {
	return defaultEngine.PrevN(schedule, t, n)
}

// PrevN is like the package-level PrevN but searches with e.
func (e *Engine) PrevN(schedule Schedule, t time.Time, n int) []time.Time {
	return collect(e.Iter(schedule, t).Prev, n)
}

func collect(move func() (time.Time, bool), n int) []time.Time {
	if n <= 0 {
		return nil
	}
	times := make([]time.Time, 0, n)
	for range n {
		t, ok := move()
		if !ok {
			break
		}
		times = append(times, t)
	}
	return times
}

// Between returns all occurrences in the range [start, end).
// The end time is exclusive.
//
// WARNING: For high-frequency schedules over long ranges, this can return
// many results. Use BetweenWithLimit for bounded queries.
//
// Example:
//
//	schedule := cronexp.MustParse("0 9 * * *")
//	start := time.Now()
//	end := start.AddDate(0, 1, 0) // Next month
//	times := cronexp.Between(schedule, start, end)
func Between(schedule Schedule, start, end time.Time) []time.Time {
	return defaultEngine.BetweenWithLimit(schedule, start, end, 0)
}

// Between is like the package-level Between but searches with e.
func (e *Engine) Between(schedule Schedule, start, end time.Time) []time.Time {
	return e.BetweenWithLimit(schedule, start, end, 0)
}

// BetweenWithLimit returns occurrences in the range [start, end) up to limit.
// If limit is 0 or negative, no limit is applied.
//
// Example:
//
//	schedule := cronexp.MustParse("* * * * *") // Every minute
//	times := cronexp.BetweenWithLimit(schedule, start, end, 100) // Max 100 results
func BetweenWithLimit(schedule Schedule, start, end time.Time, limit int) []time.Time {
	return defaultEngine.BetweenWithLimit(schedule, start, end, limit)
}

// BetweenWithLimit is like the package-level BetweenWithLimit but searches with e.
func (e *Engine) BetweenWithLimit(schedule Schedule, start, end time.Time, limit int) []time.Time {
	var times []time.Time
	if limit > 0 {
		times = make([]time.Time, 0, limit)
	}
	e.walk(schedule, start, end, limit, func(t time.Time) {
		times = append(times, t)
	})
	return times
}

// Count returns the number of occurrences in the range [start, end).
//
// WARNING: For high-frequency schedules over long ranges, this may take
// significant time. Use CountWithLimit for bounded counting.
func Count(schedule Schedule, start, end time.Time) int {
	return defaultEngine.CountWithLimit(schedule, start, end, 0)
}

// Count is like the package-level Count but searches with e.
func (e *Engine) Count(schedule Schedule, start, end time.Time) int {
	return e.CountWithLimit(schedule, start, end, 0)
}

// CountWithLimit counts occurrences in the range [start, end) up to limit.
// If limit is 0 or negative, no limit is applied.
//
// Example:
//
//	schedule := cronexp.MustParse("* * * * *")
//	count := cronexp.CountWithLimit(schedule, start, end, 10000)
//	if count == 10000 {
//	    fmt.Println("At least 10000 runs")
//	}
func CountWithLimit(schedule Schedule, start, end time.Time, limit int) int {
	return defaultEngine.CountWithLimit(schedule, start, end, limit)
}

// CountWithLimit is like the package-level CountWithLimit but searches with e.
func (e *Engine) CountWithLimit(schedule Schedule, start, end time.Time, limit int) int {
	count := 0
	e.walk(schedule, start, end, limit, func(time.Time) { count++ })
	return count
}

// walk calls fn for each occurrence in [start, end), stopping after limit
// calls when limit > 0.
func (e *Engine) walk(schedule Schedule, start, end time.Time, limit int, fn func(time.Time)) {
	if !start.Before(end) {
		return
	}
	n := 0
	for t := range e.Iter(schedule, start.Add(-time.Nanosecond)).Forward() {
		if !t.Before(end) {
			return
		}
		fn(t)
		n++
		if limit > 0 && n >= limit {
			return
		}
	}
}

// Matches reports whether t is an occurrence of the schedule.
// Occurrences fall on whole seconds, so t must have no fractional second.
//
// Example:
//
//	schedule := cronexp.MustParse("0 9 * * MON-FRI")
//	if cronexp.Matches(schedule, time.Now().Truncate(time.Minute)) {
//	    fmt.Println("This minute is a scheduled run!")
//	}
func Matches(schedule Schedule, t time.Time) bool {
	return defaultEngine.Matches(schedule, t)
}

// Matches is like the package-level Matches but searches with e, so a
// repeated wall clock matches only on the side its fold policy selects.
func (e *Engine) Matches(schedule Schedule, t time.Time) bool {
	prev, ok := e.Prev(schedule, t.Add(time.Nanosecond))
	return ok && prev.Equal(t)
}
