package cronexp

import "time"

// floorTo truncates t to a whole second or a whole minute of its wall clock.
func floorTo(t time.Time, gran time.Duration) time.Time {
	t = t.Add(-time.Duration(t.Nanosecond()))
	if gran == time.Minute {
		t = t.Add(-time.Duration(t.Second()) * time.Second)
	}
	return t
}

// fold returns the other instant that shows the same wall clock as t, if
// t falls inside a backward offset transition.
func fold(t time.Time) (time.Time, bool) {
	_, off := t.Zone()
	start, end := t.ZoneBounds()
	if !start.IsZero() {
		if _, before := start.Add(-time.Second).Zone(); before > off {
			alt := t.Add(-time.Duration(before-off) * time.Second)
			if alt.Before(start) {
				return alt, true
			}
		}
	}
	if !end.IsZero() {
		if _, after := end.Zone(); after < off {
			alt := t.Add(time.Duration(off-after) * time.Second)
			if !alt.Before(end) {
				return alt, true
			}
		}
	}
	return time.Time{}, false
}

// overlapEnd returns the end of the first occurrence of t's wall clock,
// if that wall clock occurs twice.
func overlapEnd(t time.Time) (time.Time, bool) {
	alt, ok := fold(t)
	if !ok {
		return time.Time{}, false
	}
	first := t
	if alt.Before(t) {
		first = alt
	}
	_, end := first.ZoneBounds()
	return end, true
}

// sameWall reports whether t shows exactly the given wall clock.
func sameWall(t time.Time, year, month, day, hour, minute, second int) bool {
	return t.Second() == second &&
		t.Minute() == minute &&
		t.Hour() == hour &&
		t.Day() == day &&
		int(t.Month()) == month &&
		t.Year() == year
}

// weekday returns the weekday code (1 = Sunday) of a civil date.
func weekday(year, month, day int) int {
	return int(time.Date(year, time.Month(month), day, 12, 0, 0, 0, time.UTC).Weekday()) + 1
}
