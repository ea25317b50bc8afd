package cronexp

import "time"

// level is one step of the nested search below the year.
type level uint8

const (
	lvMonth level = iota
	lvDay
	lvHour
	lvMinute
	lvSecond
	numLevels
)

// Where each level restarts once it is no longer tied to the reference.
var (
	forwardReset  = [numLevels]int{1, 1, 0, 0, 0}
	backwardReset = [numLevels]int{12, 31, 23, 59, 59}
)

// cursor tracks which levels are still pinned to the reference wall clock.
//
// A search starts with every level pinned, so each loop begins at the
// reference value. Once a level visits any other value, every finer level
// is released and restarts from its reset value. Pinned levels always form
// a prefix.
type cursor struct {
	year   int
	ref    [numLevels]int
	reset  [numLevels]int
	pinned [numLevels]bool
}

func newCursor(t time.Time, reset [numLevels]int) cursor {
	return cursor{
		year:   t.Year(),
		ref:    [numLevels]int{int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second()},
		reset:  reset,
		pinned: [numLevels]bool{true, true, true, true, true},
	}
}

// start returns the value the loop for l begins at.
func (c *cursor) start(l level) int {
	if c.pinned[l] {
		return c.ref[l]
	}
	return c.reset[l]
}

// release unpins l and every finer level.
func (c *cursor) release(l level) {
	for ; l < numLevels; l++ {
		c.pinned[l] = false
	}
}

// visit records that the loop for l reached v.
func (c *cursor) visit(l level, v int) {
	if c.pinned[l] && v != c.ref[l] {
		c.release(l + 1)
	}
}
