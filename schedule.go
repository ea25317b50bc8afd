package cronexp

import (
	"math/bits"
	"strconv"
	"strings"
)

// Unit identifies one calendar field of a schedule.
type Unit uint8

// Unit constants, finest first. DayOfWeek is a filter rather than a search level.
const (
	Second Unit = iota
	Minute
	Hour
	DayOfMonth
	Month
	DayOfWeek
	Year
	numUnits
)

var unitNames = [numUnits]string{
	"second",
	"minute",
	"hour",
	"day_of_month",
	"month",
	"day_of_week",
	"year",
}

func (u Unit) String() string {
	if u >= numUnits {
		return "unit(" + strconv.Itoa(int(u)) + ")"
	}
	return unitNames[u]
}

// The supported year domain.
const (
	MinYear = 1970
	MaxYear = 2099
)

// bounds provides a range of acceptable values (plus a map of name to value).
type bounds struct {
	min, max int
	names    map[string]int
}

func (b bounds) size() int { return b.max - b.min + 1 }

var monthNames = map[string]int{
	"jan": 1,
	"feb": 2,
	"mar": 3,
	"apr": 4,
	"may": 5,
	"jun": 6,
	"jul": 7,
	"aug": 8,
	"sep": 9,
	"oct": 10,
	"nov": 11,
	"dec": 12,
}

// weekdayNames maps names onto the weekday codes used inside a Field
// (1 = Sunday ... 7 = Saturday).
var weekdayNames = map[string]int{
	"sun": 1,
	"mon": 2,
	"tue": 3,
	"wed": 4,
	"thu": 5,
	"fri": 6,
	"sat": 7,
}

// The domain of each field.
var fieldBounds = [numUnits]bounds{
	Second:     {0, 59, nil},
	Minute:     {0, 59, nil},
	Hour:       {0, 23, nil},
	DayOfMonth: {1, 31, nil},
	Month:      {1, 12, monthNames},
	DayOfWeek:  {1, 7, weekdayNames},
	Year:       {MinYear, MaxYear, nil},
}

// Kind describes the shape of a field constraint.
type Kind uint8

const (
	// KindAny allows every value in the field's domain.
	KindAny Kind = iota
	// KindSet allows an explicit set of values.
	KindSet
	// KindIgnored marks the seconds field of a classic expression: only
	// second 0 matches and the search moves one minute at a time.
	KindIgnored
	// KindUnbounded marks the year field of a classic expression: every
	// year matches, without the domain ceiling.
	KindUnbounded
)

func (k Kind) String() string {
	switch k {
	case KindAny:
		return "any"
	case KindSet:
		return "set"
	case KindIgnored:
		return "ignored"
	case KindUnbounded:
		return "unbounded"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// bitset holds up to 192 members, enough for the 130-year domain.
type bitset [3]uint64

func (b *bitset) add(i int) {
	b[i>>6] |= 1 << (uint(i) & 63)
}

func (b bitset) has(i int) bool {
	if i < 0 || i >= 64*len(b) {
		return false
	}
	return b[i>>6]&(1<<(uint(i)&63)) != 0
}

// next returns the smallest member >= i, or -1.
func (b bitset) next(i int) int {
	if i < 0 {
		i = 0
	}
	for w := i >> 6; w < len(b); w++ {
		word := b[w]
		if w == i>>6 {
			word &= ^uint64(0) << (uint(i) & 63)
		}
		if word != 0 {
			return w<<6 + bits.TrailingZeros64(word)
		}
	}
	return -1
}

// prev returns the largest member <= i, or -1.
func (b bitset) prev(i int) int {
	if i < 0 {
		return -1
	}
	if i >= 64*len(b) {
		i = 64*len(b) - 1
	}
	for w := i >> 6; w >= 0; w-- {
		word := b[w]
		if w == i>>6 {
			word &= ^uint64(0) >> (63 - uint(i)&63)
		}
		if word != 0 {
			return w<<6 + 63 - bits.LeadingZeros64(word)
		}
	}
	return -1
}

func (b bitset) count() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// mask returns the bitset with members 0..n-1.
func mask(n int) bitset {
	var m bitset
	for w := range m {
		switch {
		case n >= 64*(w+1):
			m[w] = ^uint64(0)
		case n > 64*w:
			m[w] = ^uint64(0) >> (64 - uint(n-64*w))
		}
	}
	return m
}

// Field is the constraint on one calendar unit.
type Field struct {
	unit Unit
	kind Kind
	bits bitset // members offset from the domain minimum; KindSet only
}

// Unit returns the calendar unit the field constrains.
func (f Field) Unit() Unit { return f.unit }

// Kind returns the shape of the constraint.
func (f Field) Kind() Kind { return f.kind }

// Contains reports whether v satisfies the field.
func (f Field) Contains(v int) bool {
	switch f.kind {
	case KindUnbounded:
		return true
	case KindIgnored:
		return v == 0
	}
	b := fieldBounds[f.unit]
	if v < b.min || v > b.max {
		return false
	}
	return f.kind == KindAny || f.bits.has(v-b.min)
}

// Values returns the allowed values in ascending order. An unbounded
// field has no finite value list and returns nil.
func (f Field) Values() []int {
	switch f.kind {
	case KindUnbounded:
		return nil
	case KindIgnored:
		return []int{0}
	}
	b := fieldBounds[f.unit]
	var out []int
	for v, ok := f.ceil(b.min); ok; v, ok = f.ceil(v + 1) {
		out = append(out, v)
	}
	return out
}

// ceil returns the smallest allowed value >= v.
func (f Field) ceil(v int) (int, bool) {
	switch f.kind {
	case KindUnbounded:
		return v, true
	case KindIgnored:
		return 0, v <= 0
	}
	b := fieldBounds[f.unit]
	if v < b.min {
		v = b.min
	}
	if v > b.max {
		return 0, false
	}
	if f.kind == KindAny {
		return v, true
	}
	i := f.bits.next(v - b.min)
	if i < 0 {
		return 0, false
	}
	return b.min + i, true
}

// floor returns the largest allowed value <= v.
func (f Field) floor(v int) (int, bool) {
	switch f.kind {
	case KindUnbounded:
		return v, true
	case KindIgnored:
		return 0, v >= 0
	}
	b := fieldBounds[f.unit]
	if v > b.max {
		v = b.max
	}
	if v < b.min {
		return 0, false
	}
	if f.kind == KindAny {
		return v, true
	}
	i := f.bits.prev(v - b.min)
	if i < 0 {
		return 0, false
	}
	return b.min + i, true
}

// String renders the field in expression syntax. Month and weekday members
// are written by name so the text means the same in either dialect.
func (f Field) String() string {
	switch f.kind {
	case KindAny, KindUnbounded:
		return "*"
	case KindIgnored:
		return "0"
	}
	vals := f.Values()
	var sb strings.Builder
	for i := 0; i < len(vals); {
		j := i
		for j+1 < len(vals) && vals[j+1] == vals[j]+1 {
			j++
		}
		if sb.Len() > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(f.format(vals[i]))
		if j > i {
			sb.WriteByte('-')
			sb.WriteString(f.format(vals[j]))
		}
		i = j + 1
	}
	return sb.String()
}

func (f Field) format(v int) string {
	for name, n := range fieldBounds[f.unit].names {
		if n == v {
			return strings.ToUpper(name)
		}
	}
	return strconv.Itoa(v)
}

// Dialect is the expression form a schedule was parsed from.
type Dialect uint8

const (
	// Classic is the 5-field crontab form: no seconds, no year.
	Classic Dialect = iota + 1
	// Extended is the 6- or 7-field form with seconds and an optional year.
	Extended
)

func (d Dialect) String() string {
	switch d {
	case Classic:
		return "classic"
	case Extended:
		return "extended"
	}
	return "unknown"
}

// Schedule is a parsed expression. It is immutable, comparable with ==,
// and safe for concurrent use; copies are independent clones.
//
// The zero Schedule matches nothing. Obtain schedules from Parse.
type Schedule struct {
	second, minute, hour, dom, month, dow, year Field
}

// Field returns the constraint for unit u.
func (s Schedule) Field(u Unit) Field {
	switch u {
	case Second:
		return s.second
	case Minute:
		return s.minute
	case Hour:
		return s.hour
	case DayOfMonth:
		return s.dom
	case Month:
		return s.month
	case DayOfWeek:
		return s.dow
	case Year:
		return s.year
	}
	return Field{}
}

// valid reports whether s was built by the parser or decoder.
func (s Schedule) valid() bool {
	return s.year.unit == Year
}

// Dialect reports which expression form produced s.
func (s Schedule) Dialect() Dialect {
	if !s.valid() {
		return 0
	}
	if s.second.kind == KindIgnored {
		return Classic
	}
	return Extended
}

// String returns the canonical expression for s. Parsing it yields s again.
func (s Schedule) String() string {
	units := s.units()
	if units == nil {
		return ""
	}
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = s.Field(u).String()
	}
	return strings.Join(parts, " ")
}

// isLeapYear applies the Gregorian rule.
func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysIn returns the length of month in year.
func daysIn(month, year int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		if isLeapYear(year) {
			return 29
		}
		return 28
	}
	return 31
}

// possibleDay reports whether some selected month has a selected day.
// February counts as 29 days long.
func (s Schedule) possibleDay() bool {
	for m, ok := s.month.ceil(1); ok; m, ok = s.month.ceil(m + 1) {
		if d, ok := s.dom.ceil(1); ok && d <= daysIn(m, 2000) {
			return true
		}
	}
	return false
}
