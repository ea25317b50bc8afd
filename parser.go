package cronexp

import (
	"strconv"
	"strings"
	"sync"
)

// MaxSpecLength is the maximum allowed length for an expression.
// This limit prevents potential resource exhaustion from extremely long inputs.
const MaxSpecLength = 1024

// Field layouts by field count.
var layouts = map[int][]Unit{
	5: {Minute, Hour, DayOfMonth, Month, DayOfWeek},
	6: {Second, Minute, Hour, DayOfMonth, Month, DayOfWeek},
	7: {Second, Minute, Hour, DayOfMonth, Month, DayOfWeek, Year},
}

// Parser turns expressions into Schedules. The zero value accepts both
// dialects and does not cache. Parsers are safe for concurrent use.
type Parser struct {
	dialect Dialect   // zero accepts both
	cache   *sync.Map // optional cache: expression -> cacheEntry
}

// cacheEntry holds a cached parse result.
type cacheEntry struct {
	schedule Schedule
	err      error
}

// NewParser returns a parser accepting both dialects.
func NewParser() Parser {
	return Parser{}
}

// WithCache returns a new Parser with caching enabled for parsed schedules.
// Repeated calls to Parse with the same expression return the cached result,
// including cached errors.
//
// The cache is thread-safe and grows unbounded. For applications with many
// unique expressions, consider using a single shared parser instance.
func (p Parser) WithCache() Parser {
	p.cache = &sync.Map{}
	return p
}

// WithDialect returns a new Parser that only accepts expressions of dialect d.
// Expressions of the other dialect fail with ErrArgumentCount.
//
// Example:
//
//	// Only crontab-style expressions
//	p := cronexp.NewParser().WithDialect(cronexp.Classic)
//	_, err := p.Parse("0 0 * * * *") // ErrArgumentCount
func (p Parser) WithDialect(d Dialect) Parser {
	p.dialect = d
	return p
}

var defaultParser = NewParser()

// Parse parses expr with the default parser.
func Parse(expr string) (Schedule, error) {
	return defaultParser.Parse(expr)
}

// MustParse is like Parse but panics if expr is invalid.
// It is intended for expressions fixed at compile time.
func MustParse(expr string) Schedule {
	s, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return s
}

// Parse returns the Schedule described by expr, or a *ParseError.
//
// If caching is enabled via WithCache(), repeated calls with the same
// expression return the cached result.
func (p Parser) Parse(expr string) (Schedule, error) {
	if p.cache != nil {
		if cached, ok := p.cache.Load(expr); ok {
			if entry, ok := cached.(cacheEntry); ok {
				return entry.schedule, entry.err
			}
		}
	}

	schedule, err := p.parse(expr)

	if p.cache != nil {
		p.cache.Store(expr, cacheEntry{schedule: schedule, err: err})
	}

	return schedule, err
}

// parse is the internal parsing logic, called by Parse.
func (p Parser) parse(expr string) (Schedule, error) {
	if len(expr) > MaxSpecLength {
		return Schedule{}, &ParseError{Kind: ErrSpecTooLong, Value: strconv.Itoa(len(expr))}
	}

	fields := strings.Fields(expr)
	units, ok := layouts[len(fields)]
	dialect := Extended
	if len(fields) == 5 {
		dialect = Classic
	}
	if !ok || (p.dialect != 0 && p.dialect != dialect) {
		return Schedule{}, &ParseError{Kind: ErrArgumentCount, Value: strconv.Itoa(len(fields))}
	}

	s := Schedule{
		second: Field{unit: Second, kind: KindIgnored},
		year:   Field{unit: Year, kind: KindUnbounded},
	}
	if dialect == Extended {
		s.year = Field{unit: Year, kind: KindAny}
	}

	for i, u := range units {
		f, err := parseField(fields[i], syntaxFor(u, dialect))
		if err != nil {
			return Schedule{}, err
		}
		switch u {
		case Second:
			s.second = f
		case Minute:
			s.minute = f
		case Hour:
			s.hour = f
		case DayOfMonth:
			s.dom = f
		case Month:
			s.month = f
		case DayOfWeek:
			s.dow = f
		case Year:
			s.year = f
		}
	}
	return s, nil
}

// syntax describes how literals of one field are read in one dialect.
// Literals are validated against [lo, hi] and then mapped to field values.
// Ranges and steps work on the mapped values.
type syntax struct {
	unit    Unit
	lo, hi  int
	names   map[string]int
	nameErr error
	value   func(literal int) int
}

func identity(v int) int { return v }

// classicWeekdayNames uses crontab numbering: 0 and 7 are Sunday.
var classicWeekdayNames = map[string]int{
	"sun": 0,
	"mon": 1,
	"tue": 2,
	"wed": 3,
	"thu": 4,
	"fri": 5,
	"sat": 6,
}

func syntaxFor(u Unit, d Dialect) syntax {
	b := fieldBounds[u]
	s := syntax{unit: u, lo: b.min, hi: b.max, names: b.names, value: identity}
	switch u {
	case Month:
		s.nameErr = ErrInvalidMonthName
	case DayOfWeek:
		s.nameErr = ErrInvalidWeekdayName
		if d == Classic {
			s.lo, s.hi = 0, 7
			s.names = classicWeekdayNames
			s.value = func(v int) int { return v%7 + 1 }
		}
	}
	return s
}

// parseField returns the constraint described by a comma-separated list of
// items. Every item is validated even when one of them already selects the
// whole domain.
func parseField(expr string, s syntax) (Field, error) {
	f := Field{unit: s.unit, kind: KindSet}
	star := false
	for _, item := range strings.Split(expr, ",") {
		all, err := s.addItem(&f.bits, item)
		if err != nil {
			return Field{}, err
		}
		star = star || all
	}

	b := fieldBounds[s.unit]
	if star || f.bits == mask(b.size()) {
		return Field{unit: s.unit, kind: KindAny}, nil
	}
	return f, nil
}

// addItem adds the values selected by one item:
//
//	"*" | value | value "/" step | "*" "/" step | value "-" value [ "/" step ]
//
// It reports whether the item was a bare "*".
func (s syntax) addItem(set *bitset, item string) (bool, error) {
	left, stepText, stepped := strings.Cut(item, "/")
	lowText, highText, ranged := strings.Cut(left, "-")

	step := 1
	if stepped {
		var err error
		step, err = s.step(stepText)
		if err != nil {
			return false, err
		}
	}

	b := fieldBounds[s.unit]
	var low, high int
	switch {
	case lowText == "*" && !ranged:
		if !stepped {
			return true, nil
		}
		low, high = b.min, b.max
	case ranged:
		var err error
		if low, err = s.resolve(lowText, item); err != nil {
			return false, err
		}
		if high, err = s.resolve(highText, item); err != nil {
			return false, err
		}
		if low > high {
			return false, newParseError(ErrInvalidRange, s.unit, item)
		}
	default:
		var err error
		if low, err = s.resolve(lowText, item); err != nil {
			return false, err
		}
		high = low
		if stepped {
			high = b.max
		}
	}

	// Clamp so the loop below cannot overflow.
	step = min(step, high-low+1)
	for v := low; v <= high; v += step {
		set.add(v - b.min)
	}
	return false, nil
}

// resolve reads one endpoint of item and maps it to a field value.
func (s syntax) resolve(tok, item string) (int, error) {
	n, err := s.literal(tok)
	if err != nil {
		return 0, err
	}
	if n < s.lo || n > s.hi {
		return 0, newParseError(ErrInvalidRange, s.unit, item)
	}
	return s.value(n), nil
}

// literal resolves a number or, for month and weekday fields, a name.
func (s syntax) literal(tok string) (int, error) {
	if isDigits(tok) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			e := newParseError(ErrMalformedInteger, s.unit, tok)
			e.Err = err
			return 0, e
		}
		return n, nil
	}
	if s.names != nil {
		if n, ok := s.names[strings.ToLower(tok)]; ok {
			return n, nil
		}
		return 0, newParseError(s.nameErr, s.unit, tok)
	}
	e := newParseError(ErrMalformedInteger, s.unit, tok)
	e.Err = &strconv.NumError{Func: "Atoi", Num: tok, Err: strconv.ErrSyntax}
	return 0, e
}

// step parses the right-hand side of "/".
func (s syntax) step(tok string) (int, error) {
	if !isDigits(tok) {
		e := newParseError(ErrInvalidStepRange, s.unit, tok)
		e.Err = &strconv.NumError{Func: "Atoi", Num: tok, Err: strconv.ErrSyntax}
		return 0, e
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		e := newParseError(ErrInvalidStepRange, s.unit, tok)
		e.Err = err
		return 0, e
	}
	if n == 0 {
		return 0, newParseError(ErrInvalidStepRange, s.unit, tok)
	}
	return n, nil
}

// isDigits reports whether tok is a non-empty run of ASCII digits.
func isDigits(tok string) bool {
	if tok == "" {
		return false
	}
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return true
}
