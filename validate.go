package cronexp

import (
	"time"
)

// Analysis contains detailed information about an expression.
type Analysis struct {
	// Valid indicates whether the expression was successfully parsed.
	Valid bool

	// Err contains the parsing error if Valid is false.
	Err error

	// Schedule is the parsed schedule. It is the zero Schedule when Valid is false.
	Schedule Schedule

	// Dialect is the form the expression was written in.
	Dialect Dialect

	// Fields contains the canonical text of each field the dialect carries,
	// keyed by Unit.String(): "second" (extended only), "minute", "hour",
	// "day_of_month", "month", "day_of_week" and "year" (when constrained).
	Fields map[string]string

	// NextRun is the next occurrence after the clock's now.
	// Zero if the expression is invalid or never fires again.
	NextRun time.Time

	// PrevRun is the latest occurrence before the clock's now.
	PrevRun time.Time

	// Warnings contains non-fatal notes about surprising behavior.
	Warnings []string
}

// Warning texts reported by Analyze.
const (
	WarnDayAnd     = "both day-of-month and day-of-week are restricted - using AND logic (both must match)"
	WarnImpossible = "day-of-month never occurs in the selected months"
	WarnNoUpcoming = "schedule has no upcoming occurrence"
)

// Validate checks an expression without keeping the result.
// It returns nil if expr is valid, or a *ParseError describing the problem.
//
// Example:
//
//	// Validate user input
//	if err := cronexp.Validate(userInput); err != nil {
//	    return fmt.Errorf("invalid cron expression: %w", err)
//	}
func Validate(expr string) error {
	return ValidateWith(expr, defaultParser)
}

// ValidateWith validates an expression using the given parser, for
// example one restricted to a single dialect.
func ValidateWith(expr string, p Parser) error {
	_, err := p.Parse(expr)
	return err
}

// ValidateAll validates multiple expressions at once.
// It returns a map of index to error for any invalid expression.
// If all are valid, it returns an empty map (not nil).
//
// This is useful for:
//   - Validating configuration files before deployment
//   - Bulk validation with detailed error reporting
//
// Example:
//
//	exprs := []string{"* * * * *", "invalid", "0 9 * * MON-FRI", "bad"}
//	errs := cronexp.ValidateAll(exprs)
//	for idx, err := range errs {
//	    log.Printf("Expression %d is invalid: %v", idx, err)
//	}
func ValidateAll(exprs []string) map[int]error {
	errs := make(map[int]error)
	for i, expr := range exprs {
		if err := Validate(expr); err != nil {
			errs[i] = err
		}
	}
	return errs
}

// Analyze parses expr with the default parser and describes it relative to
// clock's current time, using the default engine. A nil clock means RealClock.
//
// Example:
//
//	result := cronexp.Analyze("0 9 * * MON-FRI", nil)
//	if !result.Valid {
//	    log.Printf("Invalid: %v", result.Err)
//	} else {
//	    log.Printf("Next run: %v", result.NextRun)
//	    log.Printf("Fields: %v", result.Fields)
//	}
func Analyze(expr string, clock Clock) Analysis {
	return defaultEngine.Analyze(expr, clock)
}

// Analyze is like the package-level Analyze but searches with e.
func (e *Engine) Analyze(expr string, clock Clock) Analysis {
	result := Analysis{
		Fields: make(map[string]string),
	}

	schedule, err := defaultParser.Parse(expr)
	if err != nil {
		result.Err = err
		return result
	}
	if clock == nil {
		clock = RealClock{}
	}

	result.Valid = true
	result.Schedule = schedule
	result.Dialect = schedule.Dialect()
	for _, u := range schedule.units() {
		result.Fields[u.String()] = schedule.Field(u).String()
	}

	result.checkDays()

	now := clock.Now()
	if t, ok := e.Next(schedule, now); ok {
		result.NextRun = t
	} else {
		result.Warnings = append(result.Warnings, WarnNoUpcoming)
	}
	if t, ok := e.Prev(schedule, now); ok {
		result.PrevRun = t
	}
	return result
}

// checkDays adds warnings about the day fields.
func (r *Analysis) checkDays() {
	s := r.Schedule
	if s.dom.kind == KindSet && s.dow.kind == KindSet {
		r.Warnings = append(r.Warnings, WarnDayAnd)
	}
	if !s.possibleDay() {
		r.Warnings = append(r.Warnings, WarnImpossible)
	}
}

// units returns the fields written in s's canonical expression, in order.
func (s Schedule) units() []Unit {
	switch s.Dialect() {
	case Classic:
		return layouts[5]
	case Extended:
		if s.year.kind == KindSet {
			return layouts[7]
		}
		return layouts[6]
	}
	return nil
}
