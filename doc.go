/*
Package cronexp parses cron expressions and finds their occurrences, forwards
and backwards, in any time zone.

# Installation

To download the package, run:

	go get github.com/netresearch/go-cronexp

Import it in your program as:

	import "github.com/netresearch/go-cronexp"

It requires Go 1.25 or later.

# Usage

Parse an expression once and ask it for occurrences relative to any instant.

	s, err := cronexp.Parse("0 30 9 * * MON-FRI")
	if err != nil {
		return err
	}
	next, ok := s.Next(time.Now())  // strictly after now
	prev, ok := s.Prev(time.Now())  // strictly before now

	// Walk in both directions from one cursor.
	it := s.Iter(time.Now())
	for t := range it.Forward() {
		...
	}

A Schedule is an immutable value. It can be copied, compared with ==, used
as a map key and shared between goroutines. An Iterator cannot be shared.

# Expression Format

The number of space-separated fields selects the dialect.

Classic (5 fields, crontab):

	Field name   | Allowed values  | Allowed special characters
	----------   | --------------  | --------------------------
	Minutes      | 0-59            | * / , -
	Hours        | 0-23            | * / , -
	Day of month | 1-31            | * / , -
	Month        | 1-12 or JAN-DEC | * / , -
	Day of week  | 0-7 or SUN-SAT  | * / , -

Seconds are fixed at 0, and years are unbounded. In the day-of-week field 0
and 7 both mean Sunday.

Extended (6 or 7 fields):

	Field name   | Allowed values  | Allowed special characters
	----------   | --------------  | --------------------------
	Seconds      | 0-59            | * / , -
	Minutes      | 0-59            | * / , -
	Hours        | 0-23            | * / , -
	Day of month | 1-31            | * / , -
	Month        | 1-12 or JAN-DEC | * / , -
	Day of week  | 1-7 or SUN-SAT  | * / , -
	Year         | 1970-2099       | * / , -

Here day 1 of the week is Sunday. The year field is optional and defaults
to *, which is bounded by 1970-2099.

Month and day-of-week names are case insensitive. "SUN", "Sun", and "sun"
are equally accepted.

# Special Characters

Asterisk ( * )

The asterisk indicates that the expression will match all values of the
field; e.g., using an asterisk in the 4th field (month) would indicate every
month.

Slash ( / )

Slashes describe increments of ranges. For example 3-59/15 in the minute
field indicates the 3rd minute of the hour and every 15 minutes thereafter.
A step after an asterisk is equivalent to the same step over "first-last",
and "N/..." means from N to the end of the field's range.

Comma ( , )

Commas separate items of a list. For example, using "MON,WED,FRI" in the
day-of-week field would mean Mondays, Wednesdays and Fridays.

Hyphen ( - )

Hyphens define inclusive ranges. For example, 9-17 in the hour field
indicates every hour from 9am to 5pm.

# Day Matching

When both day-of-month and day-of-week are restricted, a day must satisfy
both. "0 0 13 * FRI" fires only on Friday the 13th.

# Time Zones

Occurrences are computed on the wall clock of the reference time's location,
or of the location given with WithLocation.

Wall clocks skipped when clocks move forward do not exist and never match.
Wall clocks repeated when clocks move back are skipped by default; use
WithFoldPolicy to take the first or the second instant instead.

	engine := cronexp.NewEngine(
		cronexp.WithLocation(berlin),
		cronexp.WithFoldPolicy(cronexp.FoldEarlier),
	)
	next, ok := engine.Next(s, time.Now())

# Errors

Parse returns a *ParseError whose Kind is one of the Err* values in this
package, so callers can branch with errors.Is:

	if errors.Is(err, cronexp.ErrInvalidRange) {
		...
	}

# Logging

Engines log one line per search that had to skip local times. The Logger
interface is a subset of github.com/go-logr/logr; use NewSlogLogger for
log/slog or VerbosePrintfLogger for the standard library logger.
*/
package cronexp
