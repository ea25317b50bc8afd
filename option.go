package cronexp

import (
	"time"
)

// Option represents a modification to the default behavior of an Engine.
type Option func(*Engine)

// WithLocation evaluates every schedule in loc instead of the location of
// the reference time. Results are returned in loc.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) {
		e.location = loc
	}
}

// WithLogger uses the provided logger.
//
// The engine logs one Info line for each search that had to skip local
// times that do not exist or occur twice. A nil logger discards everything.
func WithLogger(logger Logger) Option {
	return func(e *Engine) {
		if logger == nil {
			logger = DiscardLogger
		}
		e.logger = logger
	}
}

// WithFoldPolicy sets how wall clocks repeated by a backward offset
// transition are resolved.
//
// Example:
//
//	ny, _ := time.LoadLocation("America/New_York")
//	e := cronexp.NewEngine(
//	    cronexp.WithLocation(ny),
//	    cronexp.WithFoldPolicy(cronexp.FoldEarlier),
//	)
//	// 01:30 on 2019-11-03 resolves to 01:30 EDT
//	t, _ := e.Next(cronexp.MustParse("0 30 1 * * *"), time.Date(2019, 11, 3, 0, 0, 0, 0, ny))
func WithFoldPolicy(p FoldPolicy) Option {
	return func(e *Engine) {
		e.fold = p
	}
}
