package cli

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"

	cronexp "github.com/netresearch/go-cronexp"
	"github.com/netresearch/go-cronexp/internal/config"
)

// foldValue is a --fold flag holding a cronexp.FoldPolicy.
type foldValue struct {
	policy cronexp.FoldPolicy
}

var _ pflag.Value = (*foldValue)(nil)

func (f *foldValue) String() string { return f.policy.String() }

func (f *foldValue) Set(s string) error {
	p, err := cronexp.ParseFoldPolicy(s)
	if err != nil {
		return fmt.Errorf("%w (want skip, earlier or later)", err)
	}
	f.policy = p
	return nil
}

func (f *foldValue) Type() string { return "policy" }

// zoneValue is a --tz flag holding a loaded location.
type zoneValue struct {
	loc *time.Location
}

var _ pflag.Value = (*zoneValue)(nil)

func (z *zoneValue) String() string {
	if z.loc == nil {
		return ""
	}
	return z.loc.String()
}

func (z *zoneValue) Set(s string) error {
	loc, err := config.LoadLocation(s)
	if err != nil {
		return err
	}
	z.loc = loc
	return nil
}

func (z *zoneValue) Type() string { return "zone" }

// timeValue is a --from flag holding an RFC 3339 instant. Unset means now.
type timeValue struct {
	t   time.Time
	set bool
}

var _ pflag.Value = (*timeValue)(nil)

func (v *timeValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(time.RFC3339Nano)
}

func (v *timeValue) Set(s string) error {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("want RFC 3339 time: %w", err)
	}
	v.t, v.set = t, true
	return nil
}

func (v *timeValue) Type() string { return "time" }

// or returns the flag's time, or now() when it was not given.
func (v *timeValue) or(now func() time.Time) time.Time {
	if v.set {
		return v.t
	}
	return now()
}
