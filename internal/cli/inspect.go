package cli

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	cronexp "github.com/netresearch/go-cronexp"
	"github.com/netresearch/go-cronexp/internal/codec"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate EXPR...",
		Short: "Check expressions and report why invalid ones are rejected",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			errs := cronexp.ValidateAll(args)
			for i, expr := range args {
				err, bad := errs[i]
				if !bad {
					fmt.Fprintf(w, "ok\t%s\n", expr)
					continue
				}
				fmt.Fprintf(w, "invalid\t%s\t%s\t%v\n", expr, errorKind(err), err)
			}
			if len(errs) > 0 {
				return fmt.Errorf("%d of %d expressions are invalid", len(errs), len(args))
			}
			return nil
		},
	}
}

// errorKind names the rejection reason of a parse error.
func errorKind(err error) string {
	var pe *cronexp.ParseError
	if errors.As(err, &pe) && pe.Kind != nil {
		return pe.Kind.Error()
	}
	return "error"
}

func newExplainCommand(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "explain EXPR",
		Short: "Describe how an expression is read and when it fires",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := g.engine().Analyze(args[0], g.clock)
			if !a.Valid {
				return a.Err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			row := func(key, value string) { fmt.Fprintf(tw, "%s:\t%s\n", key, value) }
			row("expression", args[0])
			row("canonical", a.Schedule.String())
			row("dialect", a.Dialect.String())
			row("fingerprint", a.Schedule.Fingerprint())
			diag, err := diagnoseCBOR(a.Schedule)
			if err != nil {
				return err
			}
			row("cbor", diag)
			for _, u := range []cronexp.Unit{
				cronexp.Second, cronexp.Minute, cronexp.Hour,
				cronexp.DayOfMonth, cronexp.Month, cronexp.DayOfWeek, cronexp.Year,
			} {
				if text, ok := a.Fields[u.String()]; ok {
					row(u.String(), describeField(a.Schedule.Field(u), text))
				}
			}
			row("next", formatRun(a.NextRun))
			row("prev", formatRun(a.PrevRun))
			for _, w := range a.Warnings {
				row("warning", w)
			}
			return tw.Flush()
		},
	}
}

// describeField appends the sorted member list to a constrained field.
func describeField(f cronexp.Field, text string) string {
	if f.Kind() != cronexp.KindSet {
		return text + " (" + f.Kind().String() + ")"
	}
	vals := f.Values()
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprint(v)
	}
	return text + " [" + strings.Join(parts, " ") + "]"
}

// diagnoseCBOR renders the binary form of s in diagnostic notation.
func diagnoseCBOR(s cronexp.Schedule) (string, error) {
	data, err := s.MarshalCBOR()
	if err != nil {
		return "", err
	}
	return codec.Diagnose(data)
}

func formatRun(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.Format(time.RFC3339)
}
