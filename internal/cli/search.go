package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	cronexp "github.com/netresearch/go-cronexp"
)

type searchFlags struct {
	from  timeValue
	count int
}

func (f *searchFlags) register(cmd *cobra.Command) {
	cmd.Flags().Var(&f.from, "from", "reference time in RFC 3339 (default: now)")
	cmd.Flags().IntVarP(&f.count, "count", "n", 1, "number of occurrences to print")
}

func newNextCommand(g *globals) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "next EXPR",
		Short: "Print the next occurrences of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, &f, args[0], (*cronexp.Iterator).Next)
		},
	}
	f.register(cmd)
	return cmd
}

func newPrevCommand(g *globals) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "prev EXPR",
		Short: "Print the previous occurrences of an expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, g, &f, args[0], (*cronexp.Iterator).Prev)
		},
	}
	f.register(cmd)
	return cmd
}

var errBadCount = errors.New("--count must be at least 1")

func runSearch(cmd *cobra.Command, g *globals, f *searchFlags, expr string, move func(*cronexp.Iterator) (time.Time, bool)) error {
	if f.count < 1 {
		return errBadCount
	}
	s, err := cronexp.Parse(expr)
	if err != nil {
		return err
	}
	it := g.engine().Iter(s, f.from.or(g.clock.Now))
	printTimes(cmd.OutOrStdout(), it, move, f.count)
	if it.Exhausted() {
		cmd.PrintErrln("no further occurrences")
	}
	return nil
}

// printTimes writes up to n occurrences, one per line.
func printTimes(w io.Writer, it *cronexp.Iterator, move func(*cronexp.Iterator) (time.Time, bool), n int) {
	for range n {
		t, ok := move(it)
		if !ok {
			return
		}
		fmt.Fprintln(w, t.Format(time.RFC3339))
	}
}
