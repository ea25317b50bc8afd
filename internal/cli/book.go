package cli

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	cronexp "github.com/netresearch/go-cronexp"
	"github.com/netresearch/go-cronexp/internal/config"
)

func newBookCommand(g *globals) *cobra.Command {
	var f searchFlags
	cmd := &cobra.Command{
		Use:   "book FILE",
		Short: "List upcoming runs for every schedule in a YAML or JSONC book",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.count < 1 {
				return errBadCount
			}
			book, err := config.LoadFile(args[0])
			if err != nil {
				return err
			}
			compiled, err := book.Compile(config.Env{
				Location: g.zone.String(),
				Fold:     g.fold.String(),
			})
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			// Explicit flags win over the book.
			if cmd.Flags().Changed("tz") {
				compiled.Location = g.zone.loc
			}
			if cmd.Flags().Changed("fold") {
				compiled.Fold = g.fold.policy
			}

			engine := compiled.Engine(g.engineLogger())
			runs, err := upcoming(cmd.Context(), engine, compiled.Entries, f.from.or(g.clock.Now), f.count)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "# %s, fold %s\n", compiled.Location, compiled.Fold)
			for i, entry := range compiled.Entries {
				fmt.Fprintf(w, "%s\t%s\n", entry.Name, entry.Schedule)
				if len(runs[i]) == 0 {
					fmt.Fprintln(w, "  none")
				}
				for _, t := range runs[i] {
					fmt.Fprintf(w, "  %s\n", t.Format(time.RFC3339))
				}
			}
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// upcoming computes the next n runs of every entry concurrently. The result
// is indexed like entries.
func upcoming(ctx context.Context, engine *cronexp.Engine, entries []config.CompiledEntry, from time.Time, n int) ([][]time.Time, error) {
	runs := make([][]time.Time, len(entries))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))
	for i, entry := range entries {
		group.Go(func() error {
			it := engine.Iter(entry.Schedule, from)
			for range n {
				if err := ctx.Err(); err != nil {
					return err
				}
				t, ok := it.Next()
				if !ok {
					break
				}
				runs[i] = append(runs[i], t)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}
