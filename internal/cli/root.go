// Package cli implements the cronexp command line.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	cronexp "github.com/netresearch/go-cronexp"
	"github.com/netresearch/go-cronexp/internal/config"
)

const version = "0.1.0"

// globals are the persistent flags shared by every command.
type globals struct {
	logger  *slog.Logger
	clock   cronexp.Clock
	zone    zoneValue
	fold    foldValue
	verbose bool
}

// NewRoot returns the command tree. Zone and fold defaults come from
// CRONEXP_TZ and CRONEXP_FOLD.
func NewRoot(logger *slog.Logger) *cobra.Command {
	return newRoot(logger, cronexp.RealClock{}, config.FromEnv())
}

func newRoot(logger *slog.Logger, clock cronexp.Clock, env config.Env) *cobra.Command {
	g := &globals{logger: logger, clock: clock}
	if err := g.zone.Set(env.Location); err != nil {
		logger.Warn("ignoring environment default", "variable", config.EnvLocation, "value", env.Location, "error", err)
		g.zone.loc = nil
	}
	if err := g.fold.Set(env.Fold); err != nil {
		logger.Warn("ignoring environment default", "variable", config.EnvFold, "value", env.Fold, "error", err)
		g.fold.policy = cronexp.FoldSkip
	}

	root := &cobra.Command{
		Use:           "cronexp",
		Short:         "Parse cron expressions and list their occurrences",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.Var(&g.zone, "tz", "time zone to evaluate in (default: the host zone, or $"+config.EnvLocation+")")
	flags.Var(&g.fold, "fold", "repeated wall clocks: skip, earlier or later (default: $"+config.EnvFold+" or skip)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "log skipped local times")

	root.AddCommand(newNextCommand(g))
	root.AddCommand(newPrevCommand(g))
	root.AddCommand(newValidateCommand())
	root.AddCommand(newExplainCommand(g))
	root.AddCommand(newBookCommand(g))
	root.AddCommand(newVersionCommand())

	return root
}

func (g *globals) engineLogger() cronexp.Logger {
	if !g.verbose {
		return cronexp.DiscardLogger
	}
	return cronexp.NewSlogLogger(g.logger)
}

// engine builds an engine from the persistent flags.
func (g *globals) engine() *cronexp.Engine {
	opts := []cronexp.Option{
		cronexp.WithFoldPolicy(g.fold.policy),
		cronexp.WithLogger(g.engineLogger()),
	}
	if g.zone.loc != nil {
		opts = append(opts, cronexp.WithLocation(g.zone.loc))
	}
	return cronexp.NewEngine(opts...)
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version)
		},
	}
}
