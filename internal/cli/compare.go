package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/due/pkg/errors"
	dueio "github.com/matzehuels/due/pkg/io"
	"github.com/matzehuels/due/pkg/pipeline"
)

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var output string
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "compare [lines.toml]",
		Short: "Time every envelope algorithm and check them against brute force",
		Long: `Build the envelope of one line set with every algorithm.

Each build is timed and compared cell by cell with the brute-force envelope.
The command fails if any algorithm disagrees. Without a file, --random lines
are generated; --output saves the generated set so a failure can be replayed.`,
		Example: `  due compare lines.toml
  due compare --random 50000 --upper 100000 --seed 7 -o failing.toml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runCompare(cmd.Context(), cmd, opts, output)
		},
	}

	cmd.Flags().Int64Var(&opts.Upper, "upper", 0, "override the upper bound of the domain")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "seed for the randomized algorithm and random input")
	cmd.Flags().IntVar(&opts.Random, "random", 0, "number of random lines when no file is given")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the compared line set to this TOML file")

	return cmd
}

// runCompare times all algorithms and prints a summary table.
func (c *CLI) runCompare(ctx context.Context, cmd *cobra.Command, opts pipeline.Options, output string) error {
	opts.Logger = loggerFromContext(ctx)
	p := printer{w: cmd.OutOrStdout()}
	prog := newProgress(opts.Logger, "compare")

	spinner := newSpinner(ctx, c.progressOut(), "Comparing algorithms...")
	spinner.Start()
	result, err := c.newRunner().Compare(ctx, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return fmt.Errorf("compare: %w", err)
	}
	prog.done("compared %s", plural(len(result.Timings), "algorithm"))

	if output != "" {
		if err := dueio.ExportLines(result.Lines, output); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
	}

	p.info("%s over [%d, %d], %s in the envelope",
		plural(result.Stats.Inputs, "line"), result.Lines.Lower, result.Lines.Upper, plural(result.Stats.Cells, "cell"))
	p.keyValue("run", result.RunID)
	p.block(timingTable(result.Timings))
	if output != "" {
		p.file(output)
	}

	if !result.AllAgree() {
		p.failure("Algorithms disagree with brute force")
		return errors.New(errors.ErrCodeMismatch, "run %s: algorithms disagree with brute force", result.RunID)
	}
	p.success("All algorithms agree")
	return nil
}
