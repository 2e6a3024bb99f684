package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/due/pkg/pipeline"
)

// defaultCellLimit caps the rows printed by the envelope command.
const defaultCellLimit = 50

// envelopeCommand creates the envelope command.
func (c *CLI) envelopeCommand() *cobra.Command {
	var (
		lower int64
		limit int
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "envelope [lines.toml]",
		Short: "Build the discrete upper envelope of a line set",
		Long: `Build the discrete upper envelope of a set of integer lines.

The input is a TOML file with lower and upper bounds and a [[line]] table per
line (slope m, intercept b, optional id). Without a file, --random lines are
generated from --seed.

The envelope is printed as a table of cells: each cell names the line that is
highest on the integer range [left, right]. Ties go to the smaller slope.`,
		Example: `  due envelope lines.toml
  due envelope lines.toml --algorithm duality --verify
  due envelope --random 100000 --upper 1000000 --limit 20`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Input = args[0]
			}
			if cmd.Flags().Changed("lower") {
				opts.Lower = &lower
			}
			return c.runEnvelope(cmd.Context(), cmd, opts, limit)
		},
	}

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "construction algorithm: ric, deterministic, duality, bruteforce")
	cmd.Flags().Int64Var(&lower, "lower", 0, "override the lower bound of the domain")
	cmd.Flags().Int64Var(&opts.Upper, "upper", 0, "override the upper bound of the domain")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "seed for the randomized algorithm and random input")
	cmd.Flags().IntVar(&opts.Random, "random", 0, "number of random lines when no file is given")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the result against brute force")
	cmd.Flags().IntVar(&limit, "limit", defaultCellLimit, "maximum cells to print (0 prints all)")

	return cmd
}

// runEnvelope builds the envelope and prints its cells.
func (c *CLI) runEnvelope(ctx context.Context, cmd *cobra.Command, opts pipeline.Options, limit int) error {
	opts.Logger = loggerFromContext(ctx)
	p := printer{w: cmd.OutOrStdout()}

	spinner := newSpinner(ctx, c.progressOut(), "Building envelope...")
	spinner.Start()
	result, err := c.newRunner().Envelope(ctx, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return fmt.Errorf("envelope: %w", err)
	}

	env := result.Envelope
	p.success("Envelope of %s over [%d, %d]", plural(result.Stats.Inputs, "line"), env.Lower(), env.Upper())
	p.stats(
		plural(env.Len(), "cell"),
		result.Algorithm.String(),
		result.Stats.BuildTime.String(),
	)
	if result.Verified {
		p.success("Matches brute force (%s)", result.Stats.VerifyTime)
	}
	p.block(cellTable(env.Cells(), limit))
	return nil
}
