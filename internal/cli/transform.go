package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/due/pkg/pipeline"
)

// maxPrintedGrid is the largest grid the transform command prints.
const maxPrintedGrid = 64

// transformCommand creates the transform command.
func (c *CLI) transformCommand() *cobra.Command {
	var grid bool
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "transform [sites.toml]",
		Short: "Build the nearest-site transform of a grid",
		Long: `Build the post-office transform of a site set on the [1,u]x[1,u] grid.

Every grid point is labelled with the ID of its nearest site. Each row is
solved as one discrete upper envelope, so --algorithm selects the envelope
construction used per row. Without a file, --random sites are generated on a
grid of size --size.`,
		Example: `  due transform sites.toml --grid
  due transform sites.toml --sorted --algorithm deterministic
  due transform --random 500 --size 1024 --verify`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.Input = args[0]
			}
			return c.runTransform(cmd.Context(), cmd, opts, grid)
		},
	}

	cmd.Flags().StringVarP(&opts.Algorithm, "algorithm", "a", pipeline.DefaultAlgorithm, "per-row algorithm: ric, deterministic, duality, bruteforce")
	cmd.Flags().Int64Var(&opts.Upper, "size", 0, "override the grid bound u")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", pipeline.DefaultSeed, "seed for the randomized algorithm and random input")
	cmd.Flags().IntVar(&opts.Random, "random", 0, "number of random sites when no file is given")
	cmd.Flags().BoolVar(&opts.Sorted, "sorted", false, "sites are already sorted by (x, y)")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "check the result against brute force")
	cmd.Flags().BoolVar(&grid, "grid", false, fmt.Sprintf("print the nearest-site grid (u <= %d)", maxPrintedGrid))

	return cmd
}

// runTransform builds the transform and prints its statistics.
func (c *CLI) runTransform(ctx context.Context, cmd *cobra.Command, opts pipeline.Options, grid bool) error {
	opts.Logger = loggerFromContext(ctx)
	p := printer{w: cmd.OutOrStdout()}

	spinner := newSpinner(ctx, c.progressOut(), "Sweeping rows...")
	spinner.Start()
	result, err := c.newRunner().Transform(ctx, opts)
	spinner.Stop()
	if err != nil {
		if spinner.Cancelled() {
			return ctx.Err()
		}
		return fmt.Errorf("transform: %w", err)
	}

	tr := result.Transform
	st := tr.Stats()
	p.success("Transform of %s on a %dx%d grid", plural(st.Sites, "site"), tr.U(), tr.U())
	p.stats(
		plural(st.Columns, "column"),
		plural(st.Cells, "cell"),
		result.Algorithm.String(),
		result.Stats.BuildTime.String(),
	)
	if st.Unique < st.Sites {
		p.warning("%s coincide with an earlier site", plural(st.Sites-st.Unique, "site"))
	}
	if result.Verified {
		p.success("Matches brute force (%s)", result.Stats.VerifyTime)
	}

	if grid {
		if tr.U() > maxPrintedGrid {
			p.warning("grid of size %d is too large to print", tr.U())
			return nil
		}
		p.block(siteGrid(tr))
	}
	return nil
}
