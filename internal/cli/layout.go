package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
)

// layoutCommand creates the layout command for computing treemap views.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()

	cmd := &cobra.Command{
		Use:   "layout <wallet.json|name>",
		Short: "Compute a treemap view of a wallet snapshot",
		Long: `Compute a squarified treemap view of a wallet snapshot.

Each tile's area is proportional to its BTC amount. With --group-by, tiles
represent tag groups or risk tiers instead of individual UTXOs. The output
is a view.json file (same format as 'render -f json') that can be rendered
to SVG/PNG/PDF using the 'render' command.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := c.loadWallet(ctx, args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts.Logger = c.Logger

			spinner := newSpinnerWithContext(ctx, "Computing treemap layout...")
			spinner.Start()

			view, cacheHit, err := runner.GenerateLayoutWithCacheInfo(ctx, w, opts)
			if err != nil {
				spinner.StopWithError("Layout failed")
				return fmt.Errorf("compute layout: %w", err)
			}
			spinner.Stop()

			if ctx.Err() != nil {
				return ctx.Err()
			}

			outputPath := output
			if outputPath == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				outputPath = base + ".view.json"
			}

			data, err := pipeline.MarshalView(view)
			if err != nil {
				return fmt.Errorf("serialize view: %w", err)
			}
			if err := os.WriteFile(outputPath, data, 0644); err != nil {
				return fmt.Errorf("write output %s: %w", outputPath, err)
			}

			printSuccess("Layout complete")
			printFile(outputPath)
			printStats(len(w.UTXOs), w.TotalBTC(), cacheHit)
			printNewline()
			printNextStep("Render", appName+" render "+args[0])
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.view.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVarP(&opts.GroupBy, "group-by", "g", opts.GroupBy, "tile grouping: none (default), tag, risk")

	return cmd
}
