package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pipeline"
)

// renderCommand creates the render command for producing visual artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output  string
		formats string
		noCache bool
	)
	opts := pipeline.Options{}
	opts.SetLayoutDefaults()
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render <wallet.json|name>",
		Short: "Render a wallet treemap to SVG, PNG, PDF, or JSON",
		Long: `Render a wallet snapshot as a squarified treemap.

Runs the full layout → render pipeline and writes one file per requested
format. Tiles are colored by risk tier by default; use --color-by group
for tag-based coloring.

PNG and PDF output require librsvg (rsvg-convert) on the PATH.`,
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
			opts.Formats = parseFormats(formats)

			spinner := newSpinnerWithContext(ctx, "Rendering treemap...")
			spinner.Start()

			result, err := runner.Execute(ctx, w, opts)
			if err != nil {
				spinner.StopWithError("Render failed")
				return fmt.Errorf("render: %w", err)
			}
			spinner.Stop()

			if ctx.Err() != nil {
				return ctx.Err()
			}

			base := output
			if base == "" {
				base = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			printSuccess("Render complete")
			for _, format := range opts.Formats {
				path := base + "." + format
				if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				printFile(path)
			}
			printStats(len(w.UTXOs), w.TotalBTC(), result.CacheInfo.RenderHit)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: input basename)")
	cmd.Flags().StringVarP(&formats, "formats", "f", "", "comma-separated formats: svg (default), png, pdf, json")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().StringVarP(&opts.GroupBy, "group-by", "g", opts.GroupBy, "tile grouping: none (default), tag, risk")
	cmd.Flags().StringVar(&opts.ColorBy, "color-by", opts.ColorBy, "tile coloring: risk (default), group")
	cmd.Flags().BoolVar(&opts.ShowLabels, "labels", opts.ShowLabels, "draw amount labels on tiles")

	return cmd
}
