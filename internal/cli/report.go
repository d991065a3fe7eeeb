package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/cache"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/httputil"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/pricing"
	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/report"
)

// reportCommand creates the report command for portfolio reports.
func (c *CLI) reportCommand() *cobra.Command {
	var (
		output   string
		format   string
		currency string
		noPrices bool
	)

	cmd := &cobra.Command{
		Use:   "report <wallet.json|name>",
		Short: "Generate a portfolio report with fiat valuations",
		Long: `Generate a portfolio report for a wallet snapshot.

The report contains per-UTXO rows, per-tag and per-risk totals, and a
cumulative value series by creation date. Fiat values are fetched from the
configured price source; failed lookups leave fiat fields null rather than
failing the report. Use --no-prices to skip lookups entirely.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := c.loadWallet(ctx, args[0])
			if err != nil {
				return err
			}

			var prices report.PriceSource
			if !noPrices {
				prices = pricing.NewClient(c.Config.Pricing.BaseURL, c.priceCache())
			}
			if currency == "" {
				currency = c.Config.Pricing.Currency
			}

			spinner := newSpinnerWithContext(ctx, "Building report...")
			spinner.Start()

			rep, err := report.Build(ctx, w, prices, currency)
			if err != nil {
				spinner.StopWithError("Report failed")
				return fmt.Errorf("build report: %w", err)
			}
			spinner.Stop()

			if ctx.Err() != nil {
				return ctx.Err()
			}

			path := output
			if path == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				path = base + ".report." + format
			}

			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			defer f.Close()

			switch format {
			case "json":
				err = rep.WriteJSON(f)
			case "csv":
				err = rep.WriteCSV(f)
			default:
				return fmt.Errorf("invalid format: %q (must be one of: json, csv)", format)
			}
			if err != nil {
				return err
			}

			printSuccess("Report complete")
			printFile(path)
			printStats(len(rep.Rows), rep.TotalBTC, false)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.report.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json (default), csv")
	cmd.Flags().StringVar(&currency, "currency", "", "fiat currency (default from config)")
	cmd.Flags().BoolVar(&noPrices, "no-prices", false, "skip price lookups")

	return cmd
}

// priceCache builds the HTTP response cache for the pricing client.
// A nil cache disables response caching but not the client itself.
func (c *CLI) priceCache() *httputil.Cache {
	dir := c.Config.CacheDir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return nil
		}
		dir = d
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "http"), cache.TTLPrice)
	if err != nil {
		return nil
	}
	return hc
}
