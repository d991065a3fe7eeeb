package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/risk"
)

// assessCommand creates the assess command for scoring spending combinations.
func (c *CLI) assessCommand() *cobra.Command {
	var (
		inputs  string
		outputs string
	)

	cmd := &cobra.Command{
		Use:   "assess <wallet.json|name>",
		Short: "Score the privacy risk of a spending combination",
		Long: `Score the privacy risk of spending a combination of UTXOs together.

By default all UTXOs in the wallet are assessed as if spent in one
transaction. Use --inputs to select specific outpoints (txid:vout,...) and
--outputs to name destination addresses, which enables address-reuse
detection against the inputs.

Thresholds come from the heuristics section of the config file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := c.loadWallet(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			selected := w.UTXOs
			if inputs != "" {
				selected, err = w.Select(parseList(inputs))
				if err != nil {
					return err
				}
			}

			assessment, err := c.Config.Heuristics.Assess(selected, parseList(outputs))
			if err != nil {
				return err
			}

			printAssessment(assessment, len(selected))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputs, "inputs", "i", "", "comma-separated outpoints (txid:vout) to spend")
	cmd.Flags().StringVarP(&outputs, "outputs", "o", "", "comma-separated destination addresses")
	return cmd
}

// printAssessment renders an assessment for terminal display.
func printAssessment(a risk.Assessment, inputCount int) {
	fmt.Println(StyleTitle.Render("Privacy Risk Assessment"))
	printKeyValue("risk", riskBadge(a.Label))
	printKeyValue("inputs", fmt.Sprintf("%d", inputCount))
	printNewline()

	fmt.Println(StyleHighlight.Render("Findings"))
	for _, reason := range a.Reasons {
		printDetail("• %s", reason)
	}
	printNewline()

	fmt.Println(StyleHighlight.Render("Recommendations"))
	for _, rec := range a.Recommendations {
		printDetail("• %s", rec)
	}

	if a.SafeAlternative != "" {
		printNewline()
		printWarning("%s", strings.TrimSpace(a.SafeAlternative))
	}
}
