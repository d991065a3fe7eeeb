package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// importCommand creates the import command for loading wallet snapshots.
func (c *CLI) importCommand() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import <wallet.json>",
		Short: "Import a wallet snapshot into the local store",
		Long: `Import a wallet snapshot from a JSON file.

Every UTXO is validated (txid format, address, amount range, tags) and
duplicate outpoints are rejected. The validated snapshot is saved to the
wallet store under its name, or under --name when given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			w, err := wallet.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("import %s: %w", args[0], err)
			}
			if name != "" {
				w, err = wallet.New(name, w.UTXOs)
				if err != nil {
					return err
				}
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			if err := st.Save(ctx, w); err != nil {
				return fmt.Errorf("save wallet: %w", err)
			}

			printSuccess("Imported wallet %q", w.Name)
			printStats(len(w.UTXOs), w.TotalBTC(), false)
			printNewline()
			printNextStep("Assess", appName+" assess "+w.Name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "store under this name instead of the snapshot's own")
	return cmd
}
