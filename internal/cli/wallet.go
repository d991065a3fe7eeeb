package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/MorningRevolution/utxo-intelligence-sub000/pkg/wallet"
)

// walletCommand creates the wallet management command.
func (c *CLI) walletCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Manage stored wallet snapshots",
	}

	cmd.AddCommand(c.walletListCommand())
	cmd.AddCommand(c.walletShowCommand())
	cmd.AddCommand(c.walletExportCommand())
	cmd.AddCommand(c.walletDeleteCommand())

	return cmd
}

func (c *CLI) walletListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored wallets",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			names, err := st.List(ctx)
			if err != nil {
				return fmt.Errorf("list wallets: %w", err)
			}
			if len(names) == 0 {
				printInfo("No wallets stored")
				return nil
			}
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func (c *CLI) walletShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a stored wallet's composition",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			w, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}

			fmt.Println(StyleTitle.Render(w.Name))
			printKeyValue("utxos", fmt.Sprintf("%d", len(w.UTXOs)))
			printKeyValue("total", fmt.Sprintf("%.8f BTC", w.TotalBTC()))
			printNewline()
			for i := range w.UTXOs {
				u := &w.UTXOs[i]
				fmt.Printf("  %s  %12.8f BTC  %s  %v\n",
					riskBadge(u.Risk), u.BTC(), StyleDim.Render(u.OutPoint()), u.Tags)
			}
			return nil
		},
	}
}

func (c *CLI) walletExportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <name>",
		Short: "Export a stored wallet to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			w, err := st.Load(ctx, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return wallet.WriteJSON(w, os.Stdout)
			}
			if err := wallet.ExportJSON(w, output); err != nil {
				return err
			}
			printSuccess("Exported wallet %q", w.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) walletDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a stored wallet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close(ctx)

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			printSuccess("Deleted wallet %q", args[0])
			return nil
		},
	}
}
