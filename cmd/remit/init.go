// Init command for the remit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	initFeeBps uint16
	initWallet string
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the ledger with an admin wallet and a fee rate",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		admin, err := resolveIdentity(initWallet)
		if err != nil {
			fail(exitUserError, "init", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "init", err)
		}
		defer backend.Detach()

		state, err := newEngine(backend).Initialize(cmd.Context(), admin, initFeeBps)
		if err != nil {
			fail(exitUserError, "init", err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"admin":        string(state.Admin),
				"fee_rate_bps": state.FeeRateBps,
			})
		}
		fmt.Printf("ledger initialized\nadmin:    %s\nfee rate: %d bps\n", state.Admin, state.FeeRateBps)
		return nil
	},
}

func init() {
	initCmd.Flags().Uint16Var(&initFeeBps, "fee-bps", 0, "fee rate in basis points (0-10000)")
	initCmd.Flags().StringVar(&initWallet, "wallet", "", "admin wallet name or identity (required)")
	initCmd.MarkFlagRequired("wallet")
}
