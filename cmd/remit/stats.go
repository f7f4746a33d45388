// Stats command for the remit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiteasy/ledger/pkg/units"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show ledger-wide counters and configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "stats", err)
		}
		defer backend.Detach()

		state, err := newEngine(backend).State(cmd.Context())
		if err != nil {
			fail(exitUserError, "stats", err)
		}

		if flagJSON {
			return printJSON(map[string]any{
				"admin":                 string(state.Admin),
				"fee_rate_bps":          state.FeeRateBps,
				"transfer_count":        state.TransferCount,
				"total_volume_lamports": state.TotalVolume,
				"total_volume_usdc":     units.FormatUSDC(state.TotalVolume),
			})
		}

		fmt.Printf("admin:          %s\n", state.Admin)
		fmt.Printf("fee rate:       %d bps\n", state.FeeRateBps)
		fmt.Printf("transfer count: %d\n", state.TransferCount)
		fmt.Printf("total volume:   %s USDC\n", units.FormatUSDC(state.TotalVolume))
		return nil
	},
}
