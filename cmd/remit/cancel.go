// Cancel command for the remit CLI.
package main

import (
	"github.com/spf13/cobra"
)

var cancelWallet string

var cancelCmd = &cobra.Command{
	Use:   "cancel ADDRESS",
	Short: "Cancel a pending transfer as its sender",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := resolveIdentity(cancelWallet)
		if err != nil {
			fail(exitUserError, "cancel", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "cancel", err)
		}
		defer backend.Detach()

		transfer, err := newEngine(backend).Cancel(cmd.Context(), caller, args[0])
		if err != nil {
			fail(exitUserError, "cancel", err)
		}

		return printTransfer(transfer)
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelWallet, "wallet", "", "sender wallet name or identity (required)")
	cancelCmd.MarkFlagRequired("wallet")
}
