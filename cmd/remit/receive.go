// Receive command for the remit CLI.
package main

import (
	"github.com/spf13/cobra"
)

var receiveWallet string

var receiveCmd = &cobra.Command{
	Use:   "receive ADDRESS",
	Short: "Claim a pending transfer as its recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caller, err := resolveIdentity(receiveWallet)
		if err != nil {
			fail(exitUserError, "receive", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "receive", err)
		}
		defer backend.Detach()

		transfer, err := newEngine(backend).Receive(cmd.Context(), caller, args[0])
		if err != nil {
			fail(exitUserError, "receive", err)
		}

		return printTransfer(transfer)
	},
}

func init() {
	receiveCmd.Flags().StringVar(&receiveWallet, "wallet", "", "recipient wallet name or identity (required)")
	receiveCmd.MarkFlagRequired("wallet")
}
