// Send command for the remit CLI.
package main

import (
	"github.com/spf13/cobra"
)

var (
	sendFrom      string
	sendTo        string
	sendAmount    string
	sendMemo      string
	sendReference string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Open an escrowed transfer from one wallet to another",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sender, err := resolveIdentity(sendFrom)
		if err != nil {
			fail(exitUserError, "send", err)
		}
		recipient, err := resolveIdentity(sendTo)
		if err != nil {
			fail(exitUserError, "send", err)
		}
		lamports, err := parseAmountUSDC(sendAmount)
		if err != nil {
			fail(exitUserError, "send", err)
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "send", err)
		}
		defer backend.Detach()

		transfer, err := newEngine(backend).Send(cmd.Context(), sender, recipient, lamports, sendMemo, sendReference)
		if err != nil {
			fail(exitUserError, "send", err)
		}

		return printTransfer(transfer)
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendFrom, "from", "", "sender wallet name or identity (required)")
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient wallet name or identity (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "amount in USDC, e.g. 12.50 (required)")
	sendCmd.Flags().StringVar(&sendMemo, "memo", "", "free-text memo, at most 200 bytes")
	sendCmd.Flags().StringVar(&sendReference, "reference", "", "explicit reference nonce (default: generated)")
	sendCmd.MarkFlagRequired("from")
	sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagRequired("amount")
}
