// List command for the remit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiteasy/ledger/pkg/types"
)

var (
	listSender    string
	listRecipient string
	listStatus    string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List transfers, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var filter types.TransferFilter

		if listSender != "" {
			id, err := resolveIdentity(listSender)
			if err != nil {
				fail(exitUserError, "list", err)
			}
			filter.Sender = id
		}
		if listRecipient != "" {
			id, err := resolveIdentity(listRecipient)
			if err != nil {
				fail(exitUserError, "list", err)
			}
			filter.Recipient = id
		}
		if listStatus != "" {
			switch listStatus {
			case types.StatusPending, types.StatusCompleted, types.StatusCancelled:
				filter.Status = listStatus
			default:
				fail(exitUserError, "list", fmt.Errorf("invalid status %q (valid: %s, %s, %s)",
					listStatus, types.StatusPending, types.StatusCompleted, types.StatusCancelled))
			}
		}

		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "list", err)
		}
		defer backend.Detach()

		transfers, err := newEngine(backend).Transfers(cmd.Context(), filter)
		if err != nil {
			fail(exitSysError, "list", err)
		}

		return printTransferList(transfers)
	},
}

func init() {
	listCmd.Flags().StringVar(&listSender, "sender", "", "filter by sender wallet name or identity")
	listCmd.Flags().StringVar(&listRecipient, "recipient", "", "filter by recipient wallet name or identity")
	listCmd.Flags().StringVar(&listStatus, "status", "", "filter by status (pending, completed, cancelled)")
}
