// Show command for the remit CLI.
package main

import (
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show ADDRESS",
	Short: "Show a transfer record by address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backend, err := attachBackend()
		if err != nil {
			fail(exitSysError, "show", err)
		}
		defer backend.Detach()

		transfer, err := newEngine(backend).Transfer(cmd.Context(), args[0])
		if err != nil {
			fail(exitUserError, "show", err)
		}

		return printTransfer(transfer)
	},
}
