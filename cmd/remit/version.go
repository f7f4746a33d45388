// Version command for the remit CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is the remit CLI version string.
const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the remit version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("remit", version)
	},
}
