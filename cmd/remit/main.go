// Package main provides the remit CLI: local tooling for the RemitEasy
// escrow ledger, plus the serve command that exposes it over HTTP.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}
