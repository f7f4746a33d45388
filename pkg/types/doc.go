// Package types defines the Ledger and Vault interfaces, entity types,
// and standard error types for the RemitEasy escrow ledger.
package types
