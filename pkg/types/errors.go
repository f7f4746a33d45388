package types

import "errors"

// Lifecycle precondition errors. Every one of these reflects a violated
// precondition, not a transient fault: the failed operation performs no
// state changes and retrying without corrected inputs will fail again.
var (
	ErrInvalidAmount             = errors.New("transfer amount must be greater than zero")
	ErrMemoTooLong               = errors.New("memo is too long (max 200 bytes)")
	ErrInvalidFeeRate            = errors.New("invalid fee rate (max 10000 basis points)")
	ErrTransferNotPending        = errors.New("transfer is not in pending status")
	ErrUnauthorizedCancellation  = errors.New("only the sender can cancel this transfer")
	ErrUnauthorizedReceipt       = errors.New("only the recipient can receive this transfer")
	ErrInsufficientEscrowBalance = errors.New("insufficient balance in escrow")
	ErrArithmeticOverflow        = errors.New("arithmetic overflow")
)

// Custody errors surfaced by Vault implementations.
var (
	ErrInsufficientFunds = errors.New("insufficient funds to lock")
	ErrUnknownEscrow     = errors.New("unknown escrow handle")
)

// Storage and bootstrap errors.
var (
	ErrNotFound           = errors.New("entity not found")
	ErrAlreadyInitialized = errors.New("ledger is already initialized")
	ErrNotInitialized     = errors.New("ledger is not initialized")
	ErrInvalidIdentity    = errors.New("invalid identity")
	ErrInvalidData        = errors.New("invalid entity data")
	ErrDuplicateTransfer  = errors.New("transfer already exists at derived address")
)

// Ledger lifecycle errors.
var (
	ErrLedgerDetached  = errors.New("ledger is detached")
	ErrAlreadyAttached = errors.New("ledger is already attached")
)
