package types

// EscrowHandle identifies one escrow slot held under program custody.
// The lifecycle core uses the transfer's derived address as the handle,
// so each escrow slot is owned by exactly one transfer record.
type EscrowHandle string

// Ledger defines backend-agnostic storage access. Callers attach to a
// backend, run units of work through Begin, and detach when done.
type Ledger interface {
	// Attach connects the Ledger to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, Begin returns ErrLedgerDetached.
	Detach() error

	// Begin opens an atomic unit of work. Units of work are serialized:
	// two units touching the same record never interleave.
	Begin() (Tx, error)
}

// Tx is a single all-or-nothing unit of work. Either Commit applies
// every write made through the Tx and its Vault, or Rollback (also run
// by a deferred call after an error) discards all of them.
type Tx interface {
	// State returns the program state.
	// Returns ErrNotInitialized if initialize has not run.
	State() (*ProgramState, error)

	// CreateState stores the initial program state.
	// Returns ErrAlreadyInitialized if state already exists.
	CreateState(s *ProgramState) error

	// PutState overwrites the program state.
	PutState(s *ProgramState) error

	// Transfer returns the transfer stored at addr.
	// Returns ErrNotFound if no such record exists.
	Transfer(addr string) (*Transfer, error)

	// CreateTransfer stores a new transfer record.
	CreateTransfer(t *Transfer) error

	// UpdateTransfer overwrites an existing transfer record.
	// Returns ErrNotFound if no record exists at t.Address.
	UpdateTransfer(t *Transfer) error

	// Transfers returns all transfers matching the filter, newest first.
	Transfers(filter TransferFilter) ([]*Transfer, error)

	// Vault returns the custody primitive bound to this unit of work.
	Vault() Vault

	Commit() error
	Rollback() error
}

// TransferFilter narrows a Transfers query. Zero fields match everything.
type TransferFilter struct {
	Sender    Identity
	Recipient Identity
	Status    string
}

// Vault is the custody primitive that physically moves value. The
// lifecycle core invokes it but does not own the balances behind it.
// All movements within one Tx commit or roll back together.
type Vault interface {
	// Lock moves amount from the holdings of from into the escrow slot
	// identified by handle. Returns ErrInsufficientFunds if from does
	// not hold amount.
	Lock(handle EscrowHandle, from Identity, amount uint64) error

	// Release moves amount out of the escrow slot to the given party.
	// Returns ErrInsufficientEscrowBalance if the slot holds less than
	// amount, ErrUnknownEscrow if the slot does not exist.
	Release(handle EscrowHandle, to Identity, amount uint64) error

	// Refund returns amount from the escrow slot to the given party.
	// Same failure modes as Release.
	Refund(handle EscrowHandle, to Identity, amount uint64) error

	// Escrow returns the balance currently held in the escrow slot.
	// Returns ErrUnknownEscrow if the slot does not exist.
	Escrow(handle EscrowHandle) (uint64, error)

	// Deposit credits amount to the holdings of a party. This is the
	// funding side of custody, outside the transfer lifecycle.
	Deposit(to Identity, amount uint64) error

	// Balance returns the spendable holdings of a party.
	Balance(of Identity) (uint64, error)
}
