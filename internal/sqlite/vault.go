// Custody primitive backed by the accounts and escrows tables. All
// balance movements run on the unit of work's SQL transaction, so a
// failed lifecycle operation leaves no partial movement behind.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/remiteasy/ledger/pkg/types"
)

// Compile-time interface check: txVault must implement Vault.
var _ types.Vault = (*txVault)(nil)

// txVault implements the Vault interface on a SQL transaction.
type txVault struct {
	tx *sql.Tx
}

// Lock moves amount from the holdings of from into the escrow slot.
// Returns ErrInsufficientFunds if from does not hold amount.
func (v *txVault) Lock(handle types.EscrowHandle, from types.Identity, amount uint64) error {
	balance, err := v.Balance(from)
	if err != nil {
		return err
	}
	if balance < amount {
		return types.ErrInsufficientFunds
	}
	if err := v.setAccountBalance(from, balance-amount); err != nil {
		return err
	}

	held, ok, err := v.escrowBalance(handle)
	if err != nil {
		return err
	}
	if !ok {
		held = 0
	}
	if amount > math.MaxUint64-held {
		return types.ErrArithmeticOverflow
	}
	return v.setEscrowBalance(handle, held+amount)
}

// Release moves amount out of the escrow slot to the given party.
func (v *txVault) Release(handle types.EscrowHandle, to types.Identity, amount uint64) error {
	return v.payOut(handle, to, amount)
}

// Refund returns amount from the escrow slot to the given party.
func (v *txVault) Refund(handle types.EscrowHandle, to types.Identity, amount uint64) error {
	return v.payOut(handle, to, amount)
}

// payOut debits the escrow slot and credits the party. Shared by
// Release and Refund; the two differ only in which party is paid.
func (v *txVault) payOut(handle types.EscrowHandle, to types.Identity, amount uint64) error {
	held, ok, err := v.escrowBalance(handle)
	if err != nil {
		return err
	}
	if !ok {
		return types.ErrUnknownEscrow
	}
	if held < amount {
		return types.ErrInsufficientEscrowBalance
	}
	if err := v.setEscrowBalance(handle, held-amount); err != nil {
		return err
	}
	return v.Deposit(to, amount)
}

// Escrow returns the balance currently held in the escrow slot.
func (v *txVault) Escrow(handle types.EscrowHandle) (uint64, error) {
	held, ok, err := v.escrowBalance(handle)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, types.ErrUnknownEscrow
	}
	return held, nil
}

// Deposit credits amount to the holdings of a party.
func (v *txVault) Deposit(to types.Identity, amount uint64) error {
	balance, err := v.Balance(to)
	if err != nil {
		return err
	}
	if amount > math.MaxUint64-balance {
		return types.ErrArithmeticOverflow
	}
	return v.setAccountBalance(to, balance+amount)
}

// Balance returns the spendable holdings of a party. Unknown parties
// hold zero.
func (v *txVault) Balance(of types.Identity) (uint64, error) {
	var balanceStr string
	err := v.tx.QueryRow(
		"SELECT balance FROM accounts WHERE identity = ?", of.String(),
	).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("getting balance of %s: %w", of, err)
	}
	return parseAmount(balanceStr)
}

func (v *txVault) setAccountBalance(id types.Identity, balance uint64) error {
	_, err := v.tx.Exec(
		"INSERT INTO accounts (identity, balance) VALUES (?, ?) ON CONFLICT(identity) DO UPDATE SET balance = excluded.balance",
		id.String(), formatAmount(balance),
	)
	if err != nil {
		return fmt.Errorf("setting balance of %s: %w", id, err)
	}
	return nil
}

func (v *txVault) escrowBalance(handle types.EscrowHandle) (uint64, bool, error) {
	var balanceStr string
	err := v.tx.QueryRow(
		"SELECT balance FROM escrows WHERE handle = ?", string(handle),
	).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("getting escrow %s: %w", handle, err)
	}
	balance, err := parseAmount(balanceStr)
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

func (v *txVault) setEscrowBalance(handle types.EscrowHandle, balance uint64) error {
	_, err := v.tx.Exec(
		"INSERT INTO escrows (handle, balance) VALUES (?, ?) ON CONFLICT(handle) DO UPDATE SET balance = excluded.balance",
		string(handle), formatAmount(balance),
	)
	if err != nil {
		return fmt.Errorf("setting escrow %s: %w", handle, err)
	}
	return nil
}
