package sqlite

import (
	"database/sql"
	"strconv"

	"github.com/remiteasy/ledger/pkg/types"
)

// Compile-time interface check: ledgerTx must implement Tx.
var _ types.Tx = (*ledgerTx)(nil)

// ledgerTx is one unit of work. It wraps a SQL transaction and holds
// the backend's write lock until Commit or Rollback.
type ledgerTx struct {
	backend *Backend
	tx      *sql.Tx
	vault   *txVault
	done    bool
}

// Vault returns the custody primitive bound to this unit of work.
func (lt *ledgerTx) Vault() types.Vault { return lt.vault }

// Commit applies every write made through this unit of work.
func (lt *ledgerTx) Commit() error {
	if lt.done {
		return sql.ErrTxDone
	}
	err := lt.tx.Commit()
	lt.finish()
	return err
}

// Rollback discards every write made through this unit of work.
// Safe to call after Commit; the call is then a no-op.
func (lt *ledgerTx) Rollback() error {
	if lt.done {
		return nil
	}
	err := lt.tx.Rollback()
	lt.finish()
	return err
}

func (lt *ledgerTx) finish() {
	lt.done = true
	lt.backend.writeMu.Unlock()
}

// formatAmount and parseAmount convert uint64 money values to and from
// their TEXT column representation.
func formatAmount(v uint64) string { return strconv.FormatUint(v, 10) }

func parseAmount(s string) (uint64, error) { return strconv.ParseUint(s, 10, 64) }
