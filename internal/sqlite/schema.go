// Package sqlite implements the SQLite storage backend for the
// RemitEasy ledger. One database file holds the program state
// singleton, transfer records, and the custody balances (accounts and
// escrow slots) so that a unit of work over all of them commits or
// rolls back as one SQL transaction.
package sqlite

// Schema DDL. Monetary columns are stored as decimal TEXT so the full
// uint64 range survives the round trip (SQLite INTEGER is signed).
const (
	createState = `CREATE TABLE IF NOT EXISTS state (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    admin TEXT NOT NULL,
    fee_rate_bps INTEGER NOT NULL,
    transfer_count TEXT NOT NULL,
    total_volume TEXT NOT NULL
);`

	createTransfers = `CREATE TABLE IF NOT EXISTS transfers (
    address TEXT PRIMARY KEY,
    sender TEXT NOT NULL,
    recipient TEXT NOT NULL,
    amount TEXT NOT NULL,
    status TEXT NOT NULL,
    created_at TEXT NOT NULL,
    completed_at TEXT,
    memo TEXT NOT NULL,
    reference TEXT NOT NULL
);`

	createAccounts = `CREATE TABLE IF NOT EXISTS accounts (
    identity TEXT PRIMARY KEY,
    balance TEXT NOT NULL
);`

	createEscrows = `CREATE TABLE IF NOT EXISTS escrows (
    handle TEXT PRIMARY KEY,
    balance TEXT NOT NULL
);`
)

// schemaDDL lists every table created on Attach.
var schemaDDL = []string{
	createState,
	createTransfers,
	createAccounts,
	createEscrows,
}
