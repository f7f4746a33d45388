package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/remiteasy/ledger/pkg/types"
)

// dbFileName is the database file created inside the data directory.
const dbFileName = "ledger.db"

// Compile-time interface check: Backend must implement Ledger.
var _ types.Ledger = (*Backend)(nil)

// Backend implements the Ledger interface on a single SQLite database.
// Units of work are serialized by writeMu: Begin acquires it and the
// returned Tx holds it until Commit or Rollback, so two units touching
// the same record never interleave.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB

	writeMu sync.Mutex
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend() *Backend {
	return &Backend{}
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist and ensures the schema.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return err
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, dbFileName))
	if err != nil {
		return err
	}

	for _, ddl := range schemaDDL {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	b.db = db
	b.config = config
	b.attached = true
	return nil
}

// Detach releases backend resources. Idempotent: multiple calls succeed.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.attached = false
	return err
}

// Begin opens an atomic unit of work. The caller must finish it with
// Commit or Rollback; defer Rollback after a successful Begin.
// Returns ErrLedgerDetached if the backend is not attached.
func (b *Backend) Begin() (types.Tx, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrLedgerDetached
	}

	b.writeMu.Lock()
	tx, err := b.db.Begin()
	if err != nil {
		b.writeMu.Unlock()
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}

	lt := &ledgerTx{backend: b, tx: tx}
	lt.vault = &txVault{tx: tx}
	return lt, nil
}
