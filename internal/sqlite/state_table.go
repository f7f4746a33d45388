// Program state accessors: the singleton row holding fee configuration
// and aggregate statistics.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/remiteasy/ledger/pkg/types"
)

// State returns the program state singleton.
// Returns ErrNotInitialized if initialize has not run.
func (lt *ledgerTx) State() (*types.ProgramState, error) {
	row := lt.tx.QueryRow(
		"SELECT admin, fee_rate_bps, transfer_count, total_volume FROM state WHERE id = 1",
	)
	s, err := hydrateState(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotInitialized
		}
		return nil, fmt.Errorf("getting program state: %w", err)
	}
	return s, nil
}

// CreateState stores the initial program state.
// Returns ErrAlreadyInitialized if the singleton already exists.
func (lt *ledgerTx) CreateState(s *types.ProgramState) error {
	var exists int
	err := lt.tx.QueryRow("SELECT 1 FROM state WHERE id = 1").Scan(&exists)
	if err == nil {
		return types.ErrAlreadyInitialized
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking program state existence: %w", err)
	}

	_, err = lt.tx.Exec(
		"INSERT INTO state (id, admin, fee_rate_bps, transfer_count, total_volume) VALUES (1, ?, ?, ?, ?)",
		s.Admin.String(), s.FeeRateBps, formatAmount(s.TransferCount), formatAmount(s.TotalVolume),
	)
	if err != nil {
		return fmt.Errorf("persisting program state: %w", err)
	}
	return nil
}

// PutState overwrites the program state singleton.
func (lt *ledgerTx) PutState(s *types.ProgramState) error {
	res, err := lt.tx.Exec(
		"UPDATE state SET admin = ?, fee_rate_bps = ?, transfer_count = ?, total_volume = ? WHERE id = 1",
		s.Admin.String(), s.FeeRateBps, formatAmount(s.TransferCount), formatAmount(s.TotalVolume),
	)
	if err != nil {
		return fmt.Errorf("updating program state: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating program state: %w", err)
	}
	if n == 0 {
		return types.ErrNotInitialized
	}
	return nil
}

// hydrateState converts a state row into a ProgramState.
func hydrateState(row *sql.Row) (*types.ProgramState, error) {
	var (
		admin      string
		rateBps    uint16
		countStr   string
		volumeStr  string
	)
	if err := row.Scan(&admin, &rateBps, &countStr, &volumeStr); err != nil {
		return nil, err
	}

	count, err := parseAmount(countStr)
	if err != nil {
		return nil, fmt.Errorf("parsing transfer count: %w", err)
	}
	volume, err := parseAmount(volumeStr)
	if err != nil {
		return nil, fmt.Errorf("parsing total volume: %w", err)
	}

	return &types.ProgramState{
		Admin:         types.Identity(admin),
		FeeRateBps:    rateBps,
		TransferCount: count,
		TotalVolume:   volume,
	}, nil
}
