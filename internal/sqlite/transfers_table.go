// Transfer record accessors. Each operation hydrates and dehydrates
// between SQLite rows and *types.Transfer structs.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/remiteasy/ledger/pkg/types"
)

const transferColumns = "address, sender, recipient, amount, status, created_at, completed_at, memo, reference"

// Transfer returns the transfer stored at addr.
// Returns ErrNotFound if no record exists.
func (lt *ledgerTx) Transfer(addr string) (*types.Transfer, error) {
	row := lt.tx.QueryRow(
		"SELECT "+transferColumns+" FROM transfers WHERE address = ?", addr,
	)
	t, err := hydrateTransfer(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting transfer %s: %w", addr, err)
	}
	return t, nil
}

// CreateTransfer stores a new transfer record.
func (lt *ledgerTx) CreateTransfer(t *types.Transfer) error {
	if t.Address == "" {
		return types.ErrInvalidData
	}

	_, err := lt.tx.Exec(
		"INSERT INTO transfers ("+transferColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		t.Address, t.Sender.String(), t.Recipient.String(), formatAmount(t.Amount),
		t.Status, formatTime(t.CreatedAt), formatTimePtr(t.CompletedAt), t.Memo, t.Reference,
	)
	if err != nil {
		return fmt.Errorf("persisting transfer %s: %w", t.Address, err)
	}
	return nil
}

// UpdateTransfer overwrites an existing transfer record.
// Returns ErrNotFound if no record exists at t.Address.
func (lt *ledgerTx) UpdateTransfer(t *types.Transfer) error {
	res, err := lt.tx.Exec(
		"UPDATE transfers SET sender = ?, recipient = ?, amount = ?, status = ?, created_at = ?, completed_at = ?, memo = ?, reference = ? WHERE address = ?",
		t.Sender.String(), t.Recipient.String(), formatAmount(t.Amount), t.Status,
		formatTime(t.CreatedAt), formatTimePtr(t.CompletedAt), t.Memo, t.Reference, t.Address,
	)
	if err != nil {
		return fmt.Errorf("updating transfer %s: %w", t.Address, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating transfer %s: %w", t.Address, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Transfers returns all transfers matching the filter, newest first.
func (lt *ledgerTx) Transfers(filter types.TransferFilter) ([]*types.Transfer, error) {
	query := "SELECT " + transferColumns + " FROM transfers"
	var (
		clauses []string
		args    []any
	)
	if !filter.Sender.IsZero() {
		clauses = append(clauses, "sender = ?")
		args = append(args, filter.Sender.String())
	}
	if !filter.Recipient.IsZero() {
		clauses = append(clauses, "recipient = ?")
		args = append(args, filter.Recipient.String())
	}
	if filter.Status != "" {
		clauses = append(clauses, "status = ?")
		args = append(args, filter.Status)
	}
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY created_at DESC, address"

	rows, err := lt.tx.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying transfers: %w", err)
	}
	defer rows.Close()

	var out []*types.Transfer
	for rows.Next() {
		t, err := hydrateTransfer(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("hydrating transfer: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transfers: %w", err)
	}
	return out, nil
}

// hydrateTransfer converts one row into a Transfer via the given scan
// function (works for both *sql.Row and *sql.Rows).
func hydrateTransfer(scan func(...any) error) (*types.Transfer, error) {
	var (
		address, sender, recipient string
		amountStr, status          string
		createdAt                  string
		completedAt                sql.NullString
		memo, reference            string
	)
	if err := scan(&address, &sender, &recipient, &amountStr, &status,
		&createdAt, &completedAt, &memo, &reference); err != nil {
		return nil, err
	}

	amount, err := parseAmount(amountStr)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}
	created, err := parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	t := &types.Transfer{
		Address:   address,
		Sender:    types.Identity(sender),
		Recipient: types.Identity(recipient),
		Amount:    amount,
		Status:    status,
		CreatedAt: created,
		Memo:      memo,
		Reference: reference,
	}
	if completedAt.Valid {
		completed, err := parseTime(completedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parsing completed_at: %w", err)
		}
		t.CompletedAt = &completed
	}
	return t, nil
}

// Timestamps are stored as RFC 3339 TEXT with nanosecond precision.
func formatTime(t time.Time) string { return t.UTC().Format(time.RFC3339Nano) }

func formatTimePtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
