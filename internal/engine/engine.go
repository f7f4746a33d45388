// Package engine implements the transfer lifecycle state machine: the
// four operations (initialize, send, receive, cancel) and the
// validation, fee, and authorization rules gating each transition.
// Every operation runs as one all-or-nothing unit of work against the
// ledger; a failed precondition leaves no state behind.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/remiteasy/ledger/internal/metrics"
	"github.com/remiteasy/ledger/pkg/types"
)

// Addresser is the deterministic record-addressing capability. It is
// injected so the lifecycle core never owns derivation or its
// collision and replay properties.
type Addresser interface {
	// TransferAddress derives the record address for the transfer
	// opened by sender with the given reference nonce.
	TransferAddress(sender types.Identity, reference string) string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// Engine orchestrates the transfer lifecycle. It exclusively owns
// mutation rights over the program state and transfer records; the
// custody primitive is invoked by, but does not own, either.
type Engine struct {
	ledger types.Ledger
	addr   Addresser
	log    *slog.Logger
	now    func() time.Time
}

// New creates an Engine over the given ledger and addressing capability.
func New(ledger types.Ledger, addr Addresser, opts ...Option) *Engine {
	e := &Engine{
		ledger: ledger,
		addr:   addr,
		log:    slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize creates the program state singleton with the caller as
// administrator and the given fee rate, and zeroed statistics. Valid
// only once per deployment: a second call fails with
// ErrAlreadyInitialized.
func (e *Engine) Initialize(ctx context.Context, admin types.Identity, feeRateBps uint16) (*types.ProgramState, error) {
	state, err := types.NewProgramState(admin, feeRateBps)
	if err != nil {
		return nil, err
	}

	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := tx.CreateState(state); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing initialize: %w", err)
	}

	e.log.InfoContext(ctx, "ledger initialized",
		"admin", admin.String(), "fee_rate_bps", feeRateBps)
	return state, nil
}

// Send opens a transfer: it locks amount from the sender's holdings
// into escrow, creates the pending record at its derived address, and
// applies the overflow-checked statistics update. The three steps are
// one unit of work; any failure rolls all of them back.
//
// reference is the per-transfer disambiguating nonce; when empty a
// UUID v7 is generated.
func (e *Engine) Send(ctx context.Context, sender, recipient types.Identity, amount uint64, memo, reference string) (*types.Transfer, error) {
	if err := types.ValidateAmount(amount); err != nil {
		return nil, e.opFailed("send", err)
	}
	if err := types.ValidateMemo(memo); err != nil {
		return nil, e.opFailed("send", err)
	}
	if reference == "" {
		ref, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("generating reference: %w", err)
		}
		reference = ref.String()
	}

	addr := e.addr.TransferAddress(sender, reference)

	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	state, err := tx.State()
	if err != nil {
		return nil, e.opFailed("send", err)
	}

	if _, err := tx.Transfer(addr); err == nil {
		return nil, e.opFailed("send", types.ErrDuplicateTransfer)
	} else if !errors.Is(err, types.ErrNotFound) {
		return nil, err
	}

	if err := tx.Vault().Lock(types.EscrowHandle(addr), sender, amount); err != nil {
		return nil, e.opFailed("send", err)
	}

	transfer := &types.Transfer{
		Address:   addr,
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
		Status:    types.StatusPending,
		CreatedAt: e.now().UTC(),
		Memo:      memo,
		Reference: reference,
	}
	if err := tx.CreateTransfer(transfer); err != nil {
		return nil, err
	}

	if err := state.RecordTransfer(amount); err != nil {
		return nil, e.opFailed("send", err)
	}
	if err := tx.PutState(state); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing send: %w", err)
	}

	metrics.TransfersOpened.Inc()
	metrics.VolumeLocked.Add(float64(amount))
	e.log.InfoContext(ctx, "transfer opened",
		"address", addr, "sender", sender.String(),
		"recipient", recipient.String(), "amount", amount)
	return transfer, nil
}

// Receive releases a pending transfer to its recipient. The caller
// must be the recipient; the net amount (gross minus fee at the
// current rate) goes to the recipient and the fee to the fee
// collector. The status guard and the release are one unit of work, so
// a transfer can never pay out twice.
func (e *Engine) Receive(ctx context.Context, caller types.Identity, address string) (*types.Transfer, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	state, err := tx.State()
	if err != nil {
		return nil, e.opFailed("receive", err)
	}
	transfer, err := tx.Transfer(address)
	if err != nil {
		return nil, e.opFailed("receive", err)
	}

	// Preconditions, in order: status first, then authorization.
	if !transfer.IsPending() {
		return nil, e.opFailed("receive", types.ErrTransferNotPending)
	}
	if caller != transfer.Recipient {
		return nil, e.opFailed("receive", types.ErrUnauthorizedReceipt)
	}

	net, fee, err := types.Split(transfer.Amount, state.FeeRateBps)
	if err != nil {
		return nil, e.opFailed("receive", err)
	}

	vault := tx.Vault()
	handle := types.EscrowHandle(address)

	held, err := vault.Escrow(handle)
	if err != nil {
		return nil, e.opFailed("receive", err)
	}
	if held < transfer.Amount {
		return nil, e.opFailed("receive", types.ErrInsufficientEscrowBalance)
	}

	if err := vault.Release(handle, transfer.Recipient, net); err != nil {
		return nil, e.opFailed("receive", err)
	}
	if fee > 0 {
		if err := vault.Release(handle, state.Admin, fee); err != nil {
			return nil, e.opFailed("receive", err)
		}
	}

	if err := transfer.Complete(e.now().UTC()); err != nil {
		return nil, e.opFailed("receive", err)
	}
	if err := tx.UpdateTransfer(transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing receive: %w", err)
	}

	metrics.TransfersCompleted.Inc()
	metrics.FeesCollected.Add(float64(fee))
	e.log.InfoContext(ctx, "transfer completed",
		"address", address, "net", net, "fee", fee)
	return transfer, nil
}

// Cancel returns a pending transfer's full amount (no fee deducted)
// from escrow to its sender. The caller must be the sender.
func (e *Engine) Cancel(ctx context.Context, caller types.Identity, address string) (*types.Transfer, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	transfer, err := tx.Transfer(address)
	if err != nil {
		return nil, e.opFailed("cancel", err)
	}

	if !transfer.IsPending() {
		return nil, e.opFailed("cancel", types.ErrTransferNotPending)
	}
	if caller != transfer.Sender {
		return nil, e.opFailed("cancel", types.ErrUnauthorizedCancellation)
	}

	handle := types.EscrowHandle(address)
	if err := tx.Vault().Refund(handle, transfer.Sender, transfer.Amount); err != nil {
		return nil, e.opFailed("cancel", err)
	}

	if err := transfer.Cancel(e.now().UTC()); err != nil {
		return nil, e.opFailed("cancel", err)
	}
	if err := tx.UpdateTransfer(transfer); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing cancel: %w", err)
	}

	metrics.TransfersCancelled.Inc()
	e.log.InfoContext(ctx, "transfer cancelled",
		"address", address, "refunded", transfer.Amount)
	return transfer, nil
}

// State returns the program state.
func (e *Engine) State(ctx context.Context) (*types.ProgramState, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	return tx.State()
}

// Transfer returns the transfer stored at address.
func (e *Engine) Transfer(ctx context.Context, address string) (*types.Transfer, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	return tx.Transfer(address)
}

// Transfers returns all transfers matching the filter, newest first.
func (e *Engine) Transfers(ctx context.Context, filter types.TransferFilter) ([]*types.Transfer, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()
	return tx.Transfers(filter)
}

// Deposit credits amount to a party's holdings. This is the funding
// side of custody, outside the transfer lifecycle.
func (e *Engine) Deposit(ctx context.Context, to types.Identity, amount uint64) error {
	tx, err := e.ledger.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.Vault().Deposit(to, amount); err != nil {
		return err
	}
	return tx.Commit()
}

// Balance returns a party's spendable holdings.
func (e *Engine) Balance(ctx context.Context, of types.Identity) (uint64, error) {
	tx, err := e.ledger.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()
	return tx.Vault().Balance(of)
}

// opFailed counts a failed lifecycle operation and passes the error
// through unchanged.
func (e *Engine) opFailed(op string, err error) error {
	metrics.OperationErrors.WithLabelValues(op).Inc()
	return err
}
