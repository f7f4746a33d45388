package types

import "time"

// Transfer states. A transfer starts pending and moves exactly once to
// completed (funds released to the recipient) or cancelled (funds
// returned to the sender). Both are terminal.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Transfer represents a single escrowed remittance.
type Transfer struct {
	// Address is the deterministic record address, derived from the
	// sender identity and Reference by the addressing capability.
	Address string

	// Sender is the party that locked the funds. Immutable.
	Sender Identity

	// Recipient is the party the funds are destined for. Immutable.
	Recipient Identity

	// Amount is the gross value locked in escrow. Strictly positive,
	// immutable.
	Amount uint64

	// Status is one of the Status constants.
	Status string

	// CreatedAt is the timestamp at open. Immutable.
	CreatedAt time.Time

	// CompletedAt is set exactly once, on the transition out of pending.
	// Nil while the transfer is pending.
	CompletedAt *time.Time

	// Memo is a free-text annotation, at most MaxMemoLength bytes.
	// Immutable.
	Memo string

	// Reference is the per-transfer disambiguating nonce used for
	// address derivation.
	Reference string
}

// Validate checks the creation-time invariants of the record.
func (t *Transfer) Validate() error {
	if err := ValidateAmount(t.Amount); err != nil {
		return err
	}
	return ValidateMemo(t.Memo)
}

// IsPending reports whether the transfer is still open.
func (t *Transfer) IsPending() bool { return t.Status == StatusPending }

// IsCompleted reports whether the funds were released to the recipient.
func (t *Transfer) IsCompleted() bool { return t.Status == StatusCompleted }

// IsCancelled reports whether the funds were returned to the sender.
func (t *Transfer) IsCancelled() bool { return t.Status == StatusCancelled }

// Complete transitions the transfer from pending to completed and stamps
// CompletedAt. Returns ErrTransferNotPending from any other status; the
// record is unchanged on error.
func (t *Transfer) Complete(now time.Time) error {
	if t.Status != StatusPending {
		return ErrTransferNotPending
	}
	t.Status = StatusCompleted
	t.CompletedAt = &now
	return nil
}

// Cancel transitions the transfer from pending to cancelled and stamps
// CompletedAt. Returns ErrTransferNotPending from any other status; the
// record is unchanged on error.
func (t *Transfer) Cancel(now time.Time) error {
	if t.Status != StatusPending {
		return ErrTransferNotPending
	}
	t.Status = StatusCancelled
	t.CompletedAt = &now
	return nil
}

// Duration returns the time between creation and settlement, or nil if
// the transfer is still pending.
func (t *Transfer) Duration() *time.Duration {
	if t.CompletedAt == nil {
		return nil
	}
	d := t.CompletedAt.Sub(t.CreatedAt)
	return &d
}
