package types

import "math"

// ProgramState is the singleton configuration and statistics record for
// a deployment. It is created exactly once by initialize, mutated only
// by successful sends, and never deleted.
type ProgramState struct {
	// Admin is the identity recorded as administrator at initialization.
	Admin Identity

	// FeeRateBps is the protocol fee in basis points (100 = 1%).
	// Never exceeds MaxFeeRateBps after initialization.
	FeeRateBps uint16

	// TransferCount is the number of transfers opened. Monotonic.
	TransferCount uint64

	// TotalVolume is the gross amount of all transfers opened. Monotonic.
	TotalVolume uint64
}

// NewProgramState builds the initial state for a deployment.
// Returns ErrInvalidFeeRate if feeRateBps exceeds MaxFeeRateBps.
func NewProgramState(admin Identity, feeRateBps uint16) (*ProgramState, error) {
	if err := ValidateFeeRate(feeRateBps); err != nil {
		return nil, err
	}
	return &ProgramState{Admin: admin, FeeRateBps: feeRateBps}, nil
}

// RecordTransfer applies the statistics update for one opened transfer:
// TransferCount + 1 and TotalVolume + amount. Both increments are
// overflow-checked; on ErrArithmeticOverflow neither is applied.
func (s *ProgramState) RecordTransfer(amount uint64) error {
	if s.TransferCount == math.MaxUint64 {
		return ErrArithmeticOverflow
	}
	if amount > math.MaxUint64-s.TotalVolume {
		return ErrArithmeticOverflow
	}
	s.TransferCount++
	s.TotalVolume += amount
	return nil
}
