package types

// MaxMemoLength is the maximum memo length in bytes.
const MaxMemoLength = 200

// MaxFeeRateBps is the maximum fee rate: 10000 basis points = 100%.
const MaxFeeRateBps = 10000

// ValidateAmount checks that a transfer amount is strictly positive.
// Returns ErrInvalidAmount for a zero amount.
func ValidateAmount(amount uint64) error {
	if amount == 0 {
		return ErrInvalidAmount
	}
	return nil
}

// ValidateMemo checks that a memo does not exceed MaxMemoLength bytes.
// Returns ErrMemoTooLong otherwise.
func ValidateMemo(memo string) error {
	if len(memo) > MaxMemoLength {
		return ErrMemoTooLong
	}
	return nil
}

// ValidateFeeRate checks that a fee rate does not exceed MaxFeeRateBps.
// Returns ErrInvalidFeeRate otherwise.
func ValidateFeeRate(rateBps uint16) error {
	if rateBps > MaxFeeRateBps {
		return ErrInvalidFeeRate
	}
	return nil
}
