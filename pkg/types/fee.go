package types

import "math/bits"

// Fee computes the protocol fee on amount at rateBps basis points,
// truncating toward zero: floor(amount * rateBps / 10000).
//
// The multiplication is widened to 128 bits so it cannot overflow for
// any uint64 amount and any valid rate. Returns ErrInvalidFeeRate if
// rateBps exceeds MaxFeeRateBps.
func Fee(amount uint64, rateBps uint16) (uint64, error) {
	if err := ValidateFeeRate(rateBps); err != nil {
		return 0, err
	}
	// rateBps <= 10000 keeps the 128-bit quotient within uint64 range.
	hi, lo := bits.Mul64(amount, uint64(rateBps))
	q, _ := bits.Div64(hi, lo, MaxFeeRateBps)
	return q, nil
}

// Split divides amount into the net delivered to the recipient and the
// fee retained by the program, such that net + fee == amount.
//
// The underflow check cannot trip when rateBps is valid (fee <= amount
// by construction) but is kept as a guard on the money path; it returns
// ErrArithmeticOverflow.
func Split(amount uint64, rateBps uint16) (net, fee uint64, err error) {
	fee, err = Fee(amount, rateBps)
	if err != nil {
		return 0, 0, err
	}
	if fee > amount {
		return 0, 0, ErrArithmeticOverflow
	}
	return amount - fee, fee, nil
}
