// Package units converts between USDC display amounts and the lamport
// integer amounts the ledger accounts in (1 USDC = 1,000,000 lamports).
// All conversions are exact; amounts that cannot be represented as a
// whole number of lamports are rejected rather than rounded.
package units

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// LamportsPerUSDC is the number of lamports in one USDC.
const LamportsPerUSDC = 1_000_000

// usdcDecimals is the shift between USDC and lamports.
const usdcDecimals = 6

// ErrInvalidAmount is returned for amounts that are negative, have more
// than six decimal places, or do not fit in a uint64 lamport count.
var ErrInvalidAmount = errors.New("invalid USDC amount")

// ToUSDC converts a lamport amount to its USDC decimal value.
func ToUSDC(lamports uint64) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(lamports), -usdcDecimals)
}

// FromUSDC converts a USDC decimal value to lamports.
func FromUSDC(d decimal.Decimal) (uint64, error) {
	if d.IsNegative() {
		return 0, ErrInvalidAmount
	}
	shifted := d.Shift(usdcDecimals)
	if !shifted.IsInteger() {
		return 0, ErrInvalidAmount
	}
	bi := shifted.BigInt()
	if !bi.IsUint64() {
		return 0, ErrInvalidAmount
	}
	return bi.Uint64(), nil
}

// ParseUSDC parses a USDC amount from text ("1.50") into lamports.
func ParseUSDC(s string) (uint64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	return FromUSDC(d)
}

// FormatUSDC renders a lamport amount as USDC text with up to six
// decimal places.
func FormatUSDC(lamports uint64) string {
	return ToUSDC(lamports).String()
}
