package types

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateAmount(t *testing.T) {
	assert.ErrorIs(t, ValidateAmount(0), ErrInvalidAmount)
	assert.NoError(t, ValidateAmount(1))
	assert.NoError(t, ValidateAmount(1_000_000))
}

func TestValidateMemo(t *testing.T) {
	assert.NoError(t, ValidateMemo(""))
	assert.NoError(t, ValidateMemo("rent"))
	assert.NoError(t, ValidateMemo(strings.Repeat("a", MaxMemoLength)))
	assert.ErrorIs(t, ValidateMemo(strings.Repeat("a", MaxMemoLength+1)), ErrMemoTooLong)
}

func TestValidateFeeRate(t *testing.T) {
	assert.NoError(t, ValidateFeeRate(0))
	assert.NoError(t, ValidateFeeRate(100))
	assert.NoError(t, ValidateFeeRate(10_000))
	assert.ErrorIs(t, ValidateFeeRate(10_001), ErrInvalidFeeRate)
}
