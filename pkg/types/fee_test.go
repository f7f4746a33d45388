package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFee(t *testing.T) {
	tests := []struct {
		name    string
		amount  uint64
		rateBps uint16
		want    uint64
		wantErr error
	}{
		{
			name:    "one percent",
			amount:  1_000_000,
			rateBps: 100,
			want:    10_000,
		},
		{
			name:    "half percent",
			amount:  1_000_000,
			rateBps: 50,
			want:    5_000,
		},
		{
			name:    "zero rate",
			amount:  1_000_000,
			rateBps: 0,
			want:    0,
		},
		{
			name:    "zero amount",
			amount:  0,
			rateBps: 500,
			want:    0,
		},
		{
			name:    "full rate returns whole amount",
			amount:  123_456,
			rateBps: 10_000,
			want:    123_456,
		},
		{
			name:    "truncates toward zero",
			amount:  999,
			rateBps: 100,
			want:    9, // 999 * 100 / 10000 = 9.99
		},
		{
			name:    "tiny amount rounds to zero fee",
			amount:  99,
			rateBps: 100,
			want:    0,
		},
		{
			name:    "max amount max rate does not overflow",
			amount:  math.MaxUint64,
			rateBps: 10_000,
			want:    math.MaxUint64,
		},
		{
			name:    "max amount one percent does not overflow",
			amount:  math.MaxUint64,
			rateBps: 100,
			want:    math.MaxUint64 / 100,
		},
		{
			name:    "rate above cap rejected",
			amount:  1_000_000,
			rateBps: 10_001,
			wantErr: ErrInvalidFeeRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Fee(tt.amount, tt.rateBps)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitConservation(t *testing.T) {
	amounts := []uint64{1, 99, 100, 999, 1_000_000, 500_000, math.MaxUint64}
	rates := []uint16{0, 1, 50, 100, 250, 9_999, 10_000}

	for _, amount := range amounts {
		for _, rate := range rates {
			net, fee, err := Split(amount, rate)
			require.NoError(t, err)
			assert.Equal(t, amount, net+fee,
				"net + fee must equal amount for amount=%d rate=%d", amount, rate)
			assert.LessOrEqual(t, fee, amount)
		}
	}
}

func TestSplitRejectsInvalidRate(t *testing.T) {
	_, _, err := Split(1_000, 10_001)
	assert.ErrorIs(t, err, ErrInvalidFeeRate)
}
