package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgramState(t *testing.T) {
	tests := []struct {
		name    string
		rateBps uint16
		wantErr error
	}{
		{name: "zero rate", rateBps: 0},
		{name: "one percent", rateBps: 100},
		{name: "full rate", rateBps: 10_000},
		{name: "above cap", rateBps: 10_001, wantErr: ErrInvalidFeeRate},
		{name: "max uint16", rateBps: math.MaxUint16, wantErr: ErrInvalidFeeRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewProgramState("admin", tt.rateBps)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, s)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, Identity("admin"), s.Admin)
			assert.Equal(t, tt.rateBps, s.FeeRateBps)
			assert.Zero(t, s.TransferCount)
			assert.Zero(t, s.TotalVolume)
		})
	}
}

func TestProgramStateRecordTransfer(t *testing.T) {
	s := &ProgramState{FeeRateBps: 100}

	require.NoError(t, s.RecordTransfer(1_000_000))
	assert.Equal(t, uint64(1), s.TransferCount)
	assert.Equal(t, uint64(1_000_000), s.TotalVolume)

	require.NoError(t, s.RecordTransfer(500_000))
	assert.Equal(t, uint64(2), s.TransferCount)
	assert.Equal(t, uint64(1_500_000), s.TotalVolume)
}

func TestProgramStateRecordTransferOverflow(t *testing.T) {
	t.Run("volume overflow", func(t *testing.T) {
		s := &ProgramState{TransferCount: 5, TotalVolume: math.MaxUint64 - 10}

		err := s.RecordTransfer(11)

		assert.ErrorIs(t, err, ErrArithmeticOverflow)
		assert.Equal(t, uint64(5), s.TransferCount, "no partial update on overflow")
		assert.Equal(t, uint64(math.MaxUint64-10), s.TotalVolume)
	})

	t.Run("count overflow", func(t *testing.T) {
		s := &ProgramState{TransferCount: math.MaxUint64, TotalVolume: 0}

		err := s.RecordTransfer(1)

		assert.ErrorIs(t, err, ErrArithmeticOverflow)
		assert.Zero(t, s.TotalVolume, "no partial update on overflow")
	})

	t.Run("volume exactly at capacity", func(t *testing.T) {
		s := &ProgramState{TotalVolume: math.MaxUint64 - 10}

		assert.NoError(t, s.RecordTransfer(10))
		assert.Equal(t, uint64(math.MaxUint64), s.TotalVolume)
	})
}
