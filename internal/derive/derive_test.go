package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiteasy/ledger/pkg/types"
)

func TestStateAddressIsStable(t *testing.T) {
	assert.Equal(t, StateAddress(), StateAddress())

	_, err := types.ParseIdentity(StateAddress())
	assert.NoError(t, err, "addresses are 32-byte base58 values")
}

func TestTransferAddressDeterminism(t *testing.T) {
	alice := WalletIdentity("alice")
	bob := WalletIdentity("bob")

	a1 := TransferAddress(alice, "ref-1")
	assert.Equal(t, a1, TransferAddress(alice, "ref-1"),
		"same sender and reference must derive the same address")

	assert.NotEqual(t, a1, TransferAddress(alice, "ref-2"),
		"different reference must derive a different address")
	assert.NotEqual(t, a1, TransferAddress(bob, "ref-1"),
		"different sender must derive a different address")
	assert.NotEqual(t, a1, StateAddress(),
		"transfer addresses never collide with the state address")
}

func TestWalletIdentity(t *testing.T) {
	alice := WalletIdentity("alice")

	assert.Equal(t, alice, WalletIdentity("alice"))
	assert.NotEqual(t, alice, WalletIdentity("bob"))

	parsed, err := types.ParseIdentity(alice.String())
	require.NoError(t, err)
	assert.Equal(t, alice, parsed)
}
