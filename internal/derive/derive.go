// Package derive computes deterministic addresses for ledger records.
// Addresses are SHA-256 digests over tagged seeds, rendered base58, so
// any caller can compute a record's address from stable inputs without
// a lookup round-trip.
package derive

import (
	"crypto/sha256"

	"github.com/mr-tron/base58/base58"

	"github.com/remiteasy/ledger/pkg/types"
)

// Namespace tags. Distinct tags keep the address spaces of different
// record kinds disjoint.
const (
	stateTag    = "remiteasy:state"
	transferTag = "remiteasy:transfer"
	walletTag   = "remiteasy:wallet"
)

// Addresser adapts the package derivation functions to the lifecycle
// core's injected addressing capability.
type Addresser struct{}

// TransferAddress implements the engine's Addresser interface.
func (Addresser) TransferAddress(sender types.Identity, reference string) string {
	return TransferAddress(sender, reference)
}

// StateAddress returns the fixed address of the program state singleton.
func StateAddress() string {
	return encode(digest(stateTag, nil, ""))
}

// TransferAddress returns the address of the transfer opened by sender
// with the given reference nonce. The same (sender, reference) pair
// always yields the same address.
func TransferAddress(sender types.Identity, reference string) string {
	raw, _ := sender.Bytes()
	return encode(digest(transferTag, raw, reference))
}

// WalletIdentity derives a stable identity from a local wallet name.
// This stands in for real key management on the client side.
func WalletIdentity(name string) types.Identity {
	sum := digest(walletTag, nil, name)
	id, _ := types.IdentityFromBytes(sum[:])
	return id
}

// digest hashes tag plus the optional fixed-width and free-text seeds.
// The zero byte between sections keeps distinct seed lists from
// colliding.
func digest(tag string, fixed []byte, text string) [sha256.Size]byte {
	h := sha256.New()
	h.Write([]byte(tag))
	h.Write([]byte{0})
	h.Write(fixed)
	h.Write([]byte{0})
	h.Write([]byte(text))

	var sum [sha256.Size]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

func encode(sum [sha256.Size]byte) string {
	return base58.Encode(sum[:])
}
