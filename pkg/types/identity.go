package types

import (
	"github.com/mr-tron/base58/base58"
)

// IdentityLen is the raw byte length of a party identity.
const IdentityLen = 32

// Identity is an opaque party identity: a 32-byte value rendered as
// base58 text. Identities are compared by value and never interpreted
// by the ledger core; derivation and authentication of callers belong
// to the surrounding application.
type Identity string

// ParseIdentity validates that s is base58 text decoding to exactly
// IdentityLen bytes and returns it as an Identity.
// Returns ErrInvalidIdentity otherwise.
func ParseIdentity(s string) (Identity, error) {
	raw, err := base58.Decode(s)
	if err != nil || len(raw) != IdentityLen {
		return "", ErrInvalidIdentity
	}
	return Identity(s), nil
}

// IdentityFromBytes encodes a raw 32-byte value as an Identity.
// Returns ErrInvalidIdentity if b is not exactly IdentityLen bytes.
func IdentityFromBytes(b []byte) (Identity, error) {
	if len(b) != IdentityLen {
		return "", ErrInvalidIdentity
	}
	return Identity(base58.Encode(b)), nil
}

// Bytes returns the raw 32-byte value of the identity.
func (i Identity) Bytes() ([]byte, error) {
	raw, err := base58.Decode(string(i))
	if err != nil || len(raw) != IdentityLen {
		return nil, ErrInvalidIdentity
	}
	return raw, nil
}

// IsZero reports whether the identity is the empty value.
func (i Identity) IsZero() bool { return i == "" }

func (i Identity) String() string { return string(i) }
