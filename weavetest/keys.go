package weavetest

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowd/weave"
)

// NewKey returns a fresh ed25519 private key.
func NewKey() solana.PrivateKey {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		panic(err)
	}
	return key
}

// KeyAddress returns the address of the given key.
func KeyAddress(key solana.PrivateKey) weave.Address {
	return weave.NewAddress(key.PublicKey())
}

// NewAddress returns the address of a freshly generated signer.
func NewAddress() weave.Address {
	return KeyAddress(NewKey())
}

// ParseAddress takes an address in a human readable format and returns its
// binary representation.
func ParseAddress(t testing.TB, encodedAddress string) weave.Address {
	t.Helper()

	addr, err := weave.ParseAddress(encodedAddress)
	if err != nil {
		t.Fatalf("cannot parse %q address: %s", encodedAddress, err)
	}
	return addr
}
