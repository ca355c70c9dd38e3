package sigs

import (
	"context"

	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
)

type contextKey int // local to the sigs module

const (
	contextKeySigners contextKey = iota
)

// withSigners is a private method, as only this module can add a signer.
func withSigners(ctx context.Context, signers []weave.Address) context.Context {
	return context.WithValue(ctx, contextKeySigners, signers)
}

// Authenticate gets/sets permissions on the given context key.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetAddresses returns the addresses of all keys that signed this
// transaction.
func (a Authenticate) GetAddresses(ctx context.Context) []weave.Address {
	val, _ := ctx.Value(contextKeySigners).([]weave.Address)
	return val
}

// HasAddress returns true iff this address is in GetAddresses.
func (a Authenticate) HasAddress(ctx context.Context, addr weave.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
