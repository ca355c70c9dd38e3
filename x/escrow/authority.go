package escrow

import (
	"context"

	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
)

type contextKey int // local to the escrow module

const (
	contextKeyAuthority contextKey = iota
)

// withAuthority grants the escrow address authority over its vault. It is
// private so that only the controller, after re-deriving the escrow
// address, can act as the vault owner.
func withAuthority(ctx context.Context, escrow weave.Address) context.Context {
	return context.WithValue(ctx, contextKeyAuthority, escrow)
}

// Authority authenticates the escrow address currently acting as a vault
// owner. Chain it with the signature authenticator when building the
// ledger controller used by this package.
type Authority struct{}

var _ x.Authenticator = Authority{}

// GetAddresses returns the escrow address granted by the controller, if
// any.
func (Authority) GetAddresses(ctx context.Context) []weave.Address {
	addr, ok := ctx.Value(contextKeyAuthority).(weave.Address)
	if !ok || addr == nil {
		return nil
	}
	return []weave.Address{addr}
}

// HasAddress returns true if addr is the granted escrow address.
func (a Authority) HasAddress(ctx context.Context, addr weave.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
