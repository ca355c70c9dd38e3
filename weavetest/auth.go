package weavetest

import (
	"context"
	"fmt"

	"github.com/iov-one/escrowd/weave"
)

// Auth is a mock implementing x.Authenticator interface.
//
// This structure authenticates any of referenced addresses. You can use
// either Signer or Signers (or both) attributes to reference addresses. Each
// time all signers (regardless which attribute) are considered.
type Auth struct {
	// Signer represents an authentication of a single signer.
	Signer weave.Address

	// Signers represents an authentication of multiple signers.
	Signers []weave.Address
}

// GetAddresses returns Signer first, followed by Signers.
func (a *Auth) GetAddresses(context.Context) []weave.Address {
	if a.Signer != nil {
		return append([]weave.Address{a.Signer}, a.Signers...)
	}
	return a.Signers
}

// HasAddress returns true if the address is any of the signers.
func (a *Auth) HasAddress(ctx context.Context, addr weave.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}

// CtxAuth is a mock implementing x.Authenticator interface.
//
// This implementation is using context to store and retrieve permissions.
type CtxAuth struct {
	// Key used to set and retrieve addresses from the context. For
	// convenience only string type keys are allowed.
	Key string
}

// SetAddresses returns a context that authenticates given addresses.
func (a *CtxAuth) SetAddresses(ctx context.Context, addrs ...weave.Address) context.Context {
	return context.WithValue(ctx, a.Key, addrs)
}

// GetAddresses returns the addresses stored in the context.
func (a *CtxAuth) GetAddresses(ctx context.Context) []weave.Address {
	val := ctx.Value(a.Key)
	if val == nil {
		return nil
	}
	addrs, ok := val.([]weave.Address)
	if !ok {
		panic(fmt.Sprintf("instead of []weave.Address got %T", val))
	}
	return addrs
}

// HasAddress returns true if the address is stored in the context.
func (a *CtxAuth) HasAddress(ctx context.Context, addr weave.Address) bool {
	for _, s := range a.GetAddresses(ctx) {
		if addr.Equals(s) {
			return true
		}
	}
	return false
}
