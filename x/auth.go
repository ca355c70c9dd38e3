package x

import (
	"context"

	"github.com/iov-one/escrowd/weave"
)

// Authenticator is an interface we can use to extract authentication info
// from the context. This should be passed into the constructor of handlers,
// so we can plug in another authentication system, rather than hard-coding
// x/sigs for all extensions.
type Authenticator interface {
	// GetAddresses reveals all addresses that authorized the current
	// transaction, the main signer first.
	GetAddresses(context.Context) []weave.Address

	// HasAddress checks if the address authorized the current
	// transaction.
	HasAddress(context.Context, weave.Address) bool
}

// MultiAuth chains together many Authenticators into one.
type MultiAuth struct {
	impls []Authenticator
}

var _ Authenticator = MultiAuth{}

// ChainAuth groups together a series of Authenticator.
func ChainAuth(impls ...Authenticator) MultiAuth {
	return MultiAuth{impls}
}

// GetAddresses combines all addresses from all Authenticators, without
// duplicates.
func (m MultiAuth) GetAddresses(ctx context.Context) []weave.Address {
	var res []weave.Address
	for _, impl := range m.impls {
		for _, a := range impl.GetAddresses(ctx) {
			if !containsAddress(res, a) {
				res = append(res, a)
			}
		}
	}
	return res
}

// HasAddress returns true iff any Authenticator support this.
func (m MultiAuth) HasAddress(ctx context.Context, addr weave.Address) bool {
	for _, impl := range m.impls {
		if impl.HasAddress(ctx, addr) {
			return true
		}
	}
	return false
}

// MainSigner returns the first authorized address if any, otherwise nil.
func MainSigner(ctx context.Context, auth Authenticator) weave.Address {
	signers := auth.GetAddresses(ctx)
	if len(signers) == 0 {
		return nil
	}
	return signers[0]
}

func containsAddress(set []weave.Address, a weave.Address) bool {
	for _, s := range set {
		if s.Equals(a) {
			return true
		}
	}
	return false
}
