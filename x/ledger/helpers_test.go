package ledger

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/stretchr/testify/require"
)

const testRent = 2000

// fixture is a configured ledger with a single mint.
type fixture struct {
	db        weave.CacheableKVStore
	auth      *weavetest.CtxAuth
	ctrl      BaseController
	programID weave.Address
	authority weave.Address
	mint      weave.Address
}

func newFixture(t testing.TB) *fixture {
	t.Helper()

	f := &fixture{
		db:        store.MemStore(),
		auth:      &weavetest.CtxAuth{Key: "ledger"},
		programID: weavetest.NewAddress(),
		authority: weavetest.NewAddress(),
	}
	f.ctrl = NewController(f.auth)
	conf := &Configuration{
		Metadata:     &weave.Metadata{Schema: 1},
		ProgramID:    f.programID,
		RentDeposit:  testRent,
		NativeSymbol: "SOL",
	}
	require.NoError(t, gconf.Save(f.db, confKey, conf))

	mint, err := f.ctrl.CreateMint(f.db, f.authority, 6, "AAA")
	require.NoError(t, err)
	f.mint = mint
	return f
}

// as returns a context authenticating given addresses.
func (f *fixture) as(addrs ...weave.Address) context.Context {
	return f.auth.SetAddresses(context.Background(), addrs...)
}

// fund gives the owner lamports and an associated account with amount
// tokens. The account address is returned.
func (f *fixture) fund(t testing.TB, owner weave.Address, amount uint64) weave.Address {
	t.Helper()
	require.NoError(t, f.ctrl.Release(f.db, owner, 10*testRent))
	ctx := f.as(owner, f.authority)
	acc, err := f.ctrl.EnsureAccount(ctx, f.db, owner, f.mint, owner)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.ctrl.MintTo(ctx, f.db, f.mint, acc, amount))
	}
	return acc
}

func (f *fixture) lamports(t testing.TB, addr weave.Address) uint64 {
	t.Helper()
	w, err := f.ctrl.wallet(f.db, addr)
	require.NoError(t, err)
	return w.Lamports
}
