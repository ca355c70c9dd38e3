package escrow

import (
	"context"
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/stretchr/testify/require"
)

const (
	testRent     = 1000
	testLamports = 100 * testRent
)

// fixture is a store with two mints, a maker holding tokens A and a taker
// holding tokens B.
type fixture struct {
	db        weave.CacheableKVStore
	auth      *weavetest.CtxAuth
	tokens    ledger.BaseController
	ctrl      Controller
	programID weave.Address

	authority weave.Address
	mintA     weave.Address
	mintB     weave.Address
	maker     weave.Address
	taker     weave.Address
}

func newFixture(t testing.TB, makerA, takerB uint64) *fixture {
	t.Helper()

	f := &fixture{
		db:        store.MemStore(),
		auth:      &weavetest.CtxAuth{Key: "signers"},
		programID: weavetest.NewAddress(),
		authority: weavetest.NewAddress(),
		maker:     weavetest.NewAddress(),
		taker:     weavetest.NewAddress(),
	}
	f.tokens = ledger.NewController(x.ChainAuth(f.auth, Authority{}))
	f.ctrl = NewController(f.auth, f.tokens)

	require.NoError(t, gconf.Save(f.db, "ledger", &ledger.Configuration{
		Metadata:     &weave.Metadata{Schema: 1},
		ProgramID:    weavetest.NewAddress(),
		RentDeposit:  testRent,
		NativeSymbol: "SOL",
	}))
	require.NoError(t, gconf.Save(f.db, confKey, &Configuration{
		Metadata:  &weave.Metadata{Schema: 1},
		ProgramID: f.programID,
	}))

	var err error
	f.mintA, err = f.tokens.CreateMint(f.db, f.authority, 0, "AAA")
	require.NoError(t, err)
	f.mintB, err = f.tokens.CreateMint(f.db, f.authority, 0, "BBB")
	require.NoError(t, err)

	for _, addr := range []weave.Address{f.authority, f.maker, f.taker} {
		require.NoError(t, f.tokens.Release(f.db, addr, testLamports))
	}
	f.issue(t, f.maker, f.mintA, makerA)
	f.issue(t, f.taker, f.mintB, takerB)
	return f
}

// issue mints amount of tokens to the associated account of the owner.
func (f *fixture) issue(t testing.TB, owner, mint weave.Address, amount uint64) {
	t.Helper()
	ctx := f.as(f.authority)
	acc, err := f.tokens.EnsureAccount(ctx, f.db, owner, mint, f.authority)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, f.tokens.MintTo(ctx, f.db, mint, acc, amount))
	}
}

// as returns a context authenticating given signers.
func (f *fixture) as(signers ...weave.Address) context.Context {
	return f.auth.SetAddresses(context.Background(), signers...)
}

// balance returns the associated account balance of the owner, or zero if
// there is no such account.
func (f *fixture) balance(t testing.TB, owner, mint weave.Address) uint64 {
	t.Helper()
	acc, err := f.tokens.AccountAddress(f.db, owner, mint)
	require.NoError(t, err)
	amount, err := f.tokens.Balance(f.db, acc)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(t, err)
	return amount
}

// lamports returns the native balance of the address.
func (f *fixture) lamports(t testing.TB, addr weave.Address) uint64 {
	t.Helper()
	var w ledger.Wallet
	err := ledger.NewWalletBucket().One(f.db, addr, &w)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(t, err)
	return w.Lamports
}

// exists returns whether the escrow and its vault are stored.
func (f *fixture) exists(t testing.TB, addr weave.Address) (escrow, vault bool) {
	t.Helper()
	vaultAddr, _, err := VaultAddress(f.programID, addr)
	require.NoError(t, err)
	escrow = f.ctrl.bucket.Has(f.db, addr) == nil
	_, err = f.tokens.Balance(f.db, vaultAddr)
	vault = err == nil
	return escrow, vault
}
