package ledger

import (
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountAddress(t *testing.T) {
	f := newFixture(t)
	owner := weavetest.NewAddress()

	a1, err := f.ctrl.AccountAddress(f.db, owner, f.mint)
	assert.Nil(t, err)
	a2, err := AccountAddress(f.programID, owner, f.mint)
	assert.Nil(t, err)
	require.Equal(t, a1, a2)

	other, err := AccountAddress(f.programID, weavetest.NewAddress(), f.mint)
	assert.Nil(t, err)
	require.NotEqual(t, a1, other)
}

func TestCreateAccount(t *testing.T) {
	f := newFixture(t)
	owner := weavetest.NewAddress()
	poor := weavetest.NewAddress()
	require.NoError(t, f.ctrl.Release(f.db, owner, testRent+1))

	addr, err := f.ctrl.AccountAddress(f.db, owner, f.mint)
	assert.Nil(t, err)

	_, err = f.ctrl.CreateAccount(f.as(), f.db, addr, owner, f.mint, owner)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	_, err = f.ctrl.CreateAccount(f.as(poor), f.db, addr, owner, f.mint, poor)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	_, err = f.ctrl.CreateAccount(f.as(owner), f.db, addr, owner, weavetest.NewAddress(), owner)
	assert.IsErr(t, errors.ErrNotFound, err)

	acc, err := f.ctrl.CreateAccount(f.as(owner), f.db, addr, owner, f.mint, owner)
	assert.Nil(t, err)
	require.EqualValues(t, testRent, acc.Rent)
	require.Equal(t, owner, acc.Payer)
	require.EqualValues(t, 1, f.lamports(t, owner))

	_, err = f.ctrl.CreateAccount(f.as(owner), f.db, addr, owner, f.mint, owner)
	assert.IsErr(t, errors.ErrDuplicate, err)
	require.EqualValues(t, 1, f.lamports(t, owner))

	// ensure is idempotent and charges nothing
	got, err := f.ctrl.EnsureAccount(f.as(owner), f.db, owner, f.mint, owner)
	assert.Nil(t, err)
	require.Equal(t, addr, got)
	require.EqualValues(t, 1, f.lamports(t, owner))

	var owned []*Account
	_, err = f.ctrl.accounts.ByIndex(f.db, "owner", owner, &owned)
	assert.Nil(t, err)
	require.Len(t, owned, 1)
}

func TestTransfer(t *testing.T) {
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()

	cases := map[string]struct {
		signers   []weave.Address
		amount    uint64
		otherMint bool
		wantErr   *errors.Error
		wantAlice uint64
		wantBob   uint64
	}{
		"success": {
			signers:   []weave.Address{alice},
			amount:    300,
			wantAlice: 700,
			wantBob:   300,
		},
		"whole balance": {
			signers:   []weave.Address{alice},
			amount:    1000,
			wantAlice: 0,
			wantBob:   1000,
		},
		"zero amount is a no-op": {
			signers:   []weave.Address{alice},
			amount:    0,
			wantAlice: 1000,
		},
		"insufficient balance": {
			signers:   []weave.Address{alice},
			amount:    1001,
			wantErr:   errors.ErrInsufficientAmount,
			wantAlice: 1000,
		},
		"source owner must sign": {
			signers:   []weave.Address{bob},
			amount:    1,
			wantErr:   errors.ErrUnauthorized,
			wantAlice: 1000,
		},
		"mint mismatch": {
			signers:   []weave.Address{alice},
			amount:    1,
			otherMint: true,
			wantErr:   errors.ErrInvalidInput,
			wantAlice: 1000,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			f := newFixture(t)
			from := f.fund(t, alice, 1000)
			to := f.fund(t, bob, 0)

			mint := f.mint
			if tc.otherMint {
				other, err := f.ctrl.CreateMint(f.db, f.authority, 0, "BBB")
				require.NoError(t, err)
				mint = other
			}

			err := f.ctrl.Transfer(f.as(tc.signers...), f.db, from, to, mint, tc.amount)
			assert.IsErr(t, tc.wantErr, err)

			got, err := f.ctrl.Balance(f.db, from)
			assert.Nil(t, err)
			require.Equal(t, tc.wantAlice, got)
			got, err = f.ctrl.Balance(f.db, to)
			assert.Nil(t, err)
			require.Equal(t, tc.wantBob, got)
		})
	}
}

func TestTransferMissingAccount(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewAddress()
	from := f.fund(t, alice, 10)

	err := f.ctrl.Transfer(f.as(alice), f.db, from, weavetest.NewAddress(), f.mint, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
	err = f.ctrl.Transfer(f.as(alice), f.db, weavetest.NewAddress(), from, f.mint, 1)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestCloseAccount(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewAddress()
	bob := weavetest.NewAddress()
	acc := f.fund(t, alice, 5)
	dst := f.fund(t, bob, 0)
	before := f.lamports(t, bob)

	err := f.ctrl.CloseAccount(f.as(alice), f.db, acc, bob)
	assert.IsErr(t, errors.ErrInvalidState, err)

	require.NoError(t, f.ctrl.Transfer(f.as(alice), f.db, acc, dst, f.mint, 5))

	err = f.ctrl.CloseAccount(f.as(bob), f.db, acc, bob)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = f.ctrl.CloseAccount(f.as(alice), f.db, acc, bob)
	assert.Nil(t, err)
	require.Equal(t, before+testRent, f.lamports(t, bob))

	_, err = f.ctrl.Balance(f.db, acc)
	assert.IsErr(t, errors.ErrNotFound, err)
	err = f.ctrl.CloseAccount(f.as(alice), f.db, acc, bob)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestMintTo(t *testing.T) {
	f := newFixture(t)
	alice := weavetest.NewAddress()
	acc := f.fund(t, alice, 0)

	err := f.ctrl.MintTo(f.as(alice), f.db, f.mint, acc, 10)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	err = f.ctrl.MintTo(f.as(f.authority), f.db, f.mint, acc, 10)
	assert.Nil(t, err)

	err = f.ctrl.MintTo(f.as(f.authority), f.db, f.mint, acc, ^uint64(0))
	assert.IsErr(t, errors.ErrOverflow, err)

	var m Mint
	require.NoError(t, f.ctrl.mints.One(f.db, f.mint, &m))
	require.EqualValues(t, 10, m.Supply)
}

func TestReserveRelease(t *testing.T) {
	f := newFixture(t)
	payer := weavetest.NewAddress()

	_, err := f.ctrl.Reserve(f.as(payer), f.db, payer)
	assert.IsErr(t, errors.ErrInsufficientAmount, err)

	require.NoError(t, f.ctrl.Release(f.db, payer, testRent))
	_, err = f.ctrl.Reserve(f.as(), f.db, payer)
	assert.IsErr(t, errors.ErrUnauthorized, err)

	got, err := f.ctrl.Reserve(f.as(payer), f.db, payer)
	assert.Nil(t, err)
	require.EqualValues(t, testRent, got)
	require.EqualValues(t, 0, f.lamports(t, payer))
}

func TestHasMint(t *testing.T) {
	f := newFixture(t)

	assert.Nil(t, f.ctrl.HasMint(f.db, f.mint))
	assert.IsErr(t, errors.ErrNotFound, f.ctrl.HasMint(f.db, weavetest.NewAddress()))
}
