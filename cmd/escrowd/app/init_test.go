package escrowd

import (
	"encoding/json"
	"testing"

	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/stretchr/testify/require"
)

func TestGenesisState(t *testing.T) {
	authority, holder := weavetest.NewAddress(), weavetest.NewAddress()
	raw, err := GenesisState(authority, holder)
	require.NoError(t, err)

	var opts weave.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	db := store.MemStore()
	require.NoError(t, Initializers().FromGenesis(opts, db))

	var gen ledger.Genesis
	require.NoError(t, opts.ReadOptions("ledger", &gen))
	assert.Equal(t, len(DemoSymbols), len(gen.Mints))
	assert.Equal(t, 2*len(DemoSymbols), len(gen.Accounts))

	var wallet ledger.Wallet
	require.NoError(t, ledger.NewWalletBucket().One(db, holder, &wallet))
	assert.Equal(t, demoLamports, wallet.Lamports)
}

func TestGenInitOptions(t *testing.T) {
	owner := weavetest.NewAddress()
	raw, err := GenInitOptions([]string{owner.String()})
	require.NoError(t, err)

	var opts weave.Options
	require.NoError(t, json.Unmarshal(raw, &opts))
	var gen ledger.Genesis
	require.NoError(t, opts.ReadOptions("ledger", &gen))
	assert.Equal(t, owner, gen.Mints[0].Authority)

	_, err = GenInitOptions([]string{"not-an-address"})
	assert.Equal(t, true, err != nil)
}
