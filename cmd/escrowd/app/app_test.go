package escrowd

import (
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/iov-one/escrowd/x/sigs"
	"github.com/iov-one/escrowd/x/utils"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/common"
)

const testChainID = "escrow-test"

type testChain struct {
	t      *testing.T
	app    app.BaseApp
	client *app.ABCIStore
	height int64
}

func newTestChain(t *testing.T, authority weave.Address, holders ...weave.Address) *testChain {
	t.Helper()
	myApp, err := Application(Name, Stack(), TxDecoder, "", false)
	require.NoError(t, err)

	state, err := GenesisState(authority, holders...)
	require.NoError(t, err)
	myApp.InitChain(abci.RequestInitChain{
		ChainId:       testChainID,
		AppStateBytes: state,
	})

	c := &testChain{t: t, app: myApp, client: app.NewABCIStore(myApp)}
	c.commit()
	return c
}

// commit closes the current block and opens the next one.
func (c *testChain) commit() {
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: c.height, ChainID: testChainID}})
}

// signedTx wraps msg into a transaction signed by key with its next
// sequence.
func (c *testChain) signedTx(key solana.PrivateKey, msg weave.Msg) []byte {
	c.t.Helper()
	tx := &Tx{}
	require.NoError(c.t, tx.SetMsg(msg))

	seq, err := sigs.NextNonce(c.client, weavetest.KeyAddress(key))
	require.NoError(c.t, err)
	sig, err := sigs.SignTx(key, tx, testChainID, seq)
	require.NoError(c.t, err)
	tx.Signatures = append(tx.Signatures, sig)

	raw, err := proto.Marshal(tx)
	require.NoError(c.t, err)
	return raw
}

// deliver runs the transaction in its own block.
func (c *testChain) deliver(raw []byte) abci.ResponseDeliverTx {
	res := c.app.DeliverTx(raw)
	c.commit()
	return res
}

func (c *testChain) balance(owner, mint weave.Address) uint64 {
	c.t.Helper()
	var conf ledger.Configuration
	require.NoError(c.t, gconf.Load(c.client, "ledger", &conf))
	addr, err := ledger.AccountAddress(conf.ProgramID, owner, mint)
	require.NoError(c.t, err)
	return c.accountAmount(addr)
}

func (c *testChain) accountAmount(addr weave.Address) uint64 {
	c.t.Helper()
	var acc ledger.Account
	err := ledger.NewAccountBucket().One(c.client, addr, &acc)
	if errors.ErrNotFound.Is(err) {
		return 0
	}
	require.NoError(c.t, err)
	return acc.Amount
}

func (c *testChain) mints(authority weave.Address) (weave.Address, weave.Address) {
	c.t.Helper()
	var conf ledger.Configuration
	require.NoError(c.t, gconf.Load(c.client, "ledger", &conf))
	mintA, err := ledger.MintAddress(conf.ProgramID, authority, DemoSymbols[0])
	require.NoError(c.t, err)
	mintB, err := ledger.MintAddress(conf.ProgramID, authority, DemoSymbols[1])
	require.NoError(c.t, err)
	return mintA, mintB
}

func abciCode(err *errors.Error) uint32 {
	code, _ := errors.ABCIInfo(err, false)
	return code
}

func TestMakeAndTakeOverABCI(t *testing.T) {
	makerKey, takerKey := weavetest.NewKey(), weavetest.NewKey()
	maker, taker := weavetest.KeyAddress(makerKey), weavetest.KeyAddress(takerKey)

	chain := newTestChain(t, maker, taker)
	assert.Equal(t, testChainID, chain.app.GetChainID())
	mintA, mintB := chain.mints(maker)
	initialA, initialB := chain.balance(maker, mintA), chain.balance(taker, mintB)

	makeTx := chain.signedTx(makerKey, &escrow.MakeMsg{
		Metadata:      &weave.Metadata{Schema: 1},
		Seed:          42,
		MintA:         mintA,
		MintB:         mintB,
		DepositAmount: 1000,
		ReceiveAmount: 500,
	})
	check := chain.app.CheckTx(makeTx)
	require.Equal(t, uint32(0), check.Code, check.Log)

	res := chain.deliver(makeTx)
	require.Equal(t, uint32(0), res.Code, res.Log)
	escrowAddr := weave.Address(res.Data)
	assert.Nil(t, escrowAddr.Validate())
	assertTag(t, res.Tags, utils.ActionKey, "escrow/make")

	// the escrow record is readable over a bucket query
	query := chain.app.Query(abci.RequestQuery{Path: "/escrows", Data: escrowAddr})
	require.Equal(t, uint32(0), query.Code, query.Log)
	var e escrow.Escrow
	require.NoError(t, app.UnmarshalOneResult(query.Value, &e))
	assert.Equal(t, maker, e.Maker)
	assert.Equal(t, uint64(42), e.Seed)
	assert.Equal(t, uint64(500), e.ReceiveAmount)
	assert.Equal(t, uint64(1000), chain.accountAmount(e.Vault))
	assert.Equal(t, initialA-1000, chain.balance(maker, mintA))

	// replaying the same signed bytes is rejected
	res = chain.deliver(makeTx)
	assert.Equal(t, abciCode(sigs.ErrInvalidSequence), res.Code)

	res = chain.deliver(chain.signedTx(takerKey, &escrow.TakeMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Escrow:   escrowAddr,
	}))
	require.Equal(t, uint32(0), res.Code, res.Log)
	assertTag(t, res.Tags, utils.ActionKey, "escrow/take")

	assert.Equal(t, initialB+500, chain.balance(maker, mintB))
	assert.Equal(t, initialB-500, chain.balance(taker, mintB))
	assert.Equal(t, initialA+1000, chain.balance(taker, mintA))
	assert.Equal(t, uint64(0), chain.accountAmount(e.Vault))
	assert.IsErr(t, errors.ErrNotFound, escrow.NewBucket().Has(chain.client, escrowAddr))

	// a settled escrow cannot be refunded
	res = chain.deliver(chain.signedTx(makerKey, &escrow.RefundMsg{
		Metadata: &weave.Metadata{Schema: 1},
		Escrow:   escrowAddr,
	}))
	assert.Equal(t, abciCode(errors.ErrNotFound), res.Code)
}

func TestMakeAndRefundOverABCI(t *testing.T) {
	makerKey, strangerKey := weavetest.NewKey(), weavetest.NewKey()
	maker := weavetest.KeyAddress(makerKey)

	chain := newTestChain(t, maker, weavetest.KeyAddress(strangerKey))
	mintA, mintB := chain.mints(maker)
	initialA := chain.balance(maker, mintA)

	res := chain.deliver(chain.signedTx(makerKey, &escrow.MakeMsg{
		Metadata:      &weave.Metadata{Schema: 1},
		Seed:          7,
		MintA:         mintA,
		MintB:         mintB,
		DepositAmount: 250,
		ReceiveAmount: 1,
	}))
	require.Equal(t, uint32(0), res.Code, res.Log)
	escrowAddr := weave.Address(res.Data)

	refund := &escrow.RefundMsg{Metadata: &weave.Metadata{Schema: 1}, Escrow: escrowAddr}

	res = chain.deliver(chain.signedTx(strangerKey, refund))
	assert.Equal(t, abciCode(errors.ErrUnauthorized), res.Code)
	assert.Equal(t, initialA-250, chain.balance(maker, mintA))

	res = chain.deliver(chain.signedTx(makerKey, refund))
	require.Equal(t, uint32(0), res.Code, res.Log)
	assert.Equal(t, initialA, chain.balance(maker, mintA))
	assert.IsErr(t, errors.ErrNotFound, escrow.NewBucket().Has(chain.client, escrowAddr))
}

func TestUnsignedTransactionRejected(t *testing.T) {
	maker := weavetest.NewAddress()
	chain := newTestChain(t, maker)
	mintA, mintB := chain.mints(maker)

	tx := &Tx{}
	require.NoError(t, tx.SetMsg(&escrow.MakeMsg{
		Metadata:      &weave.Metadata{Schema: 1},
		Maker:         maker,
		MintA:         mintA,
		MintB:         mintB,
		DepositAmount: 1,
		ReceiveAmount: 1,
	}))
	raw, err := proto.Marshal(tx)
	require.NoError(t, err)

	check := chain.app.CheckTx(raw)
	assert.Equal(t, abciCode(errors.ErrUnauthorized), check.Code)
	res := chain.deliver(raw)
	assert.Equal(t, abciCode(errors.ErrUnauthorized), res.Code)

	res = chain.deliver([]byte("not a transaction"))
	assert.Equal(t, true, res.Code != 0)
}

func assertTag(t testing.TB, tags []common.KVPair, key, value string) {
	t.Helper()
	for _, tag := range tags {
		if string(tag.Key) == key {
			assert.Equal(t, value, string(tag.Value))
			return
		}
	}
	t.Fatalf("tag %q not found", key)
}
