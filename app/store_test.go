package app

import (
	"context"
	"testing"
	"time"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/store/iavl"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
	"github.com/iov-one/escrowd/weavetest/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// kvInitializer copies the "kv" genesis section into the store.
type kvInitializer struct{}

func (kvInitializer) FromGenesis(opts weave.Options, kv weave.KVStore) error {
	var pairs map[string]string
	if err := opts.ReadOptions("kv", &pairs); err != nil {
		return err
	}
	for k, v := range pairs {
		if err := kv.Set([]byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

// pathDecoder builds a transaction routed by the raw bytes.
func pathDecoder(raw []byte) (weave.Tx, error) {
	switch string(raw) {
	case "":
		return nil, errors.Wrap(errors.ErrInvalidInput, "empty tx")
	case "panic":
		panic("cannot decode")
	}
	return &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: string(raw)}}, nil
}

func newTestApp(t testing.TB, db iavl.CommitStore, h weave.Handler) BaseApp {
	t.Helper()
	qr := weave.NewQueryRouter()
	qr.RegisterAll(orm.RegisterQuery)
	s := NewStoreApp("testapp", db, qr, context.Background()).WithInit(kvInitializer{})
	return NewBaseApp(s, pathDecoder, h, false)
}

func TestStoreAppLifecycle(t *testing.T) {
	db := iavl.NewMemCommitStore()

	router := NewRouter()
	setHandler := &weavetest.Handler{
		Key:           []byte("beta"),
		Value:         []byte("two"),
		DeliverResult: weave.DeliverResult{Data: []byte("done")},
	}
	router.Handle(&weavetest.Msg{RoutePath: "kv/set"}, setHandler)
	myApp := newTestApp(t, db, router)

	myApp.InitChain(abci.RequestInitChain{
		ChainId:       "test-chain",
		AppStateBytes: []byte(`{"kv": {"alpha": "one"}}`),
	})
	assert.Equal(t, "test-chain", myApp.GetChainID())

	// genesis state only becomes visible to queries after commit
	client := NewABCIStore(myApp)
	val, err := client.Get([]byte("alpha"))
	assert.Nil(t, err)
	assert.Nil(t, val)

	now := time.Now().UTC()
	myApp.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1, Time: now}})
	height, _ := weave.GetHeight(myApp.BlockContext())
	assert.Equal(t, int64(1), height)
	blockTime, _ := weave.BlockTime(myApp.BlockContext())
	assert.Equal(t, now, blockTime)
	assert.Equal(t, "test-chain", weave.GetChainID(myApp.BlockContext()))

	cres := myApp.CheckTx([]byte("kv/set"))
	assert.Equal(t, uint32(0), cres.Code)
	dres := myApp.DeliverTx([]byte("kv/set"))
	require.Equal(t, uint32(0), dres.Code, dres.Log)
	assert.Equal(t, []byte("done"), dres.Data)

	dres = myApp.DeliverTx([]byte("kv/unknown"))
	code, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, dres.Code)

	dres = myApp.DeliverTx(nil)
	code, _ = errors.ABCIInfo(errors.ErrEmpty, false)
	assert.Equal(t, code, dres.Code)

	dres = myApp.DeliverTx([]byte("panic"))
	code, _ = errors.ABCIInfo(errors.ErrPanic, false)
	assert.Equal(t, code, dres.Code)

	myApp.EndBlock(abci.RequestEndBlock{Height: 1})
	commit := myApp.Commit()
	assert.Equal(t, true, len(commit.Data) > 0)

	val, err = client.Get([]byte("alpha"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), val)
	has, err := client.Has([]byte("beta"))
	assert.Nil(t, err)
	assert.Equal(t, true, has)

	info := myApp.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, commit.Data, info.LastBlockAppHash)
	assert.Equal(t, "testapp", info.Data)

	// chain id and height survive a restart
	restarted := newTestApp(t, db, router)
	assert.Equal(t, "test-chain", restarted.GetChainID())
	info = restarted.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)

	// genesis can be loaded only once
	assert.Panics(t, func() {
		restarted.InitChain(abci.RequestInitChain{
			ChainId:       "test-chain",
			AppStateBytes: []byte(`{}`),
		})
	})
}

func TestInitChainRequiresAppState(t *testing.T) {
	myApp := newTestApp(t, iavl.NewMemCommitStore(), NewRouter())
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
	assert.Panics(t, func() {
		myApp.InitChain(abci.RequestInitChain{ChainId: "bad", AppStateBytes: []byte(`{}`)})
	})
}

func TestQuery(t *testing.T) {
	myApp := newTestApp(t, iavl.NewMemCommitStore(), NewRouter())
	myApp.InitChain(abci.RequestInitChain{
		ChainId:       "query-chain",
		AppStateBytes: []byte(`{"kv": {"acc:1": "a", "acc:2": "b", "other": "c"}}`),
	})
	myApp.Commit()

	client := NewABCIStore(myApp)
	it, err := client.Iterator([]byte("acc:"), []byte("acc;"))
	require.NoError(t, err)
	defer it.Release()

	var keys []string
	for {
		key, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		require.NoError(t, err)
		keys = append(keys, string(key))
	}
	assert.Equal(t, []string{"acc:1", "acc:2"}, keys)

	_, err = client.Iterator([]byte("a"), []byte("z"))
	assert.IsErr(t, errors.ErrHuman, err)

	res := myApp.Query(abci.RequestQuery{Path: "/nothing"})
	code, _ := errors.ABCIInfo(errors.ErrNotFound, false)
	assert.Equal(t, code, res.Code)

	res = myApp.Query(abci.RequestQuery{Path: "/?range", Data: []byte("a")})
	code, _ = errors.ABCIInfo(errors.ErrHuman, false)
	assert.Equal(t, code, res.Code)
}
