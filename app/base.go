package app

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	abci "github.com/tendermint/tendermint/abci/types"
)

// BaseApp runs transactions on top of a StoreApp. Every incoming tx is
// decoded once and then passed to a single handler, usually a decorator
// chain that ends in a Router.
type BaseApp struct {
	*StoreApp
	decoder weave.TxDecoder
	handler weave.Handler
	debug   bool
}

var _ abci.Application = BaseApp{}

// NewBaseApp returns an ABCI application that decodes transactions with
// decoder and executes them with handler. When debug is set, error logs
// returned to the client are not redacted.
func NewBaseApp(store *StoreApp, decoder weave.TxDecoder, handler weave.Handler, debug bool) BaseApp {
	return BaseApp{
		StoreApp: store,
		decoder:  decoder,
		handler:  handler,
		debug:    debug,
	}
}

// DeliverTx implements abci.Application.
func (b BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.DeliverTxError(err, b.debug)
	}
	res, err := b.handler.Deliver(b.txContext("deliver_tx", tx), b.DeliverStore(), tx)
	return weave.DeliverOrError(res, err, b.debug)
}

// CheckTx implements abci.Application. State changes are written to the
// check cache only and dropped on the next commit.
func (b BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return weave.CheckTxError(err, b.debug)
	}
	res, err := b.handler.Check(b.txContext("check_tx", tx), b.CheckStore(), tx)
	return weave.CheckOrError(res, err, b.debug)
}

func (b BaseApp) txContext(call string, tx weave.Tx) context.Context {
	return weave.WithLogInfo(b.BlockContext(), "call", call, "path", weave.GetPath(tx))
}

// decode never panics. A decoder panic is returned as ErrPanic.
func (b BaseApp) decode(raw []byte) (tx weave.Tx, err error) {
	defer errors.Recover(&err)
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrEmpty, "transaction")
	}
	return b.decoder(raw)
}
