package escrow

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/tendermint/tendermint/libs/common"
)

const (
	// pay escrow cost up-front
	makeEscrowCost   int64 = 300
	takeEscrowCost   int64 = 200
	refundEscrowCost int64 = 0

	tagEscrow = "escrow"
)

// RegisterRoutes will instantiate and register all handlers in this
// package. The ledger controller must authenticate with Authority besides
// the signers.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, tokens ledger.Controller) {
	ctrl := NewController(auth, tokens)
	r.Handle(&MakeMsg{}, MakeEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TakeMsg{}, TakeEscrowHandler{auth: auth, ctrl: ctrl})
	r.Handle(&RefundMsg{}, RefundEscrowHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register this bucket as "/escrows".
func RegisterQuery(qr weave.QueryRouter) {
	NewBucket().Register("escrows", qr)
}

func escrowTags(addr weave.Address) []common.KVPair {
	return []common.KVPair{{Key: []byte(tagEscrow), Value: []byte(addr.String())}}
}

// MakeEscrowHandler opens escrows.
type MakeEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = MakeEscrowHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h MakeEscrowHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: makeEscrowCost}, nil
}

// Deliver creates the escrow and funds its vault.
func (h MakeEscrowHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, maker, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.Make(ctx, db, maker, msg.Seed, msg.MintA, msg.MintB, msg.DepositAmount, msg.ReceiveAmount)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: addr, Tags: escrowTags(addr)}, nil
}

// validate does all common pre-processing between Check and Deliver.
func (h MakeEscrowHandler) validate(ctx context.Context, tx weave.Tx) (*MakeMsg, weave.Address, error) {
	var msg *MakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	maker := msg.Maker
	if maker == nil {
		maker = x.MainSigner(ctx, h.auth)
	}
	if maker == nil || !h.auth.HasAddress(ctx, maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return msg, maker, nil
}

// TakeEscrowHandler settles escrows.
type TakeEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = TakeEscrowHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h TakeEscrowHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: takeEscrowCost}, nil
}

// Deliver swaps the tokens and closes the escrow.
func (h TakeEscrowHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, taker, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Take(ctx, db, taker, msg.Escrow); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: escrowTags(msg.Escrow)}, nil
}

// validate does all common pre-processing between Check and Deliver. The
// escrow must exist.
func (h TakeEscrowHandler) validate(ctx context.Context, db weave.KVStore, tx weave.Tx) (*TakeMsg, weave.Address, error) {
	var msg *TakeMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	taker := msg.Taker
	if taker == nil {
		taker = x.MainSigner(ctx, h.auth)
	}
	if taker == nil || !h.auth.HasAddress(ctx, taker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	if _, err := h.ctrl.Escrow(db, msg.Escrow); err != nil {
		return nil, nil, err
	}
	return msg, taker, nil
}

// RefundEscrowHandler returns deposits to makers.
type RefundEscrowHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ weave.Handler = RefundEscrowHandler{}

// Check just verifies it is properly formed and returns the cost of
// executing it.
func (h RefundEscrowHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: refundEscrowCost}, nil
}

// Deliver returns the vault content to the maker and closes the escrow.
func (h RefundEscrowHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, escrow, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.Refund(ctx, db, escrow.Maker, msg.Escrow); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Tags: escrowTags(msg.Escrow)}, nil
}

// validate does all common pre-processing between Check and Deliver. The
// recorded maker must have signed.
func (h RefundEscrowHandler) validate(ctx context.Context, db weave.KVStore, tx weave.Tx) (*RefundMsg, *Escrow, error) {
	var msg *RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	escrow, err := h.ctrl.Escrow(db, msg.Escrow)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, escrow.Maker) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	return msg, escrow, nil
}
