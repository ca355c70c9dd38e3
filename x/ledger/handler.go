package ledger

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
)

const (
	createMintCost    int64 = 100
	createAccountCost int64 = 50
	transferCost      int64 = 100
	mintToCost        int64 = 50
	closeAccountCost  int64 = 0
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl BaseController) {
	r.Handle(&CreateMintMsg{}, CreateMintHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CreateAccountMsg{}, CreateAccountHandler{auth: auth, ctrl: ctrl})
	r.Handle(&TransferMsg{}, TransferHandler{auth: auth, ctrl: ctrl})
	r.Handle(&MintToMsg{}, MintToHandler{auth: auth, ctrl: ctrl})
	r.Handle(&CloseAccountMsg{}, CloseAccountHandler{auth: auth, ctrl: ctrl})
}

// RegisterQuery will register the mints, accounts and wallets buckets.
func RegisterQuery(qr weave.QueryRouter) {
	NewMintBucket().Register("mints", qr)
	NewAccountBucket().Register("accounts", qr)
	NewWalletBucket().Register("wallets", qr)
}

// CreateMintHandler registers a new token.
type CreateMintHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ weave.Handler = CreateMintHandler{}

func (h CreateMintHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createMintCost}, nil
}

func (h CreateMintHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.CreateMint(db, msg.Authority, msg.Decimals, msg.Symbol)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: addr}, nil
}

func (h CreateMintHandler) validate(ctx context.Context, tx weave.Tx) (*CreateMintMsg, error) {
	var msg *CreateMintMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "authority signature missing")
	}
	return msg, nil
}

// CreateAccountHandler allocates an associated account paid by the main
// signer.
type CreateAccountHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ weave.Handler = CreateAccountHandler{}

func (h CreateAccountHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createAccountCost}, nil
}

func (h CreateAccountHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, payer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.AccountAddress(db, msg.Owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	if _, err := h.ctrl.CreateAccount(ctx, db, addr, msg.Owner, msg.Mint, payer); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: addr}, nil
}

func (h CreateAccountHandler) validate(ctx context.Context, tx weave.Tx) (*CreateAccountMsg, weave.Address, error) {
	var msg *CreateAccountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	payer := x.MainSigner(ctx, h.auth)
	if payer == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return msg, payer, nil
}

// TransferHandler moves tokens between associated accounts.
type TransferHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ weave.Handler = TransferHandler{}

func (h TransferHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: transferCost}, nil
}

func (h TransferHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, source, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	from, err := h.ctrl.AccountAddress(db, source, msg.Mint)
	if err != nil {
		return nil, err
	}
	to, err := h.ctrl.EnsureAccount(ctx, db, msg.Destination, msg.Mint, source)
	if err != nil {
		return nil, errors.Wrap(err, "destination account")
	}
	if err := h.ctrl.Transfer(ctx, db, from, to, msg.Mint, msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

// validate returns the message and the source owner, which defaults to the
// main signer.
func (h TransferHandler) validate(ctx context.Context, tx weave.Tx) (*TransferMsg, weave.Address, error) {
	var msg *TransferMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	source := msg.Source
	if source == nil {
		source = x.MainSigner(ctx, h.auth)
	}
	if source == nil || !h.auth.HasAddress(ctx, source) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "source signature missing")
	}
	return msg, source, nil
}

// MintToHandler issues new tokens. The authority pays for the account if
// it must be allocated.
type MintToHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ weave.Handler = MintToHandler{}

func (h MintToHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, err := h.validate(tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: mintToCost}, nil
}

func (h MintToHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, err := h.validate(tx)
	if err != nil {
		return nil, err
	}
	var mint Mint
	if err := h.ctrl.mints.One(db, msg.Mint, &mint); err != nil {
		return nil, errors.Wrap(err, "mint")
	}
	if !h.auth.HasAddress(ctx, mint.Authority) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	account, err := h.ctrl.EnsureAccount(ctx, db, msg.Owner, msg.Mint, mint.Authority)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.MintTo(ctx, db, msg.Mint, account, msg.Amount); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: account}, nil
}

func (h MintToHandler) validate(tx weave.Tx) (*MintToMsg, error) {
	var msg *MintToMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return msg, nil
}

// CloseAccountHandler closes the empty associated account of the main
// signer.
type CloseAccountHandler struct {
	auth x.Authenticator
	ctrl BaseController
}

var _ weave.Handler = CloseAccountHandler{}

func (h CloseAccountHandler) Check(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: closeAccountCost}, nil
}

func (h CloseAccountHandler) Deliver(ctx context.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, owner, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	addr, err := h.ctrl.AccountAddress(db, owner, msg.Mint)
	if err != nil {
		return nil, err
	}
	if err := h.ctrl.CloseAccount(ctx, db, addr, owner); err != nil {
		return nil, err
	}
	return &weave.DeliverResult{}, nil
}

func (h CloseAccountHandler) validate(ctx context.Context, tx weave.Tx) (*CloseAccountMsg, weave.Address, error) {
	var msg *CloseAccountMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	owner := x.MainSigner(ctx, h.auth)
	if owner == nil {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return msg, owner, nil
}
