package ledger

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
)

// Controller is the token functionality exposed to other extensions. All
// operations that move value authorize against the context.
type Controller interface {
	// AccountAddress returns the associated account address of the owner
	// for the mint.
	AccountAddress(db weave.ReadOnlyKVStore, owner, mint weave.Address) (weave.Address, error)

	// CreateAccount allocates a custody account under given address. The
	// payer must authorize and is charged the storage deposit.
	CreateAccount(ctx context.Context, db weave.KVStore, addr, owner, mint, payer weave.Address) (*Account, error)

	// EnsureAccount returns the associated account address of the owner
	// for the mint, allocating it at the cost of the payer if missing.
	EnsureAccount(ctx context.Context, db weave.KVStore, owner, mint, payer weave.Address) (weave.Address, error)

	// Transfer moves amount of mint tokens between two accounts. The
	// owner of the source account must authorize.
	Transfer(ctx context.Context, db weave.KVStore, from, to, mint weave.Address, amount uint64) error

	// CloseAccount removes an empty account. Its deposit is credited to
	// refundTo.
	CloseAccount(ctx context.Context, db weave.KVStore, account, refundTo weave.Address) error

	// MintTo issues new tokens into the account. The mint authority must
	// authorize.
	MintTo(ctx context.Context, db weave.KVStore, mint, account weave.Address, amount uint64) error

	// Reserve charges the storage deposit of a single record to the payer
	// and returns the charged amount.
	Reserve(ctx context.Context, db weave.KVStore, payer weave.Address) (uint64, error)

	// Release credits a previously reserved deposit.
	Release(db weave.KVStore, to weave.Address, amount uint64) error

	// Balance returns the token amount held by the account.
	Balance(db weave.ReadOnlyKVStore, account weave.Address) (uint64, error)

	// HasMint returns ErrNotFound if no mint is registered under the
	// address.
	HasMint(db weave.ReadOnlyKVStore, mint weave.Address) error
}

// BaseController is the storage backed Controller implementation.
type BaseController struct {
	auth     x.Authenticator
	mints    orm.ModelBucket
	accounts orm.ModelBucket
	wallets  orm.ModelBucket
}

var _ Controller = BaseController{}

// NewController returns a controller authorizing operations with given
// authenticator.
func NewController(auth x.Authenticator) BaseController {
	return BaseController{
		auth:     auth,
		mints:    NewMintBucket(),
		accounts: NewAccountBucket(),
		wallets:  NewWalletBucket(),
	}
}

func (c BaseController) AccountAddress(db weave.ReadOnlyKVStore, owner, mint weave.Address) (weave.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	return AccountAddress(conf.ProgramID, owner, mint)
}

func (c BaseController) CreateAccount(ctx context.Context, db weave.KVStore, addr, owner, mint, payer weave.Address) (*Account, error) {
	if !c.auth.HasAddress(ctx, payer) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	if err := c.mints.Has(db, mint); err != nil {
		return nil, errors.Wrapf(err, "mint %s", mint)
	}
	if err := c.accounts.Has(db, addr); err == nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "account %s", addr)
	} else if !errors.ErrNotFound.Is(err) {
		return nil, err
	}

	rent, err := c.Reserve(ctx, db, payer)
	if err != nil {
		return nil, err
	}
	acc := &Account{
		Metadata: &weave.Metadata{Schema: 1},
		Owner:    owner,
		Mint:     mint,
		Rent:     rent,
		Payer:    payer,
	}
	if err := c.accounts.Insert(db, addr, acc); err != nil {
		return nil, errors.Wrap(err, "cannot store account")
	}
	return acc, nil
}

func (c BaseController) EnsureAccount(ctx context.Context, db weave.KVStore, owner, mint, payer weave.Address) (weave.Address, error) {
	addr, err := c.AccountAddress(db, owner, mint)
	if err != nil {
		return nil, err
	}
	switch err := c.accounts.Has(db, addr); {
	case err == nil:
		return addr, nil
	case !errors.ErrNotFound.Is(err):
		return nil, err
	}
	if _, err := c.CreateAccount(ctx, db, addr, owner, mint, payer); err != nil {
		return nil, err
	}
	return addr, nil
}

func (c BaseController) Transfer(ctx context.Context, db weave.KVStore, from, to, mint weave.Address, amount uint64) error {
	var src Account
	if err := c.accounts.One(db, from, &src); err != nil {
		return errors.Wrap(err, "source account")
	}
	if !src.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidInput, "source account holds %s", src.Mint)
	}
	if !c.auth.HasAddress(ctx, src.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "source owner signature missing")
	}
	var dst Account
	if err := c.accounts.One(db, to, &dst); err != nil {
		return errors.Wrap(err, "destination account")
	}
	if !dst.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidInput, "destination account holds %s", dst.Mint)
	}
	if src.Amount < amount {
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance %d, want %d", src.Amount, amount)
	}
	if amount == 0 || from.Equals(to) {
		return nil
	}
	if dst.Amount+amount < dst.Amount {
		return errors.Wrap(errors.ErrOverflow, "destination balance")
	}

	src.Amount -= amount
	dst.Amount += amount
	if err := c.accounts.Put(db, from, &src); err != nil {
		return errors.Wrap(err, "cannot save source")
	}
	if err := c.accounts.Put(db, to, &dst); err != nil {
		return errors.Wrap(err, "cannot save destination")
	}
	return nil
}

func (c BaseController) CloseAccount(ctx context.Context, db weave.KVStore, account, refundTo weave.Address) error {
	var acc Account
	if err := c.accounts.One(db, account, &acc); err != nil {
		return errors.Wrap(err, "account")
	}
	if !c.auth.HasAddress(ctx, acc.Owner) {
		return errors.Wrap(errors.ErrUnauthorized, "owner signature missing")
	}
	if acc.Amount != 0 {
		return errors.Wrapf(errors.ErrInvalidState, "account holds %d tokens", acc.Amount)
	}
	if err := c.accounts.Delete(db, account); err != nil {
		return errors.Wrap(err, "cannot delete account")
	}
	return c.Release(db, refundTo, acc.Rent)
}

func (c BaseController) MintTo(ctx context.Context, db weave.KVStore, mint, account weave.Address, amount uint64) error {
	var m Mint
	if err := c.mints.One(db, mint, &m); err != nil {
		return errors.Wrap(err, "mint")
	}
	if !c.auth.HasAddress(ctx, m.Authority) {
		return errors.Wrap(errors.ErrUnauthorized, "mint authority signature missing")
	}
	var acc Account
	if err := c.accounts.One(db, account, &acc); err != nil {
		return errors.Wrap(err, "account")
	}
	if !acc.Mint.Equals(mint) {
		return errors.Wrapf(errors.ErrInvalidInput, "account holds %s", acc.Mint)
	}
	if m.Supply+amount < m.Supply || acc.Amount+amount < acc.Amount {
		return errors.Wrap(errors.ErrOverflow, "supply")
	}
	m.Supply += amount
	acc.Amount += amount
	if err := c.mints.Put(db, mint, &m); err != nil {
		return errors.Wrap(err, "cannot save mint")
	}
	if err := c.accounts.Put(db, account, &acc); err != nil {
		return errors.Wrap(err, "cannot save account")
	}
	return nil
}

func (c BaseController) Reserve(ctx context.Context, db weave.KVStore, payer weave.Address) (uint64, error) {
	if !c.auth.HasAddress(ctx, payer) {
		return 0, errors.Wrap(errors.ErrUnauthorized, "payer signature missing")
	}
	conf, err := loadConf(db)
	if err != nil {
		return 0, err
	}
	if conf.RentDeposit == 0 {
		return 0, nil
	}

	var w Wallet
	switch err := c.wallets.One(db, payer, &w); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "no %s for the deposit", conf.NativeSymbol)
	default:
		return 0, errors.Wrap(err, "wallet")
	}
	if w.Lamports < conf.RentDeposit {
		return 0, errors.Wrapf(errors.ErrInsufficientAmount, "deposit is %d %s, have %d", conf.RentDeposit, conf.NativeSymbol, w.Lamports)
	}
	w.Lamports -= conf.RentDeposit
	if err := c.wallets.Put(db, payer, &w); err != nil {
		return 0, errors.Wrap(err, "cannot save wallet")
	}
	return conf.RentDeposit, nil
}

func (c BaseController) Release(db weave.KVStore, to weave.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	w, err := c.wallet(db, to)
	if err != nil {
		return err
	}
	if w.Lamports+amount < w.Lamports {
		return errors.Wrap(errors.ErrOverflow, "wallet")
	}
	w.Lamports += amount
	return c.wallets.Put(db, to, w)
}

func (c BaseController) Balance(db weave.ReadOnlyKVStore, account weave.Address) (uint64, error) {
	var acc Account
	if err := c.accounts.One(db, account, &acc); err != nil {
		return 0, errors.Wrap(err, "account")
	}
	return acc.Amount, nil
}

func (c BaseController) HasMint(db weave.ReadOnlyKVStore, mint weave.Address) error {
	if err := c.mints.Has(db, mint); err != nil {
		return errors.Wrapf(err, "mint %s", mint)
	}
	return nil
}

// wallet returns the wallet of given address, or an empty one.
func (c BaseController) wallet(db weave.ReadOnlyKVStore, addr weave.Address) (*Wallet, error) {
	var w Wallet
	switch err := c.wallets.One(db, addr, &w); {
	case err == nil:
		return &w, nil
	case errors.ErrNotFound.Is(err):
		return &Wallet{Metadata: &weave.Metadata{Schema: 1}}, nil
	default:
		return nil, errors.Wrap(err, "wallet")
	}
}

// CreateMint registers a new token under the address derived from the
// authority and symbol.
func (c BaseController) CreateMint(db weave.KVStore, authority weave.Address, decimals uint32, symbol string) (weave.Address, error) {
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	addr, err := MintAddress(conf.ProgramID, authority, symbol)
	if err != nil {
		return nil, err
	}
	mint := &Mint{
		Metadata:  &weave.Metadata{Schema: 1},
		Authority: authority,
		Decimals:  decimals,
		Symbol:    symbol,
	}
	if err := c.mints.Insert(db, addr, mint); err != nil {
		return nil, errors.Wrap(err, "cannot store mint")
	}
	return addr, nil
}
