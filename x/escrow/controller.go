package escrow

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/ledger"
)

// Controller implements the escrow lifecycle. Every operation is applied
// atomically: on error no change is written to the store.
type Controller struct {
	auth   x.Authenticator
	bucket orm.ModelBucket
	ledger ledger.Controller
}

// NewController returns a controller authorizing makers and takers with
// auth. The ledger controller must accept Authority as an authenticator,
// otherwise vaults cannot be drained.
func NewController(auth x.Authenticator, tokens ledger.Controller) Controller {
	return Controller{
		auth:   auth,
		bucket: NewBucket(),
		ledger: tokens,
	}
}

// Make creates an escrow together with its vault and moves the deposit
// from the maker's associated account of mint A into the vault. The
// escrow address is returned.
func (c Controller) Make(ctx context.Context, db weave.KVStore, maker weave.Address, seed uint64, mintA, mintB weave.Address, deposit, receive uint64) (weave.Address, error) {
	if !c.auth.HasAddress(ctx, maker) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}
	if deposit == 0 || receive == 0 {
		return nil, errors.Wrap(errors.ErrInvalidAmount, "amounts must be positive")
	}
	for _, mint := range []weave.Address{mintA, mintB} {
		switch err := c.ledger.HasMint(db, mint); {
		case errors.ErrNotFound.Is(err):
			return nil, errors.Wrapf(errors.ErrInvalidInput, "unknown mint %s", mint)
		case err != nil:
			return nil, err
		}
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	addr, bump, err := EscrowAddress(conf.ProgramID, maker, seed, mintA)
	if err != nil {
		return nil, errors.Wrap(err, "escrow address")
	}
	vault, _, err := VaultAddress(conf.ProgramID, addr)
	if err != nil {
		return nil, errors.Wrap(err, "vault address")
	}

	err = atomically(db, func(db weave.KVStore) error {
		switch err := c.bucket.Has(db, addr); {
		case err == nil:
			return errors.Wrapf(errors.ErrDuplicate, "escrow %s", addr)
		case !errors.ErrNotFound.Is(err):
			return err
		}

		rent, err := c.ledger.Reserve(ctx, db, maker)
		if err != nil {
			return errors.Wrap(err, "escrow deposit")
		}
		escrow := &Escrow{
			Metadata:      &weave.Metadata{Schema: 1},
			Maker:         maker,
			Seed:          seed,
			MintA:         mintA,
			MintB:         mintB,
			ReceiveAmount: receive,
			Bump:          uint32(bump),
			Vault:         vault,
			Rent:          rent,
		}
		if err := c.bucket.Insert(db, addr, escrow); err != nil {
			return errors.Wrap(err, "cannot store escrow")
		}
		if _, err := c.ledger.CreateAccount(ctx, db, vault, addr, mintA, maker); err != nil {
			return errors.Wrap(err, "cannot create vault")
		}
		if err := c.pay(ctx, db, maker, vault, mintA, deposit); err != nil {
			return errors.Wrap(err, "cannot fund vault")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	weave.GetLogger(ctx).Info("escrow made",
		"escrow", addr.String(), "maker", maker.String(), "seed", seed, "deposit", deposit, "receive", receive)
	return addr, nil
}

// Take pays the asked amount of mint B from the taker to the maker and
// releases the whole vault to the taker. Missing associated accounts of
// the maker for mint B and of the taker for mint A are allocated at the
// cost of the taker. The vault and the escrow are closed and both deposits
// are returned to the maker.
func (c Controller) Take(ctx context.Context, db weave.KVStore, taker, addr weave.Address) error {
	if !c.auth.HasAddress(ctx, taker) {
		return errors.Wrap(errors.ErrUnauthorized, "taker signature missing")
	}
	escrow, err := c.load(db, addr)
	if err != nil {
		return err
	}

	err = atomically(db, func(db weave.KVStore) error {
		makerB, err := c.ledger.EnsureAccount(ctx, db, escrow.Maker, escrow.MintB, taker)
		if err != nil {
			return errors.Wrap(err, "maker account")
		}
		if err := c.pay(ctx, db, taker, makerB, escrow.MintB, escrow.ReceiveAmount); err != nil {
			return errors.Wrap(err, "cannot pay maker")
		}
		takerA, err := c.ledger.EnsureAccount(ctx, db, taker, escrow.MintA, taker)
		if err != nil {
			return errors.Wrap(err, "taker account")
		}
		return c.settle(ctx, db, addr, escrow, takerA)
	})
	if err != nil {
		return err
	}

	weave.GetLogger(ctx).Info("escrow taken",
		"escrow", addr.String(), "maker", escrow.Maker.String(), "seed", escrow.Seed, "taker", taker.String())
	return nil
}

// Refund returns the whole vault to the maker and closes the escrow. Only
// the recorded maker can refund.
func (c Controller) Refund(ctx context.Context, db weave.KVStore, caller, addr weave.Address) error {
	escrow, err := c.load(db, addr)
	if err != nil {
		return err
	}
	if !escrow.Maker.Equals(caller) || !c.auth.HasAddress(ctx, caller) {
		return errors.Wrap(errors.ErrUnauthorized, "maker signature missing")
	}

	err = atomically(db, func(db weave.KVStore) error {
		makerA, err := c.ledger.EnsureAccount(ctx, db, escrow.Maker, escrow.MintA, escrow.Maker)
		if err != nil {
			return errors.Wrap(err, "maker account")
		}
		return c.settle(ctx, db, addr, escrow, makerA)
	})
	if err != nil {
		return err
	}

	weave.GetLogger(ctx).Info("escrow refunded",
		"escrow", addr.String(), "maker", escrow.Maker.String(), "seed", escrow.Seed)
	return nil
}

// Escrow returns the escrow stored under addr.
func (c Controller) Escrow(db weave.ReadOnlyKVStore, addr weave.Address) (*Escrow, error) {
	var escrow Escrow
	if err := c.bucket.One(db, addr, &escrow); err != nil {
		return nil, errors.Wrapf(err, "escrow %s", addr)
	}
	return &escrow, nil
}

// load returns the escrow after ensuring it is stored under its canonical
// address.
func (c Controller) load(db weave.ReadOnlyKVStore, addr weave.Address) (*Escrow, error) {
	escrow, err := c.Escrow(db, addr)
	if err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if err := CheckEscrowAddress(conf.ProgramID, escrow, addr); err != nil {
		return nil, errors.Wrap(err, "escrow address")
	}
	return escrow, nil
}

// settle drains the vault into dest and closes both the vault and the
// escrow, refunding their deposits to the maker. It must be called only
// with an escrow loaded from addr.
func (c Controller) settle(ctx context.Context, db weave.KVStore, addr weave.Address, escrow *Escrow, dest weave.Address) error {
	authCtx := withAuthority(ctx, addr)

	amount, err := c.ledger.Balance(db, escrow.Vault)
	if err != nil {
		return errors.Wrap(err, "vault")
	}
	if err := c.ledger.Transfer(authCtx, db, escrow.Vault, dest, escrow.MintA, amount); err != nil {
		return errors.Wrap(err, "cannot drain vault")
	}
	if err := c.ledger.CloseAccount(authCtx, db, escrow.Vault, escrow.Maker); err != nil {
		return errors.Wrap(err, "cannot close vault")
	}
	if err := c.bucket.Delete(db, addr); err != nil {
		return errors.Wrap(err, "cannot delete escrow")
	}
	return c.ledger.Release(db, escrow.Maker, escrow.Rent)
}

// pay transfers amount of mint tokens from the associated account of the
// owner. An owner without that account holds no tokens at all.
func (c Controller) pay(ctx context.Context, db weave.KVStore, owner, to, mint weave.Address, amount uint64) error {
	from, err := c.ledger.AccountAddress(db, owner, mint)
	if err != nil {
		return err
	}
	switch _, err := c.ledger.Balance(db, from); {
	case errors.ErrNotFound.Is(err):
		return errors.Wrapf(errors.ErrInsufficientAmount, "balance 0, want %d", amount)
	case err != nil:
		return err
	}
	return c.ledger.Transfer(ctx, db, from, to, mint, amount)
}

// atomically runs fn on a cache wrap of db, writing the changes only if fn
// succeeds. A store that cannot be cache wrapped is rejected.
func atomically(db weave.KVStore, fn func(weave.KVStore) error) error {
	cstore, ok := db.(weave.CacheableKVStore)
	if !ok {
		return errors.Wrapf(errors.ErrInvalidState, "%T cannot roll back changes", db)
	}
	cache := cstore.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	if err := cache.Write(); err != nil {
		return errors.Wrap(err, "cannot write changes")
	}
	return nil
}
