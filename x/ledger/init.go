package ledger

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/weave"
)

const optKey = "ledger"

// GenesisMint is used to parse a mint from the genesis file. The address
// is derived from the authority and the symbol.
type GenesisMint struct {
	Authority weave.Address `json:"authority"`
	Decimals  uint32        `json:"decimals"`
	Symbol    string        `json:"symbol"`
}

// GenesisAccount funds the associated account of the owner. Genesis
// accounts pay no deposit.
type GenesisAccount struct {
	Owner  weave.Address `json:"owner"`
	Mint   weave.Address `json:"mint"`
	Amount uint64        `json:"amount"`
}

// GenesisWallet sets the native balance of an address.
type GenesisWallet struct {
	Address  weave.Address `json:"address"`
	Lamports uint64        `json:"lamports"`
}

// Genesis is the content of the "ledger" genesis section.
type Genesis struct {
	Mints    []GenesisMint    `json:"mints"`
	Accounts []GenesisAccount `json:"accounts"`
	Wallets  []GenesisWallet  `json:"wallets"`
}

// Initializer fulfils the weave.Initializer interface to load data from
// the genesis file.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis stores the configuration, then all mints, accounts and
// wallets declared in genesis.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	if err := gconf.InitConfig(db, opts, confKey, &conf); err != nil {
		return errors.Wrap(err, "init config")
	}

	var gen Genesis
	if err := opts.ReadOptions(optKey, &gen); err != nil {
		return err
	}

	ctrl := NewController(nil)
	for i, m := range gen.Mints {
		if _, err := ctrl.CreateMint(db, m.Authority, m.Decimals, m.Symbol); err != nil {
			return errors.Wrapf(err, "mint #%d", i)
		}
	}
	for i, a := range gen.Accounts {
		if err := a.Owner.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d owner", i)
		}
		if err := genesisAccount(db, ctrl, conf.ProgramID, a); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	for i, w := range gen.Wallets {
		if err := w.Address.Validate(); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
		if err := ctrl.Release(db, w.Address, w.Lamports); err != nil {
			return errors.Wrapf(err, "wallet #%d", i)
		}
	}
	return nil
}

// genesisAccount credits the associated account, bypassing authorization
// and deposits.
func genesisAccount(db weave.KVStore, ctrl BaseController, programID weave.Address, a GenesisAccount) error {
	var mint Mint
	if err := ctrl.mints.One(db, a.Mint, &mint); err != nil {
		return errors.Wrap(err, "mint")
	}
	addr, err := AccountAddress(programID, a.Owner, a.Mint)
	if err != nil {
		return err
	}
	var acc Account
	switch err := ctrl.accounts.One(db, addr, &acc); {
	case err == nil:
	case errors.ErrNotFound.Is(err):
		acc = Account{Metadata: &weave.Metadata{Schema: 1}, Owner: a.Owner, Mint: a.Mint}
	default:
		return err
	}
	if acc.Amount+a.Amount < acc.Amount || mint.Supply+a.Amount < mint.Supply {
		return errors.Wrap(errors.ErrOverflow, "amount")
	}
	acc.Amount += a.Amount
	mint.Supply += a.Amount
	if err := ctrl.accounts.Put(db, addr, &acc); err != nil {
		return err
	}
	return ctrl.mints.Put(db, a.Mint, &mint)
}
