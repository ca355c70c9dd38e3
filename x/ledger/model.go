package ledger

import (
	"regexp"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/weave"
)

const (
	maxDecimals = 18

	mintSeed    = "mint"
	accountSeed = "account"
)

var isSymbol = regexp.MustCompile(`^[A-Z0-9]{2,12}$`).MatchString

var (
	_ orm.Model = (*Mint)(nil)
	_ orm.Model = (*Account)(nil)
	_ orm.Model = (*Wallet)(nil)
)

// Validate ensures the mint is consistent.
func (m *Mint) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Authority", m.Authority.Validate())
	if m.Decimals > maxDecimals {
		errs = errors.Append(errs, errors.Field("Decimals", errors.ErrInvalidInput, "max %d", maxDecimals))
	}
	if !isSymbol(m.Symbol) {
		errs = errors.Append(errs, errors.Field("Symbol", errors.ErrInvalidInput, "invalid symbol %q", m.Symbol))
	}
	return errs
}

// Validate ensures the account is consistent.
func (a *Account) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", a.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", a.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", a.Mint.Validate())
	if a.Rent != 0 {
		errs = errors.AppendField(errs, "Payer", a.Payer.Validate())
	}
	return errs
}

// Validate ensures the wallet is consistent.
func (w *Wallet) Validate() error {
	return errors.AppendField(nil, "Metadata", w.Metadata.Validate())
}

// NewMintBucket returns a bucket of mints keyed by the mint address.
func NewMintBucket() orm.ModelBucket {
	return orm.NewModelBucket("mint", &Mint{})
}

// NewAccountBucket returns a bucket of custody accounts keyed by the
// account address, indexed by owner.
func NewAccountBucket() orm.ModelBucket {
	return orm.NewModelBucket("account", &Account{},
		orm.WithIndex("owner", accountOwnerIndexer, false),
	)
}

func accountOwnerIndexer(obj orm.Model) ([]byte, error) {
	acc, ok := obj.(*Account)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", obj)
	}
	return acc.Owner, nil
}

// NewWalletBucket returns a bucket of native balances keyed by the holder
// address.
func NewWalletBucket() orm.ModelBucket {
	return orm.NewModelBucket("wallet", &Wallet{})
}

// MintAddress returns the address of the mint created by the authority
// for the symbol.
func MintAddress(programID, authority weave.Address, symbol string) (weave.Address, error) {
	addr, _, err := weave.FindProgramAddress(programID, []byte(mintSeed), authority, []byte(symbol))
	return addr, err
}

// AccountAddress returns the address of the associated account of the
// owner for the mint.
func AccountAddress(programID, owner, mint weave.Address) (weave.Address, error) {
	addr, _, err := weave.FindProgramAddress(programID, []byte(accountSeed), owner, mint)
	return addr, err
}
