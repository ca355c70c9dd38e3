package ledger

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

const (
	pathCreateMintMsg    = "ledger/create_mint"
	pathCreateAccountMsg = "ledger/create_account"
	pathTransferMsg      = "ledger/transfer"
	pathMintToMsg        = "ledger/mint_to"
	pathCloseAccountMsg  = "ledger/close_account"
)

var (
	_ weave.Msg = (*CreateMintMsg)(nil)
	_ weave.Msg = (*CreateAccountMsg)(nil)
	_ weave.Msg = (*TransferMsg)(nil)
	_ weave.Msg = (*MintToMsg)(nil)
	_ weave.Msg = (*CloseAccountMsg)(nil)
)

func (*CreateMintMsg) Path() string { return pathCreateMintMsg }

func (m *CreateMintMsg) Validate() error {
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

func (*CreateAccountMsg) Path() string { return pathCreateAccountMsg }

func (m *CreateAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	return errs
}

func (*TransferMsg) Path() string { return pathTransferMsg }

func (m *TransferMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	if m.Source != nil {
		errs = errors.AppendField(errs, "Source", m.Source.Validate())
	}
	errs = errors.AppendField(errs, "Destination", m.Destination.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

func (*MintToMsg) Path() string { return pathMintToMsg }

func (m *MintToMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	errs = errors.AppendField(errs, "Owner", m.Owner.Validate())
	if m.Amount == 0 {
		errs = errors.Append(errs, errors.Field("Amount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

func (*CloseAccountMsg) Path() string { return pathCloseAccountMsg }

func (m *CloseAccountMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Mint", m.Mint.Validate())
	return errs
}
