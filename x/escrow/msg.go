package escrow

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

const (
	pathMakeMsg   = "escrow/make"
	pathTakeMsg   = "escrow/take"
	pathRefundMsg = "escrow/refund"
)

var (
	_ weave.Msg = (*MakeMsg)(nil)
	_ weave.Msg = (*TakeMsg)(nil)
	_ weave.Msg = (*RefundMsg)(nil)
)

// Path returns the routing path for this message.
func (*MakeMsg) Path() string {
	return pathMakeMsg
}

// Validate makes sure that this is sensible.
func (m *MakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	if m.Maker != nil {
		errs = errors.AppendField(errs, "Maker", m.Maker.Validate())
	}
	errs = errors.AppendField(errs, "MintA", m.MintA.Validate())
	errs = errors.AppendField(errs, "MintB", m.MintB.Validate())
	if m.DepositAmount == 0 {
		errs = errors.Append(errs, errors.Field("DepositAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	if m.ReceiveAmount == 0 {
		errs = errors.Append(errs, errors.Field("ReceiveAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	return errs
}

// Path returns the routing path for this message.
func (*TakeMsg) Path() string {
	return pathTakeMsg
}

// Validate makes sure that this is sensible.
func (m *TakeMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	if m.Taker != nil {
		errs = errors.AppendField(errs, "Taker", m.Taker.Validate())
	}
	return errs
}

// Path returns the routing path for this message.
func (*RefundMsg) Path() string {
	return pathRefundMsg
}

// Validate makes sure that this is sensible.
func (m *RefundMsg) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", m.Metadata.Validate())
	errs = errors.AppendField(errs, "Escrow", m.Escrow.Validate())
	return errs
}
