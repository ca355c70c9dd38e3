package escrowd

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/iov-one/escrowd/x/sigs"
)

// Tx is the transaction envelope of the escrowd chain. Exactly one of the
// message fields must be set.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`

	BumpSequenceMsg  *sigs.BumpSequenceMsg    `protobuf:"bytes,20,opt,name=bump_sequence_msg,json=bumpSequenceMsg,proto3" json:"bump_sequence_msg,omitempty"`
	CreateMintMsg    *ledger.CreateMintMsg    `protobuf:"bytes,30,opt,name=create_mint_msg,json=createMintMsg,proto3" json:"create_mint_msg,omitempty"`
	CreateAccountMsg *ledger.CreateAccountMsg `protobuf:"bytes,31,opt,name=create_account_msg,json=createAccountMsg,proto3" json:"create_account_msg,omitempty"`
	TransferMsg      *ledger.TransferMsg      `protobuf:"bytes,32,opt,name=transfer_msg,json=transferMsg,proto3" json:"transfer_msg,omitempty"`
	MintToMsg        *ledger.MintToMsg        `protobuf:"bytes,33,opt,name=mint_to_msg,json=mintToMsg,proto3" json:"mint_to_msg,omitempty"`
	CloseAccountMsg  *ledger.CloseAccountMsg  `protobuf:"bytes,34,opt,name=close_account_msg,json=closeAccountMsg,proto3" json:"close_account_msg,omitempty"`
	MakeMsg          *escrow.MakeMsg          `protobuf:"bytes,40,opt,name=make_msg,json=makeMsg,proto3" json:"make_msg,omitempty"`
	TakeMsg          *escrow.TakeMsg          `protobuf:"bytes,41,opt,name=take_msg,json=takeMsg,proto3" json:"take_msg,omitempty"`
	RefundMsg        *escrow.RefundMsg        `protobuf:"bytes,42,opt,name=refund_msg,json=refundMsg,proto3" json:"refund_msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ weave.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (weave.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return tx, nil
}

// GetMsg returns the single message carried by this transaction.
func (tx *Tx) GetMsg() (weave.Msg, error) {
	var found []weave.Msg
	if tx.BumpSequenceMsg != nil {
		found = append(found, tx.BumpSequenceMsg)
	}
	if tx.CreateMintMsg != nil {
		found = append(found, tx.CreateMintMsg)
	}
	if tx.CreateAccountMsg != nil {
		found = append(found, tx.CreateAccountMsg)
	}
	if tx.TransferMsg != nil {
		found = append(found, tx.TransferMsg)
	}
	if tx.MintToMsg != nil {
		found = append(found, tx.MintToMsg)
	}
	if tx.CloseAccountMsg != nil {
		found = append(found, tx.CloseAccountMsg)
	}
	if tx.MakeMsg != nil {
		found = append(found, tx.MakeMsg)
	}
	if tx.TakeMsg != nil {
		found = append(found, tx.TakeMsg)
	}
	if tx.RefundMsg != nil {
		found = append(found, tx.RefundMsg)
	}

	switch len(found) {
	case 0:
		return nil, errors.Wrap(errors.ErrInvalidMsg, "no message")
	case 1:
		return found[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidMsg, "%d messages in one transaction", len(found))
	}
}

// SetMsg puts the message into the matching field of the envelope,
// replacing any message that was set before.
func (tx *Tx) SetMsg(msg weave.Msg) error {
	signatures := tx.Signatures
	tx.Reset()
	tx.Signatures = signatures

	switch m := msg.(type) {
	case *sigs.BumpSequenceMsg:
		tx.BumpSequenceMsg = m
	case *ledger.CreateMintMsg:
		tx.CreateMintMsg = m
	case *ledger.CreateAccountMsg:
		tx.CreateAccountMsg = m
	case *ledger.TransferMsg:
		tx.TransferMsg = m
	case *ledger.MintToMsg:
		tx.MintToMsg = m
	case *ledger.CloseAccountMsg:
		tx.CloseAccountMsg = m
	case *escrow.MakeMsg:
		tx.MakeMsg = m
	case *escrow.TakeMsg:
		tx.TakeMsg = m
	case *escrow.RefundMsg:
		tx.RefundMsg = m
	default:
		return errors.WithType(errors.ErrInvalidMsg, msg)
	}
	return nil
}

// GetSignatures returns the signatures on this transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign. Signatures are excluded, the
// sign bytes come from the data itself.
func (tx *Tx) GetSignBytes() ([]byte, error) {
	signatures := tx.Signatures
	tx.Signatures = nil
	bz, err := proto.Marshal(tx)
	tx.Signatures = signatures
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return bz, nil
}
