package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/weave"
)

// Escrow records the intent of a maker. It is created together with its
// vault and never modified.
type Escrow struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker    weave.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"maker,omitempty"`
	Seed     uint64          `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	// MintA is the mint of the deposited tokens.
	MintA weave.Address `protobuf:"bytes,4,opt,name=mint_a,json=mintA,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint_a,omitempty"`
	// MintB is the mint the maker wants in return.
	MintB         weave.Address `protobuf:"bytes,5,opt,name=mint_b,json=mintB,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint_b,omitempty"`
	ReceiveAmount uint64        `protobuf:"varint,6,opt,name=receive_amount,json=receiveAmount,proto3" json:"receive_amount,omitempty"`
	// Bump is the canonical derivation bump of the escrow address.
	Bump  uint32        `protobuf:"varint,7,opt,name=bump,proto3" json:"bump,omitempty"`
	Vault weave.Address `protobuf:"bytes,8,opt,name=vault,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"vault,omitempty"`
	// Rent is the storage deposit paid by the maker for this record.
	Rent uint64 `protobuf:"varint,9,opt,name=rent,proto3" json:"rent,omitempty"`
}

func (m *Escrow) Reset()         { *m = Escrow{} }
func (m *Escrow) String() string { return proto.CompactTextString(m) }
func (*Escrow) ProtoMessage()    {}

// Configuration is the escrow extension configuration stored with gconf.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// ProgramID is the derivation root of escrow and vault addresses.
	ProgramID weave.Address `protobuf:"bytes,2,opt,name=program_id,json=programId,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"program_id,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// MakeMsg opens an escrow. Maker defaults to the main signer.
type MakeMsg struct {
	Metadata      *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Maker         weave.Address   `protobuf:"bytes,2,opt,name=maker,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"maker,omitempty"`
	Seed          uint64          `protobuf:"varint,3,opt,name=seed,proto3" json:"seed,omitempty"`
	MintA         weave.Address   `protobuf:"bytes,4,opt,name=mint_a,json=mintA,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint_a,omitempty"`
	MintB         weave.Address   `protobuf:"bytes,5,opt,name=mint_b,json=mintB,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint_b,omitempty"`
	DepositAmount uint64          `protobuf:"varint,6,opt,name=deposit_amount,json=depositAmount,proto3" json:"deposit_amount,omitempty"`
	ReceiveAmount uint64          `protobuf:"varint,7,opt,name=receive_amount,json=receiveAmount,proto3" json:"receive_amount,omitempty"`
}

func (m *MakeMsg) Reset()         { *m = MakeMsg{} }
func (m *MakeMsg) String() string { return proto.CompactTextString(m) }
func (*MakeMsg) ProtoMessage()    {}

// TakeMsg settles an escrow. Taker defaults to the main signer.
type TakeMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Escrow   weave.Address   `protobuf:"bytes,2,opt,name=escrow,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"escrow,omitempty"`
	Taker    weave.Address   `protobuf:"bytes,3,opt,name=taker,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"taker,omitempty"`
}

func (m *TakeMsg) Reset()         { *m = TakeMsg{} }
func (m *TakeMsg) String() string { return proto.CompactTextString(m) }
func (*TakeMsg) ProtoMessage()    {}

// RefundMsg returns the deposit to the maker and closes the escrow.
type RefundMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Escrow   weave.Address   `protobuf:"bytes,2,opt,name=escrow,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"escrow,omitempty"`
}

func (m *RefundMsg) Reset()         { *m = RefundMsg{} }
func (m *RefundMsg) String() string { return proto.CompactTextString(m) }
func (*RefundMsg) ProtoMessage()    {}
