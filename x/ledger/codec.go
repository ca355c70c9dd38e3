package ledger

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/weave"
)

// Mint describes a fungible token.
type Mint struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// Authority is the only address allowed to issue new tokens.
	Authority weave.Address `protobuf:"bytes,2,opt,name=authority,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"authority,omitempty"`
	Decimals  uint32        `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
	// Supply is the total amount of tokens issued.
	Supply uint64 `protobuf:"varint,4,opt,name=supply,proto3" json:"supply,omitempty"`
	Symbol string `protobuf:"bytes,5,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *Mint) Reset()         { *m = Mint{} }
func (m *Mint) String() string { return proto.CompactTextString(m) }
func (*Mint) ProtoMessage()    {}

// Account holds tokens of a single mint on behalf of its owner.
type Account struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"owner,omitempty"`
	Mint     weave.Address   `protobuf:"bytes,3,opt,name=mint,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint,omitempty"`
	Amount   uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
	// Rent is the storage deposit paid when the account was allocated.
	Rent  uint64        `protobuf:"varint,5,opt,name=rent,proto3" json:"rent,omitempty"`
	Payer weave.Address `protobuf:"bytes,6,opt,name=payer,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"payer,omitempty"`
}

func (m *Account) Reset()         { *m = Account{} }
func (m *Account) String() string { return proto.CompactTextString(m) }
func (*Account) ProtoMessage()    {}

// Wallet is the native lamport balance of an address, used to pay storage
// deposits.
type Wallet struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Lamports uint64          `protobuf:"varint,2,opt,name=lamports,proto3" json:"lamports,omitempty"`
}

func (m *Wallet) Reset()         { *m = Wallet{} }
func (m *Wallet) String() string { return proto.CompactTextString(m) }
func (*Wallet) ProtoMessage()    {}

// Configuration is the ledger extension configuration stored with gconf.
type Configuration struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	// ProgramID is the derivation root of mint and associated account
	// addresses.
	ProgramID weave.Address `protobuf:"bytes,2,opt,name=program_id,json=programId,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"program_id,omitempty"`
	// RentDeposit is the lamport deposit charged for every allocated
	// record.
	RentDeposit  uint64 `protobuf:"varint,3,opt,name=rent_deposit,json=rentDeposit,proto3" json:"rent_deposit,omitempty"`
	NativeSymbol string `protobuf:"bytes,4,opt,name=native_symbol,json=nativeSymbol,proto3" json:"native_symbol,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

// CreateMintMsg registers a new token. The mint address is derived from the
// authority and the symbol.
type CreateMintMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Authority weave.Address   `protobuf:"bytes,2,opt,name=authority,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"authority,omitempty"`
	Decimals  uint32          `protobuf:"varint,3,opt,name=decimals,proto3" json:"decimals,omitempty"`
	Symbol    string          `protobuf:"bytes,4,opt,name=symbol,proto3" json:"symbol,omitempty"`
}

func (m *CreateMintMsg) Reset()         { *m = CreateMintMsg{} }
func (m *CreateMintMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMintMsg) ProtoMessage()    {}

// CreateAccountMsg allocates the associated account of an owner for a
// mint. The main signer pays the deposit.
type CreateAccountMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,2,opt,name=owner,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"owner,omitempty"`
	Mint     weave.Address   `protobuf:"bytes,3,opt,name=mint,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint,omitempty"`
}

func (m *CreateAccountMsg) Reset()         { *m = CreateAccountMsg{} }
func (m *CreateAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CreateAccountMsg) ProtoMessage()    {}

// TransferMsg moves tokens between the associated accounts of the source
// and the destination. The destination account is allocated if needed, at
// the cost of the source.
type TransferMsg struct {
	Metadata    *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Mint        weave.Address   `protobuf:"bytes,2,opt,name=mint,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint,omitempty"`
	Source      weave.Address   `protobuf:"bytes,3,opt,name=source,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"source,omitempty"`
	Destination weave.Address   `protobuf:"bytes,4,opt,name=destination,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"destination,omitempty"`
	Amount      uint64          `protobuf:"varint,5,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *TransferMsg) Reset()         { *m = TransferMsg{} }
func (m *TransferMsg) String() string { return proto.CompactTextString(m) }
func (*TransferMsg) ProtoMessage()    {}

// MintToMsg issues new tokens into the associated account of the owner.
type MintToMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Mint     weave.Address   `protobuf:"bytes,2,opt,name=mint,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint,omitempty"`
	Owner    weave.Address   `protobuf:"bytes,3,opt,name=owner,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"owner,omitempty"`
	Amount   uint64          `protobuf:"varint,4,opt,name=amount,proto3" json:"amount,omitempty"`
}

func (m *MintToMsg) Reset()         { *m = MintToMsg{} }
func (m *MintToMsg) String() string { return proto.CompactTextString(m) }
func (*MintToMsg) ProtoMessage()    {}

// CloseAccountMsg closes the empty associated account of the main signer
// and refunds its deposit.
type CloseAccountMsg struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Mint     weave.Address   `protobuf:"bytes,2,opt,name=mint,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"mint,omitempty"`
}

func (m *CloseAccountMsg) Reset()         { *m = CloseAccountMsg{} }
func (m *CloseAccountMsg) String() string { return proto.CompactTextString(m) }
func (*CloseAccountMsg) ProtoMessage()    {}
