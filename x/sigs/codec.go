package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/weave"
)

// StdSignature is a signature of a transaction by a single key, together
// with the sequence number it was made for.
type StdSignature struct {
	Pubkey    weave.Address `protobuf:"bytes,1,opt,name=pubkey,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"pubkey,omitempty"`
	Signature []byte        `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
	Sequence  int64         `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *StdSignature) Reset()         { *m = StdSignature{} }
func (m *StdSignature) String() string { return proto.CompactTextString(m) }
func (*StdSignature) ProtoMessage()    {}

// UserData is the state stored for every key that ever signed a
// transaction.
type UserData struct {
	Metadata *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Pubkey   weave.Address   `protobuf:"bytes,2,opt,name=pubkey,proto3,casttype=github.com/iov-one/escrowd/weave.Address" json:"pubkey,omitempty"`
	Sequence int64           `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *UserData) Reset()         { *m = UserData{} }
func (m *UserData) String() string { return proto.CompactTextString(m) }
func (*UserData) ProtoMessage()    {}

// BumpSequenceMsg increments the sequence of the signer without doing
// anything else. It invalidates any transaction signed in advance.
type BumpSequenceMsg struct {
	Metadata  *weave.Metadata `protobuf:"bytes,1,opt,name=metadata,proto3" json:"metadata,omitempty"`
	Increment uint32          `protobuf:"varint,2,opt,name=increment,proto3" json:"increment,omitempty"`
}

func (m *BumpSequenceMsg) Reset()         { *m = BumpSequenceMsg{} }
func (m *BumpSequenceMsg) String() string { return proto.CompactTextString(m) }
func (*BumpSequenceMsg) ProtoMessage()    {}
