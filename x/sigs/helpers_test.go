package sigs

import (
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/weavetest"
)

// StdTx is a minimal signed transaction used in tests.
type StdTx struct {
	weave.Tx
	Payload    []byte
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)

// NewStdTx creates a tx carrying given payload as its sign bytes.
func NewStdTx(payload []byte) *StdTx {
	return &StdTx{
		Tx:      &weavetest.Tx{Msg: &weavetest.Msg{RoutePath: "test/payload"}},
		Payload: payload,
	}
}

func (tx StdTx) GetSignBytes() ([]byte, error) {
	return tx.Payload, nil
}

func (tx StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}
