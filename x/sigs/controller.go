package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

// SignCodeV1 is the current way to prefix the bytes we use to build a
// signature.
var SignCodeV1 = []byte{0, 0xCA, 0xFE, 0}

const signatureLength = 64

// SignedTx represents a transaction that contains signatures, which can be
// verified by the Decorator.
type SignedTx interface {
	// GetSignBytes returns the canonical byte representation of the
	// message. Used to generate and verify signatures.
	GetSignBytes() ([]byte, error)

	// GetSignatures returns the signatures on the transaction.
	GetSignatures() []*StdSignature
}

// BuildSignBytes combines all info on the actual tx before signing. The
// result is hashed with sha512 so that the signed payload has a constant
// size.
func BuildSignBytes(signBytes []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if len(chainID) > 255 {
		return nil, errors.Wrap(errors.ErrInvalidInput, "chain id too long")
	}

	// encode nonce as 8 byte, big-endian
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, uint64(seq))

	// concatenate everything
	buf := make([]byte, 0, len(SignCodeV1)+1+len(chainID)+len(nonce)+len(signBytes))
	buf = append(buf, SignCodeV1...)
	buf = append(buf, byte(len(chainID)))
	buf = append(buf, chainID...)
	buf = append(buf, nonce...)
	buf = append(buf, signBytes...)

	sum := sha512.Sum512(buf)
	return sum[:], nil
}

// BuildSignBytesTx calculates the sign bytes given a tx.
func BuildSignBytesTx(tx SignedTx, chainID string, seq int64) ([]byte, error) {
	signBytes, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	return BuildSignBytes(signBytes, chainID, seq)
}

// SignTx creates a signature for the given tx.
func SignTx(key solana.PrivateKey, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	toSign, err := BuildSignBytesTx(tx, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := key.Sign(toSign)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot sign: %s", err)
	}
	return &StdSignature{
		Pubkey:    weave.NewAddress(key.PublicKey()),
		Signature: sig[:],
		Sequence:  seq,
	}, nil
}

// VerifyTxSignatures checks all the signatures on the tx and returns the
// list of signer addresses (possibly empty). An error is returned if any
// signature is invalid.
func VerifyTxSignatures(db weave.KVStore, tx SignedTx, chainID string) ([]weave.Address, error) {
	bz, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	sigs := tx.GetSignatures()

	signers := make([]weave.Address, 0, len(sigs))
	for _, sig := range sigs {
		signer, err := VerifySignature(db, sig, bz, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, signer)
	}
	return signers, nil
}

// VerifySignature checks one signature against sign bytes and chain id.
// On success the sequence of the signer is incremented and the signer
// address is returned.
func VerifySignature(db weave.KVStore, sig *StdSignature, signBytes []byte, chainID string) (weave.Address, error) {
	if sig == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}

	bucket := NewBucket()
	user, err := loadOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}

	toSign, err := BuildSignBytes(signBytes, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}
	if !solana.SignatureFromBytes(sig.Signature).Verify(sig.Pubkey.PublicKey(), toSign) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}

	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, errors.Wrap(err, "check and increment sequence")
	}
	if err := bucket.Put(db, user.Pubkey, user); err != nil {
		return nil, err
	}
	return user.Pubkey, nil
}
