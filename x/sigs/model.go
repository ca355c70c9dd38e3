package sigs

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/weave"
)

// maxSequenceValue is limited by the client. The greatest supported nonce
// value at client side is Number.MAX_SAFE_INTEGER = 2^53 - 1
const maxSequenceValue = (1 << 53) - 1

// Validate ensures the user data is consistent.
func (u *UserData) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", u.Metadata.Validate())
	errs = errors.AppendField(errs, "Pubkey", u.Pubkey.Validate())
	if u.Sequence < 0 || u.Sequence > maxSequenceValue {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// CheckAndIncrementSequence implements check and increment operation. If
// current sequence value is the same as given expected value then it is
// incremented. Otherwise an error is returned.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if u.Sequence != expected {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, expected)
	}
	next := u.Sequence + 1
	if next <= 0 || next > maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence out of range")
	}
	u.Sequence = next
	return nil
}

// Validate ensures the signature is well formed. It does not check the
// signature itself.
func (s *StdSignature) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Pubkey", s.Pubkey.Validate())
	if len(s.Signature) != signatureLength {
		errs = errors.Append(errs, errors.Field("Signature", errors.ErrInvalidInput, "want %d bytes, got %d", signatureLength, len(s.Signature)))
	}
	if s.Sequence < 0 || s.Sequence >= maxSequenceValue {
		errs = errors.AppendField(errs, "Sequence", ErrInvalidSequence)
	}
	return errs
}

// NewBucket returns a bucket holding UserData, keyed by the public key.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("sigs", &UserData{})
}

// loadOrCreate returns the user data of given key. A fresh entry with zero
// sequence is returned for a key that never signed anything.
func loadOrCreate(db weave.ReadOnlyKVStore, b orm.ModelBucket, pubkey weave.Address) (*UserData, error) {
	var user UserData
	switch err := b.One(db, pubkey, &user); {
	case err == nil:
		return &user, nil
	case errors.ErrNotFound.Is(err):
		return &UserData{
			Metadata: &weave.Metadata{Schema: 1},
			Pubkey:   pubkey,
		}, nil
	default:
		return nil, errors.Wrap(err, "cannot load user")
	}
}

// NextNonce returns the sequence number that the next signature of given
// signer must use.
func NextNonce(db weave.ReadOnlyKVStore, signer weave.Address) (int64, error) {
	user, err := loadOrCreate(db, NewBucket(), signer)
	if err != nil {
		return 0, err
	}
	return user.Sequence, nil
}
