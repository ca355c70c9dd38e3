package weave

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowd/errors"
	"github.com/mr-tron/base58"
)

// AddressLength is the length of all addresses. An address is either an
// ed25519 public key of a signer or a program derived address that has no
// private key.
const AddressLength = 32

// Address identifies an account holder, a mint, an escrow or a vault.
type Address []byte

// NewAddress returns the address of the given public key.
func NewAddress(pk solana.PublicKey) Address {
	return Address(pk.Bytes())
}

// ParseAddress decodes an address in its human readable form. The default
// encoding is base58. A "hex:" prefix selects hexadecimal encoding.
func ParseAddress(enc string) (Address, error) {
	var (
		raw []byte
		err error
	)
	if strings.HasPrefix(enc, "hex:") {
		raw, err = hex.DecodeString(strings.TrimPrefix(enc, "hex:"))
	} else {
		raw, err = base58.Decode(enc)
	}
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "cannot decode address %q: %s", enc, err)
	}
	addr := Address(raw)
	if err := addr.Validate(); err != nil {
		return nil, err
	}
	return addr, nil
}

// MustParseAddress is like ParseAddress but panics on error. Use it only
// for constants.
func MustParseAddress(enc string) Address {
	addr, err := ParseAddress(enc)
	if err != nil {
		panic(err)
	}
	return addr
}

// Equals checks if two addresses are the same.
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of this address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// PublicKey returns the address as a key. Only addresses of signers have a
// matching private key.
func (a Address) PublicKey() solana.PublicKey {
	return solana.PublicKeyFromBytes(a)
}

// String returns the base58 representation.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	return base58.Encode(a)
}

// Validate returns an error if the address is not of the valid size.
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInvalidInput, "address length %d", len(a))
	}
	return nil
}

// MarshalJSON provides a base58 representation for JSON, to override the
// standard base64 []byte encoding.
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	return json.Marshal(a.String())
}

// UnmarshalJSON accepts everything ParseAddress does. An empty string
// zeroes the address.
func (a *Address) UnmarshalJSON(raw []byte) error {
	var enc string
	if err := json.Unmarshal(raw, &enc); err != nil {
		return errors.Wrap(errors.ErrInvalidInput, "cannot decode json")
	}
	if len(enc) == 0 {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(enc)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}
