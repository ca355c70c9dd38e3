package weave

import (
	"math"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowd/errors"
)

const (
	// MaxSeedLength is the longest a single derivation seed can be.
	MaxSeedLength = solana.MaxSeedLength

	// MaxSeeds is the number of seeds a caller may provide. One more slot
	// is taken by the bump.
	MaxSeeds = solana.MaxSeeds - 1
)

// ProgramAddress computes the address derived from seeds and bump under the
// given program id. The derivation is a one-way hash; the result is only
// accepted if it is not a valid ed25519 public key, so that no private key
// can ever sign for it. Such an address can be controlled only by the program
// that is able to reproduce the derivation.
//
// ErrInvalidState is returned when the bump does not produce an off-curve
// address.
func ProgramAddress(programID Address, bump uint8, seeds ...[]byte) (Address, error) {
	if err := programID.Validate(); err != nil {
		return nil, errors.Wrap(err, "program id")
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	all := make([][]byte, 0, len(seeds)+1)
	all = append(all, seeds...)
	all = append(all, []byte{bump})
	pk, err := solana.CreateProgramAddress(all, programID.PublicKey())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidState, "bump %d: %s", bump, err)
	}
	return NewAddress(pk), nil
}

// FindProgramAddress searches for the canonical bump of the given seeds. The
// canonical bump is the lowest value that yields a valid program address, so
// for any set of seeds there is exactly one canonical address.
func FindProgramAddress(programID Address, seeds ...[]byte) (Address, uint8, error) {
	if err := programID.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "program id")
	}
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 0; bump <= math.MaxUint8; bump++ {
		addr, err := ProgramAddress(programID, uint8(bump), seeds...)
		switch {
		case err == nil:
			return addr, uint8(bump), nil
		case errors.ErrInvalidState.Is(err):
			continue
		default:
			return nil, 0, err
		}
	}
	return nil, 0, errors.Wrap(errors.ErrInvalidInput, "no viable bump for seeds")
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(errors.ErrInvalidInput, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(errors.ErrInvalidInput, "seed %d is %d bytes, max %d", i, len(s), MaxSeedLength)
		}
	}
	return nil
}
