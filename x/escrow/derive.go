package escrow

import (
	"encoding/binary"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

const (
	escrowSeed = "escrow"
	vaultSeed  = "vault"
)

// escrowSeeds returns the derivation seeds of an escrow address.
func escrowSeeds(maker weave.Address, seed uint64, mintA weave.Address) [][]byte {
	le := make([]byte, 8)
	binary.LittleEndian.PutUint64(le, seed)
	return [][]byte{[]byte(escrowSeed), maker, le, mintA}
}

// EscrowAddress returns the address and canonical bump of the escrow
// identified by the maker, the seed and the deposited mint.
func EscrowAddress(programID, maker weave.Address, seed uint64, mintA weave.Address) (weave.Address, uint8, error) {
	if err := maker.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "maker")
	}
	if err := mintA.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "mint a")
	}
	return weave.FindProgramAddress(programID, escrowSeeds(maker, seed, mintA)...)
}

// VaultAddress returns the address and canonical bump of the vault that
// belongs to the escrow.
func VaultAddress(programID, escrow weave.Address) (weave.Address, uint8, error) {
	if err := escrow.Validate(); err != nil {
		return nil, 0, errors.Wrap(err, "escrow")
	}
	return weave.FindProgramAddress(programID, []byte(vaultSeed), escrow)
}

// CheckEscrowAddress ensures that addr is the canonical address of the
// escrow, using the bump stored in the record.
func CheckEscrowAddress(programID weave.Address, e *Escrow, addr weave.Address) error {
	if e.Bump > 255 {
		return errors.Wrapf(errors.ErrInvalidState, "bump %d", e.Bump)
	}
	seeds := escrowSeeds(e.Maker, e.Seed, e.MintA)
	got, err := weave.ProgramAddress(programID, uint8(e.Bump), seeds...)
	if err != nil {
		return err
	}
	if !got.Equals(addr) {
		return errors.Wrap(errors.ErrUnauthorized, "escrow address mismatch")
	}
	// Any viable lower bump makes the stored one non canonical.
	for bump := uint32(0); bump < e.Bump; bump++ {
		if _, err := weave.ProgramAddress(programID, uint8(bump), seeds...); err == nil {
			return errors.Wrapf(errors.ErrUnauthorized, "bump %d is not canonical", e.Bump)
		}
	}
	return nil
}
