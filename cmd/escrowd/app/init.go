package escrowd

import (
	"encoding/json"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/ledger"
)

// Defaults for a development chain.
const (
	DefaultRentDeposit  uint64 = 2039280
	DefaultNativeSymbol        = "SOL"
	demoDecimals               = 6
	demoSupply          uint64 = 1000000000000
	demoLamports        uint64 = 1000000000000
)

// DemoSymbols are the mints created by GenInitOptions.
var DemoSymbols = []string{"AAA", "BBB"}

// GenerateKey returns a new signer key along with its address. You can give
// tokens to this address and hand the key to the user to access them.
func GenerateKey() (weave.Address, solana.PrivateKey, error) {
	key, err := solana.NewRandomPrivateKey()
	if err != nil {
		return nil, nil, errors.Wrapf(errors.ErrInvalidState, "cannot generate key: %s", err)
	}
	return weave.NewAddress(key.PublicKey()), key, nil
}

// GenInitOptions will produce some basic options for one rich account, to
// use for dev mode. The account owns two demo mints and holds the whole
// supply of both, plus enough lamports to pay storage deposits.
//
// An optional base58 address can be given as the owner, otherwise a key is
// generated and printed.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner weave.Address
	if len(args) > 0 {
		addr, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, errors.Wrap(err, "owner")
		}
		owner = addr
	} else {
		addr, key, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		owner = addr
		fmt.Printf("Generated owner %s\nPrivate key: %s\n", addr, key)
	}
	return GenesisState(owner)
}

// GenesisState builds the app_state of a development chain. The authority
// controls the demo mints. It and every holder are funded with lamports and
// demo tokens.
func GenesisState(authority weave.Address, holders ...weave.Address) (json.RawMessage, error) {
	ledgerProgram, _, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	escrowProgram, _, err := GenerateKey()
	if err != nil {
		return nil, err
	}

	owners := append([]weave.Address{authority}, holders...)

	var gen ledger.Genesis
	for _, symbol := range DemoSymbols {
		mint, err := ledger.MintAddress(ledgerProgram, authority, symbol)
		if err != nil {
			return nil, errors.Wrapf(err, "mint %s", symbol)
		}
		gen.Mints = append(gen.Mints, ledger.GenesisMint{
			Authority: authority,
			Decimals:  demoDecimals,
			Symbol:    symbol,
		})
		for _, owner := range owners {
			gen.Accounts = append(gen.Accounts, ledger.GenesisAccount{
				Owner:  owner,
				Mint:   mint,
				Amount: demoSupply,
			})
		}
	}
	for _, owner := range owners {
		gen.Wallets = append(gen.Wallets, ledger.GenesisWallet{Address: owner, Lamports: demoLamports})
	}

	state := map[string]interface{}{
		"conf": map[string]interface{}{
			"ledger": ledger.Configuration{
				Metadata:     &weave.Metadata{Schema: 1},
				ProgramID:    ledgerProgram,
				RentDeposit:  DefaultRentDeposit,
				NativeSymbol: DefaultNativeSymbol,
			},
			"escrow": escrow.Configuration{
				Metadata:  &weave.Metadata{Schema: 1},
				ProgramID: escrowProgram,
			},
		},
		"ledger": gen,
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	return raw, nil
}
