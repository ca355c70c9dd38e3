package server

import (
	"encoding/json"
	"os"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
)

// ValidateGenesis runs every genesis file through the initializer against
// an in-memory store. Nothing is persisted. The first failing file is
// reported.
func ValidateGenesis(ini weave.Initializer, genesisPaths []string) error {
	for _, path := range genesisPaths {
		if err := dryRunGenesis(ini, path); err != nil {
			return errors.Wrap(err, path)
		}
	}
	return nil
}

func dryRunGenesis(ini weave.Initializer, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(errors.ErrNotFound, "read genesis: %s", err)
	}
	var doc struct {
		ChainID  string        `json:"chain_id"`
		AppState weave.Options `json:"app_state"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "decode genesis: %s", err)
	}
	// InitChain refuses the same chain ids
	if doc.ChainID != "" && !weave.IsValidChainID(doc.ChainID) {
		return errors.Wrapf(errors.ErrInvalidInput, "chain id %q", doc.ChainID)
	}
	if err := ini.FromGenesis(doc.AppState, store.MemStore()); err != nil {
		return errors.Wrap(err, "initialize from genesis")
	}
	return nil
}
