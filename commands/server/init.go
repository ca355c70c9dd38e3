package server

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iov-one/escrowd/errors"
	cmn "github.com/tendermint/tendermint/libs/common"
	"github.com/tendermint/tendermint/libs/log"
)

// GenOptions can parse command-line arguments to generate default
// app_state for the genesis file. This is application-specific.
type GenOptions func(args []string) (json.RawMessage, error)

// GenesisDoc involves some tendermint-specific structures we don't want to
// parse, so we just grab it into a raw object format, so we can add one
// line.
type GenesisDoc map[string]json.RawMessage

// GenesisPath returns the location of the genesis file under home, the
// same place tendermint init writes it to.
func GenesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

// InitCmd writes the app_state generated by gen into the genesis file under
// home. If tendermint did not create a genesis file yet, a minimal one with
// a random chain id is created.
func InitCmd(gen GenOptions, logger log.Logger, home string, args []string) error {
	genFile := GenesisPath(home)
	doc, err := loadOrCreateGenesis(genFile, logger)
	if err != nil {
		return err
	}

	if raw, ok := doc["app_state"]; ok && len(raw) > 0 && string(raw) != "null" {
		return errors.Wrapf(errors.ErrDuplicate, "app_state already set in %s", genFile)
	}

	options, err := gen(args)
	if err != nil {
		return errors.Wrap(err, "generate app state")
	}
	doc["app_state"] = options

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	if err := os.WriteFile(genFile, out, 0600); err != nil {
		return errors.Wrap(errors.ErrDatabase, err.Error())
	}
	logger.Info("App state written", "path", genFile)
	return nil
}

func loadOrCreateGenesis(genFile string, logger log.Logger) (GenesisDoc, error) {
	raw, err := os.ReadFile(genFile)
	switch {
	case err == nil:
		var doc GenesisDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, errors.Wrapf(errors.ErrInvalidInput, "genesis file %s: %s", genFile, err)
		}
		logger.Info("Found genesis file", "path", genFile)
		return doc, nil
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(genFile), 0755); err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, err.Error())
		}
		chainID, _ := json.Marshal(fmt.Sprintf("escrow-%s", cmn.RandStr(6)))
		genTime, _ := json.Marshal(time.Now().UTC())
		logger.Info("Generated genesis file", "path", genFile)
		return GenesisDoc{
			"chain_id":     chainID,
			"genesis_time": genTime,
		}, nil
	default:
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
}
