/*
Package escrowd links together all the various components to construct the
escrowd app.
*/
package escrowd

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/iov-one/escrowd/app"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/orm"
	"github.com/iov-one/escrowd/store/iavl"
	"github.com/iov-one/escrowd/weave"
	"github.com/iov-one/escrowd/x"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/ledger"
	"github.com/iov-one/escrowd/x/sigs"
	"github.com/iov-one/escrowd/x/utils"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Name is reported to tendermint in the Info response.
const Name = "escrowd"

// Authenticator returns the typical authentication, just using public key
// signatures.
func Authenticator() x.Authenticator {
	return x.ChainAuth(sigs.Authenticate{})
}

// Chain returns a chain of decorators, to handle authentication, logging,
// and recovery.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		// on CheckTx, bad tx don't affect state
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator(),
		// on DeliverTx, bad tx will increment nonce even if the
		// message fails
		utils.NewSavepoint().OnDeliver(),
		utils.NewActionTagger(),
	)
}

// Router returns a default router, dispatching to the sigs, ledger and
// escrow handlers.
func Router(authFn x.Authenticator) *app.Router {
	r := app.NewRouter()
	sigs.RegisterRoutes(r, authFn)
	ledger.RegisterRoutes(r, authFn, ledger.NewController(authFn))
	// vaults are owned by escrow addresses, only the escrow extension
	// can authorize them
	escrow.RegisterRoutes(r, authFn, ledger.NewController(x.ChainAuth(authFn, escrow.Authority{})))
	return r
}

// QueryRouter returns a default query router, allowing access to "/auth",
// "/mints", "/accounts", "/wallets", "/escrows" and the raw store at "/".
func QueryRouter() weave.QueryRouter {
	r := weave.NewQueryRouter()
	r.RegisterAll(
		sigs.RegisterQuery,
		ledger.RegisterQuery,
		escrow.RegisterQuery,
		orm.RegisterQuery,
	)
	return r
}

// Initializers returns all extensions that read the genesis file.
func Initializers() weave.Initializer {
	return weave.ChainInitializers(
		ledger.Initializer{},
		escrow.Initializer{},
	)
}

// Stack wires up a standard router with a standard decorator chain. This
// can be passed into BaseApp.
func Stack() weave.Handler {
	authFn := Authenticator()
	return Chain().WithHandler(Router(authFn))
}

// Application constructs a basic ABCI application with the given arguments.
// An empty dbPath keeps the state in memory.
func Application(name string, h weave.Handler, tx weave.TxDecoder, dbPath string, debug bool) (app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return app.BaseApp{}, err
	}
	store := app.NewStoreApp(name, kv, QueryRouter(), context.Background()).
		WithInit(Initializers())
	return app.NewBaseApp(store, tx, h, debug), nil
}

// GenerateApp is used to create a stub for server/start.go command.
func GenerateApp(home string, logger log.Logger, debug bool) (abci.Application, error) {
	// db goes in a subdir, but "" stays "" to use memdb
	var dbPath string
	if home != "" {
		dbPath = filepath.Join(home, "escrow.db")
	}

	application, err := Application(Name, Stack(), TxDecoder, dbPath, debug)
	if err != nil {
		return nil, err
	}
	application.WithLogger(logger)
	return application, nil
}

// CommitKVStore returns an initialized KVStore that persists the data to
// the named path.
func CommitKVStore(dbPath string) (weave.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewMemCommitStore(), nil
	}

	path, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidInput, "invalid database name %q: %s", dbPath, err)
	}
	// some external calls accidentally add a ".db", which is removed
	path = strings.TrimSuffix(path, filepath.Ext(path))

	kv, err := iavl.NewCommitStore(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return kv, nil
}
