package server

import (
	"context"

	"github.com/iov-one/escrowd/errors"
	"github.com/tendermint/tendermint/abci/server"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// AppGenerator lets us lazily initialize app, using home dir and logger
// potentially initialized with other flags.
type AppGenerator func(home string, logger log.Logger, debug bool) (abci.Application, error)

// StartCmd initializes the application in home and serves it over an ABCI
// socket at bind until ctx is cancelled.
func StartCmd(ctx context.Context, gen AppGenerator, logger log.Logger, home, bind string, debug bool) error {
	app, err := gen(home, logger, debug)
	if err != nil {
		return errors.Wrap(err, "create application")
	}

	logger.Info("Starting ABCI app", "bind", bind)

	svr, err := server.NewServer(bind, "socket", app)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidInput, "cannot create listener: %s", err)
	}
	svr.SetLogger(logger.With("module", "abci-server"))
	if err := svr.Start(); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "cannot start server: %s", err)
	}

	<-ctx.Done()
	logger.Info("Stopping ABCI app")
	if err := svr.Stop(); err != nil {
		return errors.Wrapf(errors.ErrInvalidState, "cannot stop server: %s", err)
	}
	return nil
}
