package escrow

import (
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/weave"
)

// Initializer stores the escrow configuration from genesis.
type Initializer struct{}

var _ weave.Initializer = Initializer{}

// FromGenesis reads the "escrow" section of the genesis configuration.
func (Initializer) FromGenesis(opts weave.Options, db weave.KVStore) error {
	var conf Configuration
	return gconf.InitConfig(db, opts, confKey, &conf)
}
