package ledger

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
)

const confKey = "ledger"

var _ gconf.Configuration = (*Configuration)(nil)

// Validate ensures the configuration is usable.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "ProgramID", c.ProgramID.Validate())
	if !isSymbol(c.NativeSymbol) {
		errs = errors.Append(errs, errors.Field("NativeSymbol", errors.ErrInvalidInput, "invalid symbol %q", c.NativeSymbol))
	}
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confKey, &conf); err != nil {
		return nil, errors.Wrap(err, "load ledger configuration")
	}
	return &conf, nil
}
