package escrow

import (
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/gconf"
	"github.com/iov-one/escrowd/orm"
)

const confKey = "escrow"

var (
	_ orm.Model           = (*Escrow)(nil)
	_ gconf.Configuration = (*Configuration)(nil)
)

// Validate ensures the escrow is valid.
func (e *Escrow) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", e.Metadata.Validate())
	errs = errors.AppendField(errs, "Maker", e.Maker.Validate())
	errs = errors.AppendField(errs, "MintA", e.MintA.Validate())
	errs = errors.AppendField(errs, "MintB", e.MintB.Validate())
	errs = errors.AppendField(errs, "Vault", e.Vault.Validate())
	if e.ReceiveAmount == 0 {
		errs = errors.Append(errs, errors.Field("ReceiveAmount", errors.ErrInvalidAmount, "must be positive"))
	}
	if e.Bump > 255 {
		errs = errors.Append(errs, errors.Field("Bump", errors.ErrInvalidInput, "must fit in a byte"))
	}
	return errs
}

// NewBucket returns a bucket of escrows keyed by the escrow address and
// indexed by maker.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket("escrow", &Escrow{},
		orm.WithIndex("maker", makerIndexer, false),
	)
}

func makerIndexer(obj orm.Model) ([]byte, error) {
	e, ok := obj.(*Escrow)
	if !ok {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "%T", obj)
	}
	return e.Maker, nil
}

// Validate ensures the configuration is usable.
func (c *Configuration) Validate() error {
	var errs error
	errs = errors.AppendField(errs, "Metadata", c.Metadata.Validate())
	errs = errors.AppendField(errs, "ProgramID", c.ProgramID.Validate())
	return errs
}

func loadConf(db gconf.ReadStore) (*Configuration, error) {
	var conf Configuration
	if err := gconf.Load(db, confKey, &conf); err != nil {
		return nil, errors.Wrap(err, "load escrow configuration")
	}
	return &conf, nil
}
