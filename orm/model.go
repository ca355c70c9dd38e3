package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
)

// Model is implemented by any entity that can be stored using a
// ModelBucket.
type Model interface {
	proto.Message

	// Validate returns error if the model is not in a valid state to save
	// to the db (eg. field missing, out of range, ...)
	Validate() error
}

// marshal validates and serializes the model.
func marshal(m Model) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidModel, "cannot marshal %T: %s", m, err)
	}
	return raw, nil
}

// unmarshal loads raw into dest.
func unmarshal(raw []byte, dest Model) error {
	dest.Reset()
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot unmarshal %T: %s", dest, err)
	}
	return nil
}

// newInstance returns a fresh zero value of the same type as proto.
func newInstance(proto Model) Model {
	return reflect.New(reflect.TypeOf(proto).Elem()).Interface().(Model)
}
