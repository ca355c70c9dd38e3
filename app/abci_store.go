package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weave"
	abci "github.com/tendermint/tendermint/abci/types"
)

// ABCIStore exposes the abci.Query interface of an application as a
// ReadOnlyKVStore, so buckets can be used on the client side. The
// application must serve raw keys under "/" (see orm.RegisterQuery).
type ABCIStore struct {
	app abci.Application
}

var _ weave.ReadOnlyKVStore = (*ABCIStore)(nil)

// NewABCIStore returns a store reading through the given application.
func NewABCIStore(app abci.Application) *ABCIStore {
	return &ABCIStore{app: app}
}

// Get will query for exactly one value over the abci store.
func (a *ABCIStore) Get(key []byte) ([]byte, error) {
	query := a.app.Query(abci.RequestQuery{
		Path: "/",
		Data: key,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %d: %s", query.Code, query.Log)
	}
	var value ResultSet
	if err := proto.Unmarshal(query.Value, &value); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, err.Error())
	}
	switch len(value.Results) {
	case 0:
		return nil, nil
	case 1:
		return value.Results[0], nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidState, "%d results for a key query", len(value.Results))
	}
}

// Has returns true if the given key is in the abci app store.
func (a *ABCIStore) Has(key []byte) (bool, error) {
	val, err := a.Get(key)
	return len(val) > 0, err
}

// Iterator only supports prefix ranges, which is what buckets use: start
// and end must be the result of a prefix range, or both nil.
func (a *ABCIStore) Iterator(start, end []byte) (weave.Iterator, error) {
	if end != nil && !isPrefixEnd(start, end) {
		return nil, errors.Wrap(errors.ErrHuman, "only prefix iteration is supported")
	}

	query := a.app.Query(abci.RequestQuery{
		Path: "/?" + weave.PrefixQueryMod,
		Data: start,
	})
	if query.Code != errors.SuccessABCICode {
		return nil, errors.Wrapf(errors.ErrDatabase, "query %d: %s", query.Code, query.Log)
	}
	models, err := toModels(query.Key, query.Value)
	if err != nil {
		return nil, err
	}
	return store.NewSliceIterator(models), nil
}

// ReverseIterator is not supported.
func (a *ABCIStore) ReverseIterator(start, end []byte) (weave.Iterator, error) {
	return nil, errors.Wrap(errors.ErrHuman, "reverse iteration is not supported")
}

// isPrefixEnd returns true if end is the exclusive upper bound of all keys
// starting with start.
func isPrefixEnd(start, end []byte) bool {
	if len(start) != len(end) || len(start) == 0 {
		return false
	}
	l := len(start) - 1
	for l > 0 && start[l] == 0xFF {
		if end[l] != 0 {
			return false
		}
		l--
	}
	return end[l] == start[l]+1 && string(end[:l]) == string(start[:l])
}

func toModels(keys, values []byte) ([]weave.Model, error) {
	var k, v ResultSet
	if err := proto.Unmarshal(keys, &k); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "cannot unmarshal keys")
	}
	if err := proto.Unmarshal(values, &v); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidInput, "cannot unmarshal values")
	}
	return JoinResults(&k, &v)
}
