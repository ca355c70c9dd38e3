package orm

import (
	"bytes"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

const indexPrefix = "_i."

// Indexer calculates the secondary index key for a given model. A nil key
// means the model is not indexed.
type Indexer func(Model) ([]byte, error)

// index stores all primary keys indexed under a value as a set, serialized
// and stored under a single key. A unique index stores the single primary
// key directly.
type index struct {
	id      []byte
	unique  bool
	indexer Indexer
	bucket  Bucket
}

var _ weave.QueryHandler = index{}

func newIndex(name string, indexer Indexer, unique bool, b Bucket) index {
	return index{
		id:      []byte(indexPrefix + name + ":"),
		unique:  unique,
		indexer: indexer,
		bucket:  b,
	}
}

func (i index) indexKey(value []byte) []byte {
	l := len(i.id)
	out := make([]byte, l+len(value))
	copy(out, i.id)
	copy(out[l:], value)
	return out
}

// Update moves the reference to the primary key from the index value of
// prev to the index value of next. A nil prev means insert and a nil next
// means delete.
func (i index) Update(db weave.KVStore, key []byte, prev, next Model) error {
	if prev == nil && next == nil {
		return errors.Wrap(errors.ErrHuman, "update requires at least one non-nil model")
	}
	var (
		before, after []byte
		err           error
	)
	if prev != nil {
		if before, err = i.indexer(prev); err != nil {
			return err
		}
	}
	if next != nil {
		if after, err = i.indexer(next); err != nil {
			return err
		}
	}
	if prev != nil && next != nil && bytes.Equal(before, after) {
		return nil
	}
	if before != nil {
		if err := i.remove(db, before, key); err != nil {
			return err
		}
	}
	if after != nil {
		if err := i.insert(db, after, key); err != nil {
			return err
		}
	}
	return nil
}

func (i index) insert(db weave.KVStore, value, key []byte) error {
	dbKey := i.indexKey(value)
	raw, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if i.unique {
		if raw != nil {
			return errors.Wrapf(errors.ErrDuplicate, "unique index %s", i.id)
		}
		return db.Set(dbKey, key)
	}
	var refs MultiRef
	if raw != nil {
		if err := proto.Unmarshal(raw, &refs); err != nil {
			return errors.Wrap(errors.ErrInvalidModel, err.Error())
		}
	}
	if err := refs.Add(key); err != nil {
		return err
	}
	return i.saveRefs(db, dbKey, &refs)
}

func (i index) remove(db weave.KVStore, value, key []byte) error {
	dbKey := i.indexKey(value)
	raw, err := db.Get(dbKey)
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrap(errors.ErrNotFound, "index entry")
	}
	if i.unique {
		if !bytes.Equal(raw, key) {
			return errors.Wrap(errors.ErrInvalidState, "unique index points elsewhere")
		}
		return db.Delete(dbKey)
	}
	var refs MultiRef
	if err := proto.Unmarshal(raw, &refs); err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	if err := refs.Remove(key); err != nil {
		return err
	}
	return i.saveRefs(db, dbKey, &refs)
}

func (i index) saveRefs(db weave.KVStore, dbKey []byte, refs *MultiRef) error {
	if len(refs.Refs) == 0 {
		return db.Delete(dbKey)
	}
	raw, err := proto.Marshal(refs)
	if err != nil {
		return errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return db.Set(dbKey, raw)
}

// Keys returns all primary keys indexed under value.
func (i index) Keys(db weave.ReadOnlyKVStore, value []byte) ([][]byte, error) {
	raw, err := db.Get(i.indexKey(value))
	if err != nil || raw == nil {
		return nil, err
	}
	if i.unique {
		return [][]byte{raw}, nil
	}
	var refs MultiRef
	if err := proto.Unmarshal(raw, &refs); err != nil {
		return nil, errors.Wrap(errors.ErrInvalidModel, err.Error())
	}
	return refs.Refs, nil
}

// Query returns the models referenced by the index value given as data.
func (i index) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	if mod != weave.KeyQueryMod {
		return nil, errors.Wrapf(errors.ErrHuman, "not implemented: %s", mod)
	}
	keys, err := i.Keys(db, data)
	if err != nil {
		return nil, err
	}
	res := make([]weave.Model, 0, len(keys))
	for _, k := range keys {
		dbKey := i.bucket.DBKey(k)
		value, err := db.Get(dbKey)
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, errors.Wrapf(errors.ErrInvalidState, "dangling index reference %X", k)
		}
		res = append(res, weave.Pair(dbKey, value))
	}
	return res, nil
}
