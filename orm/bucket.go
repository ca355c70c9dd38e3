package orm

import (
	"fmt"
	"regexp"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weave"
)

var isBucketName = regexp.MustCompile(`^[a-z_]{3,10}$`).MatchString

// Bucket is a prefixed subspace of the DB holding models of a single type,
// along with their secondary indexes.
//
// This is a generic building block that is wrapped by a ModelBucket to
// ensure all data is the same type.
type Bucket struct {
	name    string
	prefix  []byte
	proto   Model
	indexes map[string]index
}

var _ weave.QueryHandler = Bucket{}

// NewBucket creates a bucket to store models of the same type as proto.
func NewBucket(name string, proto Model) Bucket {
	if !isBucketName(name) {
		panic(fmt.Sprintf("Illegal bucket: %s", name))
	}
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		proto:  proto,
	}
}

// Name returns the name of this bucket.
func (b Bucket) Name() string {
	return b.name
}

// Register registers this Bucket and all indexes. You can define a name here
// for queries, which is different than the bucket name used to prefix the
// data.
func (b Bucket) Register(name string, r weave.QueryRouter) {
	if name == "" {
		name = b.name
	}
	root := "/" + name
	r.Register(root, b)
	for name, idx := range b.indexes {
		r.Register(root+"/"+name, idx)
	}
}

// Query handles queries from the QueryRouter.
func (b Bucket) Query(db weave.ReadOnlyKVStore, mod string, data []byte) ([]weave.Model, error) {
	switch mod {
	case weave.KeyQueryMod:
		key := b.DBKey(data)
		value, err := db.Get(key)
		if err != nil {
			return nil, err
		}
		// return nothing on miss
		if value == nil {
			return nil, nil
		}
		return []weave.Model{weave.Pair(key, value)}, nil
	case weave.PrefixQueryMod:
		return queryPrefix(db, b.DBKey(data))
	default:
		return nil, errors.Wrapf(errors.ErrHuman, "not implemented: %s", mod)
	}
}

// DBKey is the full key we store in the db, including prefix. We copy into
// a new array rather than use append, as we don't want consecutive calls to
// overwrite the same byte array.
func (b Bucket) DBKey(key []byte) []byte {
	l := len(b.prefix)
	out := make([]byte, l+len(key))
	copy(out, b.prefix)
	copy(out[l:], key)
	return out
}

// Get loads the model stored under key. It returns nil if there is none.
func (b Bucket) Get(db weave.ReadOnlyKVStore, key []byte) (Model, error) {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	if raw == nil {
		return nil, nil
	}
	m := newInstance(b.proto)
	if err := unmarshal(raw, m); err != nil {
		return nil, err
	}
	return m, nil
}

// Has returns true if a model is stored under key.
func (b Bucket) Has(db weave.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Save will write a model under key, it must be of the same type as proto.
func (b Bucket) Save(db weave.KVStore, key []byte, m Model) error {
	raw, err := marshal(m)
	if err != nil {
		return err
	}
	if err := b.updateIndexes(db, key, m); err != nil {
		return err
	}
	return db.Set(b.DBKey(key), raw)
}

// Delete will remove the value at a key.
func (b Bucket) Delete(db weave.KVStore, key []byte) error {
	if err := b.updateIndexes(db, key, nil); err != nil {
		return err
	}
	return db.Delete(b.DBKey(key))
}

func (b Bucket) updateIndexes(db weave.KVStore, key []byte, next Model) error {
	if len(b.indexes) == 0 {
		return nil
	}
	prev, err := b.Get(db, key)
	if err != nil {
		return err
	}
	for _, idx := range b.indexes {
		if err := idx.Update(db, key, prev, next); err != nil {
			return err
		}
	}
	return nil
}

// WithIndex returns a copy of this bucket with given index, panics if an
// index with that name is already registered.
//
// Designed to be chained.
func (b Bucket) WithIndex(name string, indexer Indexer, unique bool) Bucket {
	if _, ok := b.indexes[name]; ok {
		panic(fmt.Sprintf("Index %s registered twice", name))
	}
	indexes := make(map[string]index, len(b.indexes)+1)
	for n, i := range b.indexes {
		indexes[n] = i
	}
	indexes[name] = newIndex(b.name+"_"+name, indexer, unique, b)
	b.indexes = indexes
	return b
}

// Index returns the index with given name.
func (b Bucket) Index(name string) (index, error) {
	idx, ok := b.indexes[name]
	if !ok {
		return index{}, errors.Wrapf(ErrInvalidIndex, "no index with name %s", name)
	}
	return idx, nil
}
