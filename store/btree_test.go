package store

import (
	"testing"

	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func memBase() (CacheableKVStore, func()) {
	return BTreeCacheable{EmptyKVStore{}}.CacheWrap(), func() {}
}

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(memBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(memBase).CacheConflicts(t)
}

func TestBTreeIteratorWithConflicts(t *testing.T) {
	NewTestSuite(memBase).IteratorWithConflicts(t)
}

// TestNestedCacheWraps checks that a savepoint inside a savepoint can be
// discarded without losing the outer changes.
func TestNestedCacheWraps(t *testing.T) {
	db := MemStore()
	outer := db.CacheWrap()
	assert.Nil(t, outer.Set([]byte("escrow"), []byte("active")))

	inner := outer.CacheWrap()
	assert.Nil(t, inner.Set([]byte("vault"), []byte("1000")))
	assert.Nil(t, inner.Delete([]byte("escrow")))
	inner.Discard()

	val, err := outer.Get([]byte("escrow"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("active"), val)
	has, err := outer.Has([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	assert.Nil(t, outer.Write())
	val, err = db.Get([]byte("escrow"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("active"), val)
}

func TestLogableStore(t *testing.T) {
	db, ops := LogableStore()
	assert.Nil(t, db.Set([]byte("a"), []byte("1")))
	assert.Nil(t, db.Delete([]byte("b")))

	got := ops.ShowOps()
	assert.Equal(t, 2, len(got))
	key, value, ok := got[0].IsSetOp()
	assert.Equal(t, true, ok)
	assert.Equal(t, []byte("a"), key)
	assert.Equal(t, []byte("1"), value)
	_, _, ok = got[1].IsSetOp()
	assert.Equal(t, false, ok)
}

func TestNilKeyRejected(t *testing.T) {
	db := MemStore()
	if err := db.Set(nil, []byte("x")); !errors.ErrDatabase.Is(err) {
		t.Fatalf("want database error, got %+v", err)
	}
	if err := db.Delete(nil); !errors.ErrDatabase.Is(err) {
		t.Fatalf("want database error, got %+v", err)
	}
}
