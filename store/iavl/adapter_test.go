package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/escrowd/store"
	"github.com/iov-one/escrowd/weavetest/assert"
)

func makeCommitStore(t testing.TB) (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	assert.Nil(t, err)
	commit, err := NewCommitStore(tmpDir, "base")
	assert.Nil(t, err)
	return commit, func() { os.RemoveAll(tmpDir) }
}

func makeBase() (store.CacheableKVStore, func()) {
	return NewMemCommitStore().Adapter(), func() {}
}

func TestAdapterGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestAdapterCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

func TestAdapterIteratorWithConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).IteratorWithConflicts(t)
}

func TestCommitOverwrite(t *testing.T) {
	suite := store.NewTestSuite(makeBase)
	commit, cleanup := makeCommitStore(t)
	defer cleanup()
	defer commit.Close()

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	k1, k2, k3 := []byte("escrow"), []byte("vault"), []byte("record")
	parent := commit.CacheWrap()
	assert.Nil(t, parent.Set(k1, []byte("one")))
	assert.Nil(t, parent.Set(k2, []byte("two")))
	assert.Nil(t, parent.Write())

	// uncommitted data is not visible in the committed view
	got, err := commit.Get(k1)
	assert.Nil(t, err)
	assert.Nil(t, got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}
	got, err = commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), got)

	child := commit.CacheWrap()
	side := commit.CacheWrap()
	assert.Nil(t, child.Set(k1, []byte("uno")))
	assert.Nil(t, child.Delete(k2))
	assert.Nil(t, child.Set(k3, []byte("three")))

	suite.AssertGetHas(t, side, k1, []byte("one"), true)
	suite.AssertGetHas(t, side, k2, []byte("two"), true)
	suite.AssertGetHas(t, child, k2, nil, false)

	assert.Nil(t, child.Write())
	suite.AssertGetHas(t, side, k1, []byte("uno"), true)
	suite.AssertGetHas(t, side, k3, []byte("three"), true)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)
}

func TestReloadFromDisk(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	assert.Nil(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("maker"), []byte("alice")))
	assert.Nil(t, cache.Write())
	want, err := commit.Commit()
	assert.Nil(t, err)

	commit.Close()

	reopened, err := NewCommitStore(tmpDir, "state")
	assert.Nil(t, err)
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	got, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, want.Version, got.Version)
	assert.Equal(t, want.Hash, got.Hash)

	val, err := reopened.Get([]byte("maker"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("alice"), val)
}
