package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/escrowd/errors"
)

// collectRange returns a snapshot of all btree items in [start, end) in
// ascending order. A nil bound is open.
func collectRange(bt *btree.BTree, start, end []byte) []entry {
	var items []entry
	collect := func(item btree.Item) bool {
		items = append(items, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		bt.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	return items
}

// mergeIterator combines a snapshot of cached items with the iterator of
// the parent store. Cached items shadow parent entries with the same key
// and deleted items hide them.
type mergeIterator struct {
	cached    []entry
	parent    Iterator
	ascending bool

	// head of the parent iterator
	started      bool
	pKey, pValue []byte
	pValid       bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []entry, parent Iterator, ascending bool) *mergeIterator {
	return &mergeIterator{
		cached:    cached,
		parent:    parent,
		ascending: ascending,
	}
}

func (m *mergeIterator) advanceParent() error {
	key, value, err := m.parent.Next()
	switch {
	case err == nil:
		m.pKey, m.pValue, m.pValid = key, value, true
	case errors.ErrIteratorDone.Is(err):
		m.pKey, m.pValue, m.pValid = nil, nil, false
	default:
		return err
	}
	return nil
}

// Next returns the next visible key-value pair.
func (m *mergeIterator) Next() (key, value []byte, err error) {
	if !m.started {
		m.started = true
		if err := m.advanceParent(); err != nil {
			return nil, nil, err
		}
	}
	for {
		if len(m.cached) == 0 && !m.pValid {
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "merge iterator")
		}
		if len(m.cached) == 0 {
			return m.popParent()
		}
		head := m.cached[0]
		if m.pValid {
			cmp := bytes.Compare(head.key, m.pKey)
			if !m.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return m.popParent()
			}
			if cmp == 0 {
				// cached entry shadows the parent
				if err := m.advanceParent(); err != nil {
					return nil, nil, err
				}
			}
		}
		m.cached = m.cached[1:]
		if !head.deleted {
			return head.key, head.value, nil
		}
	}
}

func (m *mergeIterator) popParent() (key, value []byte, err error) {
	key, value = m.pKey, m.pValue
	if err := m.advanceParent(); err != nil {
		return nil, nil, err
	}
	return key, value, nil
}

// Release releases the Iterator and its parent.
func (m *mergeIterator) Release() {
	m.cached = nil
	if m.parent != nil {
		m.parent.Release()
	}
	m.pValid = false
}
