package memo

import (
	"encoding/binary"
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Key identifies one state of the combination recurrence:
// coins[:Bound] are still available and Remaining is left to pay.
type Key struct {
	Bound     int
	Remaining int
}

// Store is the contract shared by every memo backend.
type Store[O any] interface {
	Load(Key) (O, bool)
	Store(Key, O)
}

// Table is a bounded generational memo. Each shard keeps a head generation
// that receives writes and a tail generation that is still readable.
// When the head reaches maxSize entries it becomes the tail and the old
// tail is dropped.
type Table[O any] struct {
	shards  []*generations
	maxSize uint32
}

type generations struct {
	mu      sync.RWMutex
	memos   [2]*sync.Map
	headIdx uint32
	size    atomic.Uint32
}

// NewTable builds a table holding at most about 2*maxSize entries per shard.
func NewTable[O any](maxSize uint32, shards int) *Table[O] {
	if maxSize == 0 {
		panic("maxSize should be greater than 0")
	}
	if shards < 1 {
		shards = 1
	}
	t := &Table[O]{
		shards:  make([]*generations, shards),
		maxSize: maxSize,
	}
	for i := range t.shards {
		t.shards[i] = &generations{memos: [2]*sync.Map{{}, {}}}
	}
	return t
}

func (t *Table[O]) Load(k Key) (O, bool) {
	g := t.shardFor(k)
	g.mu.RLock()
	head, tail := g.memos[g.headIdx], g.memos[1-g.headIdx]
	g.mu.RUnlock()

	if v, ok := lookup(head, k); ok {
		return v.(O), true
	}
	if v, ok := lookup(tail, k); ok {
		return v.(O), true
	}
	var zero O
	return zero, false
}

func (t *Table[O]) Store(k Key, value O) {
	g := t.shardFor(k)
	g.mu.Lock()
	if g.size.Load() >= t.maxSize {
		g.headIdx = 1 - g.headIdx
		g.memos[g.headIdx] = &sync.Map{}
		g.size.Store(0)
	}
	head := g.memos[g.headIdx]
	g.mu.Unlock()

	traverse(head, k).Store(k.Remaining, value)
	g.size.Add(1)
}

func (t *Table[O]) shardFor(k Key) *generations {
	if len(t.shards) == 1 {
		return t.shards[0]
	}
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(k.Bound))
	binary.LittleEndian.PutUint64(buf[8:], uint64(k.Remaining))
	return t.shards[xxhash.Sum64(buf[:])%uint64(len(t.shards))]
}

// lookup walks bound -> remaining without creating nodes.
func lookup(root *sync.Map, k Key) (any, bool) {
	inner, ok := root.Load(k.Bound)
	if !ok {
		return nil, false
	}
	return inner.(*sync.Map).Load(k.Remaining)
}

// traverse returns the inner map of k.Bound, creating it if needed.
func traverse(root *sync.Map, k Key) *sync.Map {
	inner, _ := root.LoadOrStore(k.Bound, &sync.Map{})
	return inner.(*sync.Map)
}
