package memo

import (
	ristretto "github.com/dgraph-io/ristretto/v2"
)

// Ristretto adapts a ristretto cache to Store.
// Bound and Remaining must each fit in 32 bits.
type Ristretto[O any] struct {
	cache *ristretto.Cache[uint64, O]
}

func NewRistretto[O any](maxEntries int64) (*Ristretto[O], error) {
	cache, err := ristretto.NewCache(&ristretto.Config[uint64, O]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,

		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}
	return &Ristretto[O]{cache: cache}, nil
}

func (r *Ristretto[O]) Load(k Key) (O, bool) {
	return r.cache.Get(packKey(k))
}

// Store waits for the write buffer so a following Load can observe the value,
// unless ristretto's admission policy rejected it.
func (r *Ristretto[O]) Store(k Key, value O) {
	r.cache.Set(packKey(k), value, 1)
	r.cache.Wait()
}

func (r *Ristretto[O]) Close() {
	r.cache.Close()
}

func packKey(k Key) uint64 {
	return uint64(uint32(k.Bound))<<32 | uint64(uint32(k.Remaining))
}
