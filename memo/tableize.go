package memo

// Tableize memoizes a pure function of Key through store.
func Tableize[O any](pureFn func(Key) O, store Store[O]) func(Key) O {
	return func(k Key) O {
		v, ok := store.Load(k)
		if !ok {
			v = pureFn(k)
			store.Store(k, v)
		}
		return v
	}
}
