package solver

import (
	"errors"
	"fmt"

	"github.com/on-the-ground/coinchange/config"
	"github.com/on-the-ground/coinchange/internal/configkeys"
	"go.uber.org/multierr"
)

// MemoBackend selects the store behind the memoized counter.
type MemoBackend string

const (
	// MemoTable is the generational sync.Map table of package memo.
	MemoTable MemoBackend = "table"

	// MemoRistretto is the lossy ristretto cache of package memo.
	MemoRistretto MemoBackend = "ristretto"
)

var ErrUnknownMemoBackend = errors.New("unknown memo backend")

func ParseMemoBackend(s string) (MemoBackend, error) {
	switch b := MemoBackend(s); b {
	case MemoTable, MemoRistretto:
		return b, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMemoBackend, s)
}

type Options struct {
	// MaxRecursionDepth caps recursive.Depth for algorithms that recurse on
	// the call stack. Zero disables the check.
	MaxRecursionDepth int
	// MaxEnumeration caps the count the enumerating counters (recursive,
	// iterative) may reach, since their running time grows with it.
	// Zero disables the check.
	MaxEnumeration uint64
	// MemoSize is the generation size of the memo table per shard, or the
	// entry budget of the ristretto cache.
	MemoSize    uint32
	MemoShards  int
	MemoBackend MemoBackend
	// Workers is the goroutine count of the parallel table fill.
	Workers int
	// Dedup collapses repeated denominations before counting.
	Dedup bool
}

// OptionsFrom reads every solver key from scope.
func OptionsFrom(scope *config.Scope) (Options, error) {
	var err error
	getInt := func(key string) int {
		v, getErr := config.Get[int](scope, key)
		err = multierr.Append(err, getErr)
		return v
	}

	opts := Options{
		MaxRecursionDepth: getInt(configkeys.ConfigSolverMaxRecursionDepth),
		MemoShards:        getInt(configkeys.ConfigSolverMemoShards),
		Workers:           getInt(configkeys.ConfigSolverWorkers),
	}
	if size := getInt(configkeys.ConfigSolverMemoSize); size > 0 {
		opts.MemoSize = uint32(size)
	}
	if limit := getInt(configkeys.ConfigSolverMaxEnumeration); limit > 0 {
		opts.MaxEnumeration = uint64(limit)
	}

	dedup, dedupErr := config.Get[bool](scope, configkeys.ConfigSolverDedup)
	opts.Dedup = dedup
	err = multierr.Append(err, dedupErr)

	backend, backendErr := config.Get[string](scope, configkeys.ConfigSolverMemoBackend)
	if backendErr == nil {
		opts.MemoBackend, backendErr = ParseMemoBackend(backend)
	}
	err = multierr.Append(err, backendErr)

	if err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o Options) withDefaults() Options {
	if o.MemoSize == 0 {
		o.MemoSize = 1 << 16
	}
	if o.MemoShards < 1 {
		o.MemoShards = 1
	}
	if o.MemoBackend == "" {
		o.MemoBackend = MemoTable
	}
	if o.Workers < 1 {
		o.Workers = 1
	}
	return o
}
