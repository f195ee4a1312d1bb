// Package solver is the entry point the shell talks to. It normalizes raw
// input, dispatches to one of the combination counters and logs each run.
// The counters themselves stay pure; every side effect lives here.
package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/on-the-ground/coinchange/coins"
	"github.com/on-the-ground/coinchange/memo"
	"github.com/on-the-ground/coinchange/recursive"
	"github.com/on-the-ground/coinchange/tabulated"
)

var (
	ErrRecursionTooDeep    = errors.New("recursion too deep")
	ErrTooManyCombinations = errors.New("too many combinations to enumerate")
)

// Request is raw, unvalidated input.
type Request struct {
	Target int
	Coins  []int
}

type Result struct {
	ID        string
	Algorithm Algorithm
	Target    int
	Coins     coins.Denominations
	Count     uint64
	// Table is only set by algorithms that build the full table.
	Table *tabulated.Table
	Span  timespan.TimeSpan
}

func (r Result) Elapsed() time.Duration {
	return r.Span.Duration()
}

type Solver struct {
	opts   Options
	logger *zap.Logger
}

// New returns a Solver. A nil logger discards logs.
func New(opts Options, logger *zap.Logger) *Solver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Solver{opts: opts.withDefaults(), logger: logger}
}

// Normalize validates req and returns its coins sorted ascending.
func (s *Solver) Normalize(req Request) (coins.Denominations, error) {
	if err := coins.ValidateTarget(req.Target); err != nil {
		return nil, err
	}
	var opts []coins.Option
	if s.opts.Dedup {
		opts = append(opts, coins.WithoutDuplicates())
	}
	return coins.Normalize(req.Coins, opts...)
}

// Solve counts the combinations of req with alg.
func (s *Solver) Solve(ctx context.Context, alg Algorithm, req Request) (Result, error) {
	d, err := s.Normalize(req)
	if err != nil {
		s.logger.Warn("rejected input",
			zap.Int("target", req.Target),
			zap.Ints("coins", req.Coins),
			zap.Error(err),
		)
		return Result{}, fmt.Errorf("invalid input: %w", err)
	}
	return s.run(ctx, alg, req.Target, d)
}

// run requires normalized input.
func (s *Solver) run(ctx context.Context, alg Algorithm, target int, d coins.Denominations) (Result, error) {
	if alg.recursesOnCallStack() && s.opts.MaxRecursionDepth > 0 {
		if depth := recursive.Depth(target, d); depth > s.opts.MaxRecursionDepth {
			return Result{}, fmt.Errorf("%w: %s needs depth %d, limit is %d",
				ErrRecursionTooDeep, alg, depth, s.opts.MaxRecursionDepth)
		}
	}

	if err := s.checkEnumeration(alg, target, d); err != nil {
		return Result{}, err
	}

	res := Result{
		ID:        uuid.New().String(),
		Algorithm: alg,
		Target:    target,
		Coins:     d,
	}

	start := time.Now()
	switch alg {
	case Recursive:
		res.Count = recursive.Count(target, d)
	case Iterative:
		res.Count = recursive.CountIterative(target, d)
	case Memoized:
		store, closeStore, err := s.newMemo()
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", alg, err)
		}
		res.Count = recursive.CountMemoized(target, d, store)
		closeStore()
	case Tabulated:
		table, count := tabulated.Count(target, d)
		res.Table, res.Count = &table, count
	case Parallel:
		table, err := tabulated.BuildParallel(ctx, target, d, s.opts.Workers)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", alg, err)
		}
		res.Table, res.Count = &table, table.Answer()
	case Rolling:
		res.Count = tabulated.CountRolling(target, d)
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, string(alg))
	}
	res.Span = timespan.BetweenTimes(start, time.Now())

	s.logger.Info("counted combinations",
		zap.String("id", res.ID),
		zap.String("algorithm", string(alg)),
		zap.Int("target", target),
		zap.Stringer("coins", d),
		zap.Uint64("count", res.Count),
		zap.Duration("elapsed", res.Elapsed()),
	)
	return res, nil
}

// checkEnumeration refuses enumerating algorithms whose count, computed in
// O(numCoins * target) first, exceeds MaxEnumeration.
func (s *Solver) checkEnumeration(alg Algorithm, target int, d coins.Denominations) error {
	if !alg.enumerates() || s.opts.MaxEnumeration == 0 {
		return nil
	}
	if count := tabulated.CountRolling(target, d); count > s.opts.MaxEnumeration {
		return fmt.Errorf("%w: %s would visit %d combinations, limit is %d",
			ErrTooManyCombinations, alg, count, s.opts.MaxEnumeration)
	}
	return nil
}

// newMemo builds a fresh store for one memoized run. The returned func
// releases it.
func (s *Solver) newMemo() (memo.Store[uint64], func(), error) {
	switch s.opts.MemoBackend {
	case MemoRistretto:
		store, err := memo.NewRistretto[uint64](int64(s.opts.MemoSize))
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case MemoTable:
		return memo.NewTable[uint64](s.opts.MemoSize, s.opts.MemoShards), func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownMemoBackend, string(s.opts.MemoBackend))
}
