package solver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/on-the-ground/coinchange/coins"
)

var ErrMismatch = errors.New("algorithms disagree")

// CrossCheck runs every algorithm in algs on req concurrently and fails
// with ErrMismatch unless every count is equal. With no algs it runs every
// algorithm, leaving out the enumerating ones when the count exceeds
// MaxEnumeration. Each run gets its own copy of the coins. A panicking run
// is reported as an error rather than crashing the caller.
func (s *Solver) CrossCheck(ctx context.Context, req Request, algs ...Algorithm) ([]Result, error) {
	d, err := s.Normalize(req)
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}

	if len(algs) == 0 {
		algs = s.defaultCrossCheck(req.Target, d)
	}

	results := make([]Result, len(algs))
	errs := make([]error, len(algs))

	wg := sync.WaitGroup{}
	for i, alg := range algs {
		wg.Add(1)
		go func(i int, alg Algorithm) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("panic in counter", zap.String("algorithm", string(alg)), zap.Any("error", r))
					errs[i] = fmt.Errorf("%s panicked: %v", alg, r)
				}
			}()
			results[i], errs[i] = s.run(ctx, alg, req.Target, slices.Clone(d))
		}(i, alg)
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		return nil, err
	}

	for _, r := range results[1:] {
		if r.Count != results[0].Count {
			s.logger.Error("cross check failed",
				zap.String("reference", string(results[0].Algorithm)),
				zap.Uint64("reference_count", results[0].Count),
				zap.String("algorithm", string(r.Algorithm)),
				zap.Uint64("count", r.Count),
			)
			return results, fmt.Errorf("%w: %s=%d, %s=%d", ErrMismatch,
				results[0].Algorithm, results[0].Count, r.Algorithm, r.Count)
		}
	}
	return results, nil
}

func (s *Solver) defaultCrossCheck(target int, d coins.Denominations) []Algorithm {
	algs := make([]Algorithm, 0, len(Algorithms()))
	for _, alg := range Algorithms() {
		if err := s.checkEnumeration(alg, target, d); err != nil {
			s.logger.Info("skipping counter in cross check", zap.String("algorithm", string(alg)), zap.Error(err))
			continue
		}
		algs = append(algs, alg)
	}
	return algs
}
