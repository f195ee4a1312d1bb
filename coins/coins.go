package coins

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"go.uber.org/multierr"
)

var (
	ErrNoCoins         = errors.New("no coin denominations given")
	ErrNonPositiveCoin = errors.New("coin denomination must be positive")
	ErrNegativeTarget  = errors.New("target value must not be negative")
	ErrMalformedInput  = errors.New("malformed input")
)

// Denominations is a coin set sorted ascending.
// Every value is positive. Duplicates are kept unless WithoutDuplicates is used.
type Denominations []int

// Option tunes Normalize.
type Option func(*options)

type options struct {
	unique bool
}

// WithoutDuplicates collapses repeated denominations into one.
func WithoutDuplicates() Option {
	return func(o *options) {
		o.unique = true
	}
}

// Normalize copies raw, validates every entry and sorts the copy ascending.
// All non-positive entries are reported at once.
func Normalize(raw []int, opts ...Option) (Denominations, error) {
	if len(raw) == 0 {
		return nil, ErrNoCoins
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var err error
	for i, c := range raw {
		if c <= 0 {
			err = multierr.Append(err, fmt.Errorf("%w: coins[%d] = %d", ErrNonPositiveCoin, i, c))
		}
	}
	if err != nil {
		return nil, err
	}

	d := slices.Clone(raw)
	slices.Sort(d)
	if o.unique {
		d = slices.Compact(d)
	}
	return Denominations(d), nil
}

// ValidateTarget rejects negative targets.
func ValidateTarget(target int) error {
	if target < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTarget, target)
	}
	return nil
}

func (d Denominations) Len() int {
	return len(d)
}

// Smallest panics on an empty set.
func (d Denominations) Smallest() int {
	return d[0]
}

// Largest panics on an empty set.
func (d Denominations) Largest() int {
	return d[len(d)-1]
}

// With returns a new set holding one more denomination, kept in ascending order.
// The receiver is not modified.
func (d Denominations) With(coin int) Denominations {
	out := make(Denominations, 0, len(d)+1)
	idx, _ := slices.BinarySearch(d, coin)
	out = append(out, d[:idx]...)
	out = append(out, coin)
	return append(out, d[idx:]...)
}

// Key is the canonical comma separated form, e.g. "1,2,5".
func (d Denominations) Key() string {
	parts := make([]string, len(d))
	for i, c := range d {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

func (d Denominations) String() string {
	return "[" + d.Key() + "]"
}

// Parse reads the whitespace separated format "value numCoins c1 c2 ... cM".
// The returned coins are raw: neither validated nor sorted.
func Parse(fields []string) (target int, raw []int, err error) {
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("%w: want value and number of coins, got %d fields", ErrMalformedInput, len(fields))
	}

	nums := make([]int, len(fields))
	for i, f := range fields {
		n, convErr := strconv.Atoi(f)
		if convErr != nil {
			return 0, nil, fmt.Errorf("%w: field %d %q: %w", ErrMalformedInput, i, f, convErr)
		}
		nums[i] = n
	}

	target, numCoins := nums[0], nums[1]
	if numCoins < 0 || len(nums)-2 != numCoins {
		return 0, nil, fmt.Errorf("%w: declared %d coins, got %d", ErrMalformedInput, numCoins, len(nums)-2)
	}
	return target, nums[2:], nil
}
