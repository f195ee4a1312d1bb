// Package recursive counts coin combinations by direct evaluation of the
// largest-coin-first recurrence.
//
// For a state (remaining, bound), where coins[:bound] are still available:
//
//	count(r, b) = 0                                  if r < 0
//	count(r, b) = 1                                  if r == 0
//	count(r, b) = 0                                  if b == 0
//	count(r, b) = count(r - coins[b-1], b) + count(r, b-1)
//
// The first branch spends one more of the largest available coin, the second
// retires that coin for good. Because coins are only ever retired from the
// top, every multiset is produced as exactly one non-increasing sequence.
//
// Coins must be sorted ascending. Nothing here validates input; see
// coins.Normalize. Evaluation is exponential and recursion depth grows with
// target/smallest, so these counters serve as reference oracles for the
// tabulated counter.
package recursive

import (
	"github.com/on-the-ground/coinchange/coins"
	"github.com/on-the-ground/coinchange/memo"
)

// Count returns the number of distinct multisets of coins summing to target.
func Count(target int, coins coins.Denominations) uint64 {
	return countWithin(target, coins, len(coins))
}

// countWithin never mutates coins; bound marks the active prefix.
func countWithin(remaining int, coins coins.Denominations, bound int) uint64 {
	if remaining < 0 {
		return 0
	}
	if remaining == 0 {
		return 1
	}
	if bound == 0 {
		return 0
	}

	largest := coins[bound-1]
	a := countWithin(remaining-largest, coins, bound)
	// retiring the last coin can only reach the empty set, which yields 0
	if bound == 1 {
		return a
	}
	return a + countWithin(remaining, coins, bound-1)
}

// Depth is an upper bound on the recursion depth Count reaches.
func Depth(target int, coins coins.Denominations) int {
	if len(coins) == 0 || target <= 0 {
		return len(coins)
	}
	return target/coins.Smallest() + len(coins)
}

// CountIterative evaluates the same recurrence as Count on an explicit stack.
// Every leaf of the call tree that reaches zero contributes one.
func CountIterative(target int, coins coins.Denominations) uint64 {
	if len(coins) == 0 {
		if target == 0 {
			return 1
		}
		return 0
	}

	var total uint64
	stack := []memo.Key{{Bound: len(coins), Remaining: target}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case top.Remaining < 0:
			continue
		case top.Remaining == 0:
			total++
			continue
		}

		largest := coins[top.Bound-1]
		stack = append(stack, memo.Key{Bound: top.Bound, Remaining: top.Remaining - largest})
		if top.Bound > 1 {
			stack = append(stack, memo.Key{Bound: top.Bound - 1, Remaining: top.Remaining})
		}
	}
	return total
}

// CountMemoized evaluates the recurrence top-down, consulting store before
// expanding any state. store must be fresh or only ever used with the same
// coins: keys carry the bound, not the coin values.
func CountMemoized(target int, coins coins.Denominations, store memo.Store[uint64]) uint64 {
	var count func(memo.Key) uint64
	count = memo.Tableize(func(k memo.Key) uint64 {
		largest := coins[k.Bound-1]
		var a uint64
		if next := k.Remaining - largest; next == 0 {
			a = 1
		} else if next > 0 {
			a = count(memo.Key{Bound: k.Bound, Remaining: next})
		}
		if k.Bound == 1 {
			return a
		}
		return a + count(memo.Key{Bound: k.Bound - 1, Remaining: k.Remaining})
	}, store)

	switch {
	case target < 0:
		return 0
	case target == 0:
		return 1
	case len(coins) == 0:
		return 0
	}
	return count(memo.Key{Bound: len(coins), Remaining: target})
}
