// Package tabulated counts coin combinations bottom-up in a
// numCoins x (target+1) table.
//
// Cell [row][col] holds the number of multisets drawn from coins[:row+1]
// that sum exactly to col. Row 0 and column 0 are base cases; every other
// cell is
//
//	[row][col] = [row][col-coins[row]] + [row-1][col]
//
// where an out-of-range left index contributes 0. The answer is the
// bottom-right cell.
//
// Coins must be sorted ascending and non-empty, and target must not be
// negative. Inputs are not validated here; see coins.Normalize.
package tabulated
