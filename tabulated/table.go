package tabulated

import (
	"github.com/on-the-ground/coinchange/coins"
)

// Table is a filled combination table. Coins and Target are the inputs it
// was built from.
type Table struct {
	Coins  coins.Denominations
	Target int
	cells  [][]uint64
}

func newTable(target int, coins coins.Denominations) Table {
	cells := make([][]uint64, len(coins))
	for row := range cells {
		cells[row] = make([]uint64, target+1)
	}
	return Table{Coins: coins, Target: target, cells: cells}
}

// Build fills the base cases, then every remaining cell once in row-major order.
func Build(target int, coins coins.Denominations) Table {
	t := newTable(target, coins)
	t.fillBase()
	for row := 1; row < len(t.cells); row++ {
		for col := 1; col <= target; col++ {
			t.fillCell(row, col)
		}
	}
	return t
}

// Count builds the table and reads the answer out of it.
func Count(target int, coins coins.Denominations) (Table, uint64) {
	t := Build(target, coins)
	return t, t.Answer()
}

// fillBase sets row 0 to the multiples of the smallest coin and column 0 to 1.
func (t Table) fillBase() {
	smallest := t.Coins.Smallest()
	for col := range t.cells[0] {
		if col%smallest == 0 {
			t.cells[0][col] = 1
		}
	}
	for row := range t.cells {
		t.cells[row][0] = 1
	}
}

// fillCell requires row-1 to be complete and [row][col-coins[row]] to be set.
func (t Table) fillCell(row, col int) {
	var withLargest uint64
	if prev := col - t.Coins[row]; prev >= 0 {
		withLargest = t.cells[row][prev]
	}
	withoutLargest := t.cells[row-1][col]
	t.cells[row][col] = withLargest + withoutLargest
}

// Answer is the number of combinations of all coins summing to Target.
func (t Table) Answer() uint64 {
	last := t.cells[len(t.cells)-1]
	return last[len(last)-1]
}

func (t Table) At(row, col int) uint64 {
	return t.cells[row][col]
}

func (t Table) NumRows() int {
	return len(t.cells)
}

func (t Table) NumCols() int {
	return t.Target + 1
}

// Rows returns a copy of the cells.
func (t Table) Rows() [][]uint64 {
	out := make([][]uint64, len(t.cells))
	for i, row := range t.cells {
		out[i] = append([]uint64(nil), row...)
	}
	return out
}

// CountRolling computes the same answer as Count in O(target) space by
// updating a single row in place. Only the answer survives.
func CountRolling(target int, coins coins.Denominations) uint64 {
	row := make([]uint64, target+1)
	for col := 0; col <= target; col += coins.Smallest() {
		row[col] = 1
	}
	for _, coin := range coins[1:] {
		for col := coin; col <= target; col++ {
			row[col] += row[col-coin]
		}
	}
	return row[target]
}
