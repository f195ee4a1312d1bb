package tabulated

import (
	"context"
	"sync"

	"github.com/on-the-ground/coinchange/coins"
)

// BuildParallel produces the same table as Build.
//
// Rows are filled strictly one after another. Within row r, a cell only
// depends on row r-1 and on the cell coins[r] to its left, so the columns
// sharing a residue modulo coins[r] form an independent chain. Chains are
// spread over workers goroutines. ctx is checked before the base cases and
// between rows.
func BuildParallel(ctx context.Context, target int, coins coins.Denominations, workers int) (Table, error) {
	if workers < 1 {
		workers = 1
	}
	if err := ctx.Err(); err != nil {
		return Table{}, err
	}

	t := newTable(target, coins)
	t.fillBase()
	for row := 1; row < len(t.cells); row++ {
		if err := ctx.Err(); err != nil {
			return Table{}, err
		}
		t.fillRowByResidue(row, workers)
	}
	return t, nil
}

func (t Table) fillRowByResidue(row, workers int) {
	coin := t.Coins[row]
	chains := min(coin, t.Target+1)
	workers = min(workers, chains)

	wg := sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(first int) {
			defer wg.Done()
			for residue := first; residue < chains; residue += workers {
				start := residue
				if start == 0 {
					start = coin
				}
				for col := start; col <= t.Target; col += coin {
					t.fillCell(row, col)
				}
			}
		}(w)
	}
	wg.Wait()
}
