// Package history keeps an in-memory ledger of solved problems for one
// interactive session, backed by go-memdb.
package history

import (
	"fmt"
	"slices"

	memdb "github.com/hashicorp/go-memdb"

	"github.com/on-the-ground/coinchange/solver"
)

const (
	table        = "solves"
	indexID      = "id"
	indexProblem = "problem"
)

// Entry is one recorded solve. Key identifies the problem independently of
// the algorithm, e.g. "5:1,2,3".
type Entry struct {
	ID        string
	Key       string
	Target    int
	Coins     []int
	Algorithm string
	Count     uint64
	Seq       uint64
}

var schema = &memdb.DBSchema{
	Tables: map[string]*memdb.TableSchema{
		table: {
			Name: table,
			Indexes: map[string]*memdb.IndexSchema{
				indexID: {
					Name:    indexID,
					Unique:  true,
					Indexer: &memdb.StringFieldIndex{Field: "ID"},
				},
				indexProblem: {
					Name:         indexProblem,
					AllowMissing: true,
					Indexer:      &memdb.StringFieldIndex{Field: "Key"},
				},
			},
		},
	},
}

type Store struct {
	db   *memdb.MemDB
	next uint64
}

func New() (*Store, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// ProblemKey is the Key an Entry for target and normalized coins gets.
func ProblemKey(target int, coinsKey string) string {
	return fmt.Sprintf("%d:%s", target, coinsKey)
}

// FromResult turns a solver result into an Entry.
func FromResult(res solver.Result) Entry {
	return Entry{
		ID:        res.ID,
		Key:       ProblemKey(res.Target, res.Coins.Key()),
		Target:    res.Target,
		Coins:     slices.Clone([]int(res.Coins)),
		Algorithm: string(res.Algorithm),
		Count:     res.Count,
	}
}

// Record inserts e. Recording an ID twice is an error. Store is not safe
// for concurrent Record calls.
func (s *Store) Record(e Entry) error {
	if e.ID == "" {
		return fmt.Errorf("record: empty id")
	}

	txn := s.db.Txn(true)
	defer txn.Abort()

	old, err := txn.First(table, indexID, e.ID)
	if err != nil {
		return err
	} else if old != nil {
		return fmt.Errorf("record: id %s already recorded", e.ID)
	}

	s.next++
	e.Seq = s.next
	if err := txn.Insert(table, e); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

// ByProblem returns every entry of one problem in recording order.
func (s *Store) ByProblem(key string) ([]Entry, error) {
	return s.collect(indexProblem, key)
}

// All returns every entry in recording order.
func (s *Store) All() ([]Entry, error) {
	return s.collect(indexID)
}

func (s *Store) collect(index string, args ...any) ([]Entry, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(table, index, args...)
	if err != nil {
		return nil, err
	}

	var out []Entry
	for raw := it.Next(); raw != nil; raw = it.Next() {
		out = append(out, raw.(Entry))
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.Seq < b.Seq:
			return -1
		case a.Seq > b.Seq:
			return 1
		}
		return 0
	})
	return out, nil
}
