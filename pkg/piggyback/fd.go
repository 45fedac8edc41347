package piggyback

import (
	"log/slog"

	"piggydb/pkg/hashkit"
	"piggydb/pkg/logging"
)

// FD is a reported functional dependency between two result columns: every
// value of the determinant mapped to exactly one value of the dependent.
type FD struct {
	Determinant string
	Dependent   string
}

// fdEngine tracks one candidate map per ordered column pair. A pair's map
// records, for every determinant value seen, the dependent value it mapped
// to; a contradiction discards the map for the rest of the query.
type fdEngine struct {
	columns int
	maps    []*hashkit.HashMap[string] // nil marks a discarded pair
	pruned  bool
	log     *slog.Logger
}

// newFDEngine creates candidate maps for all ordered pairs over the result
// width. With fewer than two columns there is nothing to track.
func newFDEngine(columns int) *fdEngine {
	e := &fdEngine{
		columns: columns,
		log:     logging.WithComponent("fd"),
	}
	if columns > 1 {
		e.maps = make([]*hashkit.HashMap[string], columns*(columns-1))
		for i := range e.maps {
			e.maps[i] = hashkit.NewHashMap[string]()
		}
	}
	return e
}

// pairIndex flattens an ordered pair (i, j), i != j, into the maps slice.
// Each determinant i owns a block of columns-1 consecutive slots.
func (e *fdEngine) pairIndex(i, j int) int {
	if j > i {
		return i*(e.columns-1) + j - 1
	}
	return i*(e.columns-1) + j
}

// observe checks the current row against every surviving candidate. Rows
// with an invalid cell on either side of a pair leave that pair untouched.
func (e *fdEngine) observe(snap *RowSnapshot) {
	for i := 0; i < e.columns; i++ {
		if !snap.valid[i] {
			continue
		}
		key := hashkit.HashString(snap.values[i])
		for j := 0; j < e.columns; j++ {
			if i == j || !snap.valid[j] {
				continue
			}
			idx := e.pairIndex(i, j)
			m := e.maps[idx]
			if m == nil {
				continue
			}

			stored, found := m.Get(key)
			if !found {
				m.Put(key, snap.values[j])
				continue
			}
			if stored != snap.values[j] {
				// Falsified, never recreated for this query.
				e.maps[idx] = nil
			}
		}
	}
}

// prune discards pairs that cannot be reported: once the dependent's true
// distinct count is known, a determinant with a strictly smaller count can
// never cover it. Runs at most once.
func (e *fdEngine) prune(store *Store) {
	if e.pruned {
		return
	}
	e.pruned = true

	for i := 0; i < e.columns; i++ {
		di := store.ResolvedDistinct(i)
		if di == 0 {
			continue
		}
		for j := 0; j < e.columns; j++ {
			if i == j {
				continue
			}
			dj := store.ResolvedDistinct(j)
			if dj == 0 {
				continue
			}
			idx := e.pairIndex(i, j)
			if e.maps[idx] == nil {
				continue
			}
			jFinal, _, _ := store.Column(j).Final()
			if di < dj && jFinal {
				e.log.Debug("pruning infeasible pair",
					"determinant", store.Column(i).Name,
					"dependent", store.Column(j).Name)
				e.maps[idx] = nil
			}
		}
	}
}

// emit evaluates every surviving pair: a dependency holds when the map was
// never falsified and covers every distinct determinant value.
func (e *fdEngine) emit(store *Store) []FD {
	e.prune(store)

	var fds []FD
	for i := 0; i < e.columns; i++ {
		for j := 0; j < e.columns; j++ {
			if i == j {
				continue
			}
			m := e.maps[e.pairIndex(i, j)]
			if m == nil {
				continue
			}
			if int64(m.Len()) == store.ResolvedDistinct(i) && m.Len() > 0 {
				fds = append(fds, FD{
					Determinant: store.Column(i).Name,
					Dependent:   store.Column(j).Name,
				})
			}
		}
	}
	return fds
}
