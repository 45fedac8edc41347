package query

import (
	"fmt"

	"piggydb/pkg/catalog"
	"piggydb/pkg/iterator"
	"piggydb/pkg/tuple"
)

// MemScan streams the rows of a catalog table, applying the scan's
// qualification predicates before emitting each row.
type MemScan struct {
	table      *catalog.Table
	predicates []*Predicate
	rows       *iterator.SliceIterator[*tuple.Tuple]
	base       *iterator.BaseIterator
}

// NewMemScan creates a scan over the given table. The predicates, which may
// be empty, are applied as a conjunction.
func NewMemScan(table *catalog.Table, predicates []*Predicate) (*MemScan, error) {
	if table == nil {
		return nil, fmt.Errorf("table cannot be nil")
	}

	scan := &MemScan{
		table:      table,
		predicates: predicates,
		rows:       iterator.NewSliceIterator(table.Rows),
	}
	scan.base = iterator.NewBaseIterator(scan.readNext)
	return scan, nil
}

// readNext advances past rows rejected by the qualification.
func (s *MemScan) readNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := s.rows.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}

		t, err := s.rows.Next()
		if err != nil {
			return nil, err
		}

		matched := true
		for _, p := range s.predicates {
			ok, err := p.Filter(t)
			if err != nil {
				return nil, err
			}
			if !ok {
				matched = false
				break
			}
		}
		if matched {
			return t, nil
		}
	}
}

// Table returns the catalog table the scan reads.
func (s *MemScan) Table() *catalog.Table {
	return s.table
}

// Predicates returns the scan qualification, in application order.
func (s *MemScan) Predicates() []*Predicate {
	return s.predicates
}

func (s *MemScan) GetTupleDesc() *tuple.TupleDescription {
	return s.table.Schema
}

func (s *MemScan) Open() error {
	if err := s.rows.Open(); err != nil {
		return fmt.Errorf("failed to open row source: %v", err)
	}
	s.base.MarkOpened()
	return nil
}

func (s *MemScan) HasNext() (bool, error) {
	return s.base.HasNext()
}

func (s *MemScan) Next() (*tuple.Tuple, error) {
	return s.base.Next()
}

func (s *MemScan) Rewind() error {
	if err := s.rows.Rewind(); err != nil {
		return err
	}
	return s.base.Rewind()
}

func (s *MemScan) Close() error {
	if err := s.base.Close(); err != nil {
		return err
	}
	return s.rows.Close()
}
