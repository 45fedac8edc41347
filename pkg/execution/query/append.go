package query

import (
	"errors"
	"fmt"
	"piggydb/pkg/iterator"
	"piggydb/pkg/tuple"
)

// Append concatenates the streams of its children in order. All children
// must produce the same column types; names and provenance are taken from
// the first child.
type Append struct {
	children []iterator.DbIterator
	current  int
	base     *iterator.BaseIterator
	desc     *tuple.TupleDescription
}

// NewAppend creates an append over the given children.
func NewAppend(children []iterator.DbIterator) (*Append, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("append needs at least one child")
	}

	desc := children[0].GetTupleDesc()
	for i, c := range children[1:] {
		other := c.GetTupleDesc()
		if other.NumFields() != desc.NumFields() {
			return nil, fmt.Errorf("append child %d has %d columns, want %d",
				i+1, other.NumFields(), desc.NumFields())
		}
		for j := 0; j < desc.NumFields(); j++ {
			t1, _ := desc.TypeAtIndex(j)
			t2, _ := other.TypeAtIndex(j)
			if t1 != t2 {
				return nil, fmt.Errorf("append child %d column %d has type %v, want %v",
					i+1, j, t2, t1)
			}
		}
	}

	a := &Append{
		children: children,
		desc:     desc,
	}
	a.base = iterator.NewBaseIterator(a.readNext)
	return a, nil
}

func (a *Append) readNext() (*tuple.Tuple, error) {
	for a.current < len(a.children) {
		child := a.children[a.current]
		hasNext, err := child.HasNext()
		if err != nil {
			return nil, err
		}
		if hasNext {
			return child.Next()
		}
		a.current++
	}
	return nil, nil
}

func (a *Append) GetTupleDesc() *tuple.TupleDescription {
	return a.desc
}

func (a *Append) Open() error {
	for i, c := range a.children {
		if err := c.Open(); err != nil {
			return fmt.Errorf("failed to open append child %d: %v", i, err)
		}
	}
	a.current = 0
	a.base.MarkOpened()
	return nil
}

func (a *Append) HasNext() (bool, error) {
	return a.base.HasNext()
}

func (a *Append) Next() (*tuple.Tuple, error) {
	return a.base.Next()
}

func (a *Append) Rewind() error {
	for i, c := range a.children {
		if err := c.Rewind(); err != nil {
			return fmt.Errorf("failed to rewind append child %d: %v", i, err)
		}
	}
	a.current = 0
	return a.base.Rewind()
}

func (a *Append) Close() error {
	errs := []error{a.base.Close()}
	for _, c := range a.children {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
