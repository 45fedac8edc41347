package catalog

import "piggydb/pkg/primitives"

// CompareKind is the coarse shape of a comparison operator, used when scan
// filters are turned into statistics shortcuts. Only operators with one of
// these shapes can seed bounds or distinct counts.
type CompareKind int

const (
	KindEquals CompareKind = iota
	KindLess
	KindLessOrEqual
	KindGreater
	KindGreaterOrEqual
)

// Classifier maps catalog operator ids to comparison shapes and to the
// predicates the executor evaluates. Operator ids follow the system catalog
// numbering, with several ids per shape covering the integer widths.
type Classifier struct {
	kinds      map[primitives.OperatorID]CompareKind
	predicates map[primitives.OperatorID]primitives.Predicate
}

// NewClassifier builds the default operator table.
func NewClassifier() *Classifier {
	c := &Classifier{
		kinds:      make(map[primitives.OperatorID]CompareKind),
		predicates: make(map[primitives.OperatorID]primitives.Predicate),
	}

	c.register(KindEquals, primitives.Equals, 15, 94, 96, 410, 416, 1862)
	c.register(KindLess, primitives.LessThan, 37, 95, 97, 412, 418, 1864)
	c.register(KindLessOrEqual, primitives.LessThanOrEqual, 80, 522, 523, 540, 542, 1866)
	c.register(KindGreater, primitives.GreaterThan, 76, 520, 521, 413, 419, 1865)
	c.register(KindGreaterOrEqual, primitives.GreaterThanOrEqual, 82, 524, 525, 541, 543, 1867)

	// Inequality executes but carries no statistics shape.
	for _, id := range []primitives.OperatorID{36, 518, 411, 417, 1863} {
		c.predicates[id] = primitives.NotEqual
	}
	return c
}

func (c *Classifier) register(kind CompareKind, pred primitives.Predicate, ids ...primitives.OperatorID) {
	for _, id := range ids {
		c.kinds[id] = kind
		c.predicates[id] = pred
	}
}

// Kind returns the comparison shape of an operator, if it has one usable for
// statistics shortcuts.
func (c *Classifier) Kind(id primitives.OperatorID) (CompareKind, bool) {
	k, ok := c.kinds[id]
	return k, ok
}

// Predicate returns the executable predicate for an operator.
func (c *Classifier) Predicate(id primitives.OperatorID) (primitives.Predicate, bool) {
	p, ok := c.predicates[id]
	return p, ok
}
