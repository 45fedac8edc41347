// Package catalog holds the in-memory table registry and the comparison
// operator table the executor and the statistics engine consult.
package catalog

import (
	"fmt"
	"sync"

	"piggydb/pkg/primitives"
	"piggydb/pkg/tuple"
)

// Table is a registered relation: a schema plus its materialized rows.
type Table struct {
	ID     primitives.TableID
	Name   string
	Schema *tuple.TupleDescription
	Rows   []*tuple.Tuple
}

// NumColumns returns the width of the table's schema.
func (t *Table) NumColumns() int {
	return t.Schema.NumFields()
}

// Catalog maps table ids and names to tables. It is safe for concurrent
// readers and writers.
type Catalog struct {
	mu      sync.RWMutex
	byID    map[primitives.TableID]*Table
	byName  map[string]*Table
	nextID  primitives.TableID
	classer *Classifier
}

// NewCatalog creates an empty catalog with the default operator table.
func NewCatalog() *Catalog {
	return &Catalog{
		byID:    make(map[primitives.TableID]*Table),
		byName:  make(map[string]*Table),
		nextID:  1,
		classer: NewClassifier(),
	}
}

// CreateTable registers a new table with the given schema and assigns it an
// id. The schema is rewritten so every column carries provenance pointing at
// the new table.
func (c *Catalog) CreateTable(name string, schema *tuple.TupleDescription) (*Table, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byName[name]; exists {
		return nil, fmt.Errorf("table %s already exists", name)
	}

	id := c.nextID
	c.nextID++

	sources := make([]tuple.ColumnSource, schema.NumFields())
	for i := range sources {
		sources[i] = tuple.ColumnSource{Table: id, Column: primitives.ColumnID(i)}
	}
	schema, err := schema.WithSources(sources)
	if err != nil {
		return nil, err
	}

	t := &Table{
		ID:     id,
		Name:   name,
		Schema: schema,
	}
	c.byID[id] = t
	c.byName[name] = t
	return t, nil
}

// InsertRow appends a row to a table. The tuple must match the table schema.
func (c *Catalog) InsertRow(id primitives.TableID, t *tuple.Tuple) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tbl, ok := c.byID[id]
	if !ok {
		return fmt.Errorf("no table with id %d", id)
	}
	if !tbl.Schema.Equals(t.TupleDesc) {
		return fmt.Errorf("tuple schema does not match table %s", tbl.Name)
	}
	tbl.Rows = append(tbl.Rows, t)
	return nil
}

// GetTable looks a table up by id.
func (c *Catalog) GetTable(id primitives.TableID) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tbl, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("no table with id %d", id)
	}
	return tbl, nil
}

// GetTableByName looks a table up by name.
func (c *Catalog) GetTableByName(name string) (*Table, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tbl, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("no table named %s", name)
	}
	return tbl, nil
}

// Classifier returns the catalog's comparison operator table.
func (c *Catalog) Classifier() *Classifier {
	return c.classer
}
