package rdf

// BindingSet is one row of a tuple query result. Unbound variables are absent.
type BindingSet map[string]Value

// Value returns the value bound to name, or nil.
func (b BindingSet) Value(name string) Value {
	return b[name]
}

// Has reports whether name is bound in the row.
func (b BindingSet) Has(name string) bool {
	_, ok := b[name]
	return ok
}

// TupleResult is a tabular query result: the projected variable names in order and
// the rows binding them.
type TupleResult struct {
	Vars []string
	Rows []BindingSet
}

// Len returns the number of rows.
func (r *TupleResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// Column returns the values bound to name, one per row; unbound cells are nil.
func (r *TupleResult) Column(name string) []Value {
	if r == nil {
		return nil
	}
	col := make([]Value, len(r.Rows))
	for i, row := range r.Rows {
		col[i] = row[name]
	}
	return col
}
