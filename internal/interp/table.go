package interp

// Table is the variable table: one flat identifier→value namespace
// shared by variables and functions. Bindings change only by
// replacement; the language has no reassignment statement.
type Table struct {
	vars map[string]Value
}

// NewTable returns an empty table with the given initial capacity.
func NewTable(capacity int) *Table {
	return &Table{vars: make(map[string]Value, capacity)}
}

// Put stores a binding, replacing any previous value under the key. The
// previous value is returned, nil if there was none.
func (t *Table) Put(key string, v Value) Value {
	prev := t.vars[key]
	t.vars[key] = v
	return prev
}

// Get looks up a binding.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.vars[key]
	return v, ok
}

// Take removes and returns a binding.
func (t *Table) Take(key string) (Value, bool) {
	v, ok := t.vars[key]
	if ok {
		delete(t.vars, key)
	}
	return v, ok
}

// Size returns the number of bindings.
func (t *Table) Size() int {
	return len(t.vars)
}
