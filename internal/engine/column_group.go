package engine

import "fmt"

// Column is a schema slot. Only the Kind of Prototype matters for
// validation; its payload is kept as given.
type Column struct {
	Name      string
	Prototype Value
}

// NewColumn builds a schema slot from a name and a prototype value.
func NewColumn(name string, prototype Value) Column {
	return Column{Name: name, Prototype: prototype}
}

// Kind returns the type the column accepts.
func (c Column) Kind() Kind { return c.Prototype.Kind() }

// equal compares the full (name, prototype) pair.
func (c Column) equal(o Column) bool {
	return c.Name == o.Name && c.Prototype.Equal(o.Prototype)
}

// Row is an ordered sequence of values, positionally matching a schema.
type Row []Value

// Copy returns an independent copy of the row.
func (r Row) Copy() Row {
	if r == nil {
		return nil
	}
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// Equal reports whether both rows hold fully equal values at every position.
func (r Row) Equal(o Row) bool {
	if len(r) != len(o) {
		return false
	}
	for i := range r {
		if !r[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// ColumnGroup holds an append-only schema and the rows validated against it.
//
// The schema only grows. Rows inserted before a column was added are not
// revalidated, so old rows may be shorter than the current schema.
type ColumnGroup struct {
	name    string
	columns []Column
	rows    []Row
}

// NewColumnGroup creates an empty group.
func NewColumnGroup(name string) *ColumnGroup {
	return &ColumnGroup{name: name}
}

// Name returns the group name.
func (g *ColumnGroup) Name() string { return g.name }

// Columns returns a copy of the schema in order.
func (g *ColumnGroup) Columns() []Column {
	out := make([]Column, len(g.columns))
	copy(out, g.columns)
	return out
}

// NumColumns returns the schema length.
func (g *ColumnGroup) NumColumns() int { return len(g.columns) }

// NumRows returns the number of stored rows.
func (g *ColumnGroup) NumRows() int { return len(g.rows) }

// Rows returns copies of all rows in insertion order.
func (g *ColumnGroup) Rows() []Row {
	out := make([]Row, len(g.rows))
	for i, r := range g.rows {
		out[i] = r.Copy()
	}
	return out
}

// Row returns the row at index i. It panics if i is out of range; use
// SearchRowAt for a checked lookup.
func (g *ColumnGroup) Row(i int) Row {
	return g.rows[i].Copy()
}

// ColumnIndex resolves a column name to its schema position. When several
// columns share a name the first one wins.
func (g *ColumnGroup) ColumnIndex(name string) (int, bool) {
	for i, c := range g.columns {
		if c.Name == name {
			return i, true
		}
	}
	return -1, false
}

// AddColumn appends a schema slot. Only an exact (name, prototype) duplicate
// is rejected; a same-named column with a different prototype is accepted.
func (g *ColumnGroup) AddColumn(col Column) error {
	for _, existing := range g.columns {
		if existing.equal(col) {
			return &Error{
				Kind:   KindInsertError,
				Op:     "add_column",
				Target: g.name,
				Column: col.Name,
				Value:  &col.Prototype,
				Reason: "duplicate column",
			}
		}
	}
	g.columns = append(g.columns, col)
	return nil
}

// ValidateRow checks row length and the kind at every position against the
// schema. Payloads are ignored.
func (g *ColumnGroup) ValidateRow(row Row) error {
	return g.validateRow("validate_row", row)
}

func (g *ColumnGroup) validateRow(op string, row Row) error {
	if len(row) != len(g.columns) {
		return &Error{
			Kind:   KindInsertError,
			Op:     op,
			Target: g.name,
			Reason: fmt.Sprintf("expected %d values, got %d", len(g.columns), len(row)),
		}
	}
	for i, col := range g.columns {
		if !row[i].SameKind(col.Prototype) {
			v := row[i]
			return &Error{
				Kind:   KindInsertError,
				Op:     op,
				Target: g.name,
				Column: col.Name,
				Value:  &v,
				Reason: fmt.Sprintf("expected %s, got %s at position %d", col.Kind(), v.Kind(), i),
			}
		}
	}
	return nil
}

// InsertRow validates row and appends a copy of it.
func (g *ColumnGroup) InsertRow(row Row) error {
	if err := g.validateRow("insert_row", row); err != nil {
		return err
	}
	g.rows = append(g.rows, row.Copy())
	return nil
}

// UpdateRow replaces the first row whose value in column equals match.
// newRow is validated before anything is written.
func (g *ColumnGroup) UpdateRow(column string, match Value, newRow Row) error {
	pos, err := g.findRow("update_row", KindUpdateError, column, match)
	if err != nil {
		return err
	}
	if err := g.validateRow("update_row", newRow); err != nil {
		return err
	}
	g.rows[pos] = newRow.Copy()
	return nil
}

// DeleteRow removes the first row whose value in column equals match.
func (g *ColumnGroup) DeleteRow(column string, match Value) error {
	pos, err := g.findRow("delete_row", KindDeleteError, column, match)
	if err != nil {
		return err
	}
	g.rows = append(g.rows[:pos], g.rows[pos+1:]...)
	return nil
}

// SearchRow returns a copy of the first row whose value in column equals match.
func (g *ColumnGroup) SearchRow(column string, match Value) (Row, error) {
	pos, err := g.findRow("search_row", KindNoDataError, column, match)
	if err != nil {
		return nil, err
	}
	return g.rows[pos].Copy(), nil
}

// GetColumn returns the values at column's position across all rows, in row
// order. Rows that predate the column contribute nothing.
func (g *ColumnGroup) GetColumn(column string) ([]Value, error) {
	idx, ok := g.ColumnIndex(column)
	if !ok {
		return nil, newUnknownColumnError("get_column", g.name, column)
	}
	out := make([]Value, 0, len(g.rows))
	for _, r := range g.rows {
		if idx < len(r) {
			out = append(out, r[idx])
		}
	}
	return out, nil
}

// SearchRowAt returns a copy of the row at index i.
func (g *ColumnGroup) SearchRowAt(i int) (Row, error) {
	if i < 0 || i >= len(g.rows) {
		return nil, &Error{
			Kind:   KindSelectError,
			Op:     "search_row_at",
			Target: g.name,
			Reason: fmt.Sprintf("row index %d out of range [0,%d)", i, len(g.rows)),
		}
	}
	return g.rows[i].Copy(), nil
}

// UpdateRowAt replaces the row at index i after validating newRow.
func (g *ColumnGroup) UpdateRowAt(i int, newRow Row) error {
	if i < 0 || i >= len(g.rows) {
		return &Error{
			Kind:   KindUpdateError,
			Op:     "update_row_at",
			Target: g.name,
			Reason: fmt.Sprintf("row index %d out of range [0,%d)", i, len(g.rows)),
		}
	}
	if err := g.validateRow("update_row_at", newRow); err != nil {
		return err
	}
	g.rows[i] = newRow.Copy()
	return nil
}

// Clone returns a deep copy of the group.
func (g *ColumnGroup) Clone() *ColumnGroup {
	return &ColumnGroup{
		name:    g.name,
		columns: g.Columns(),
		rows:    g.Rows(),
	}
}

// findRow resolves column and scans rows in insertion order for the first
// full-equality match. A miss is reported with missKind.
func (g *ColumnGroup) findRow(op string, missKind ErrorKind, column string, match Value) (int, error) {
	idx, ok := g.ColumnIndex(column)
	if !ok {
		return -1, newUnknownColumnError(op, g.name, column)
	}
	for pos, r := range g.rows {
		if idx < len(r) && r[idx].Equal(match) {
			return pos, nil
		}
	}
	return -1, newNoMatchError(missKind, op, g.name, column, match)
}
