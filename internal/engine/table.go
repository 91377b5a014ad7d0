package engine

import "sort"

// ConfigPair is a free-form configuration entry on a Table.
type ConfigPair struct {
	Key   string
	Value string
}

// TableInfo aggregates a Table's groups.
type TableInfo struct {
	NumGroups    int
	TotalColumns int
}

// Table owns ColumnGroups by name and a deduplicated config list.
type Table struct {
	name   string
	origin string
	groups map[string]*ColumnGroup
	config []ConfigPair
}

// NewTable creates an empty table. origin is a free-form label naming where
// the table came from; it is not interpreted.
func NewTable(name, origin string) *Table {
	return &Table{
		name:   name,
		origin: origin,
		groups: make(map[string]*ColumnGroup),
	}
}

func (t *Table) Name() string   { return t.name }
func (t *Table) Origin() string { return t.origin }

// NumGroups returns the number of registered column groups.
func (t *Table) NumGroups() int { return len(t.groups) }

// AddColumnGroup registers g under its name.
func (t *Table) AddColumnGroup(g *ColumnGroup) error {
	if _, exists := t.groups[g.Name()]; exists {
		return newDuplicateError("add_columngroup", t.name, g.Name())
	}
	t.groups[g.Name()] = g
	return nil
}

// CreateColumnGroup registers a new empty group and returns it.
func (t *Table) CreateColumnGroup(name string) (*ColumnGroup, error) {
	if _, exists := t.groups[name]; exists {
		return nil, newDuplicateError("create_columngroup", t.name, name)
	}
	g := NewColumnGroup(name)
	t.groups[name] = g
	return g, nil
}

// GetColumnGroup returns the live group for mutation.
func (t *Table) GetColumnGroup(name string) (*ColumnGroup, error) {
	g, ok := t.groups[name]
	if !ok {
		return nil, newNotFoundError("get_columngroup", t.name, name)
	}
	return g, nil
}

// SearchColumnGroup returns a detached copy of the group. Changes to the
// copy never reach the table.
func (t *Table) SearchColumnGroup(name string) (*ColumnGroup, error) {
	g, ok := t.groups[name]
	if !ok {
		return nil, newNotFoundError("search_columngroup", t.name, name)
	}
	return g.Clone(), nil
}

// GroupNames returns the registered group names, sorted.
func (t *Table) GroupNames() []string {
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddConfig appends a config pair unless the exact pair is already present.
func (t *Table) AddConfig(key, value string) error {
	p := ConfigPair{Key: key, Value: value}
	for _, existing := range t.config {
		if existing == p {
			return newDuplicateError("add_config", t.name, key+"="+value)
		}
	}
	t.config = append(t.config, p)
	return nil
}

// Config returns a copy of the config list in insertion order.
func (t *Table) Config() []ConfigPair {
	out := make([]ConfigPair, len(t.config))
	copy(out, t.config)
	return out
}

// Info reports the group count and the sum of every group's column count.
func (t *Table) Info() TableInfo {
	info := TableInfo{NumGroups: len(t.groups)}
	for _, g := range t.groups {
		info.TotalColumns += g.NumColumns()
	}
	return info
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := NewTable(t.name, t.origin)
	for name, g := range t.groups {
		c.groups[name] = g.Clone()
	}
	c.config = t.Config()
	return c
}
