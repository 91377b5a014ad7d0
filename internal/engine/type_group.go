package engine

import "sort"

// InfoPair is an informational entry on a TypeGroup. Keys and values are
// arbitrary Values.
type InfoPair struct {
	Key   Value
	Value Value
}

func (p InfoPair) equal(o InfoPair) bool {
	return p.Key.Equal(o.Key) && p.Value.Equal(o.Value)
}

// TypeGroupInfo summarizes a TypeGroup.
type TypeGroupInfo struct {
	Name      string
	NumTables int
	Info      []InfoPair
}

// TypeGroup owns Tables by name.
type TypeGroup struct {
	name        string
	numOfTables int
	tables      map[string]*Table
	info        []InfoPair
}

// NewTypeGroup creates an empty type group. Duplicate pairs in info are
// dropped, keeping the first occurrence.
func NewTypeGroup(name string, info ...InfoPair) *TypeGroup {
	tg := &TypeGroup{
		name:   name,
		tables: make(map[string]*Table),
	}
	for _, p := range info {
		_ = tg.AddInfo(p.Key, p.Value)
	}
	return tg
}

// Name returns the type group name.
func (tg *TypeGroup) Name() string { return tg.name }

// NumTables returns the maintained table counter.
func (tg *TypeGroup) NumTables() int { return tg.numOfTables }

// AddTable registers t under its name.
func (tg *TypeGroup) AddTable(t *Table) error {
	return tg.register("add_table", t)
}

// CreateTable registers a new empty table and returns it.
func (tg *TypeGroup) CreateTable(name, origin string) (*Table, error) {
	t := NewTable(name, origin)
	if err := tg.register("create_table", t); err != nil {
		return nil, err
	}
	return t, nil
}

func (tg *TypeGroup) register(op string, t *Table) error {
	if _, exists := tg.tables[t.Name()]; exists {
		return newDuplicateError(op, tg.name, t.Name())
	}
	tg.tables[t.Name()] = t
	tg.numOfTables++
	return nil
}

// GetTable returns the live table for mutation.
func (tg *TypeGroup) GetTable(name string) (*Table, error) {
	t, ok := tg.tables[name]
	if !ok {
		return nil, newNotFoundError("get_table", tg.name, name)
	}
	return t, nil
}

// SearchTable returns a detached copy of the table.
func (tg *TypeGroup) SearchTable(name string) (*Table, error) {
	t, ok := tg.tables[name]
	if !ok {
		return nil, newNotFoundError("search_table", tg.name, name)
	}
	return t.Clone(), nil
}

// TableNames returns the registered table names, sorted.
func (tg *TypeGroup) TableNames() []string {
	names := make([]string, 0, len(tg.tables))
	for name := range tg.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AddInfo appends an info pair unless the exact pair is already present.
func (tg *TypeGroup) AddInfo(key, value Value) error {
	p := InfoPair{Key: key, Value: value}
	for _, existing := range tg.info {
		if existing.equal(p) {
			return &Error{
				Kind:   KindInsertError,
				Op:     "add_info",
				Target: tg.name,
				Value:  &key,
				Reason: "duplicate info pair",
			}
		}
	}
	tg.info = append(tg.info, p)
	return nil
}

// ReplaceInfo discards the current info list and installs info, dropping
// duplicate pairs.
func (tg *TypeGroup) ReplaceInfo(info []InfoPair) {
	tg.info = nil
	for _, p := range info {
		_ = tg.AddInfo(p.Key, p.Value)
	}
}

// Info returns the name, table count and a copy of the info list.
func (tg *TypeGroup) Info() TypeGroupInfo {
	pairs := make([]InfoPair, len(tg.info))
	copy(pairs, tg.info)
	return TypeGroupInfo{
		Name:      tg.name,
		NumTables: tg.numOfTables,
		Info:      pairs,
	}
}

// Clone returns a deep copy of the type group.
func (tg *TypeGroup) Clone() *TypeGroup {
	c := &TypeGroup{
		name:        tg.name,
		numOfTables: tg.numOfTables,
		tables:      make(map[string]*Table, len(tg.tables)),
		info:        tg.Info().Info,
	}
	for name, t := range tg.tables {
		c.tables[name] = t.Clone()
	}
	return c
}
