// Package dump walks a Database read-only and renders what it finds.
package dump

import (
	"time"

	"github.com/leengari/typestore/internal/engine"
)

// Snapshot is a point-in-time copy of a Database. Children are ordered by
// name; rows keep insertion order.
type Snapshot struct {
	ID          string `codec:"id"`
	Name        string `codec:"name"`
	CreatedAt   string `codec:"created_at"`
	NumTypes    int    `codec:"num_types"`
	TotalTables int    `codec:"total_tables"`
	Types       []Type `codec:"types"`
}

type Type struct {
	Name      string  `codec:"name"`
	NumTables int     `codec:"num_tables"`
	Info      []Pair  `codec:"info"`
	Tables    []Table `codec:"tables"`
}

type Table struct {
	Name         string  `codec:"name"`
	Origin       string  `codec:"origin"`
	TotalColumns int     `codec:"total_columns"`
	Config       []Pair  `codec:"config"`
	Groups       []Group `codec:"groups"`
}

type Group struct {
	Name    string          `codec:"name"`
	Columns []Column        `codec:"columns"`
	Rows    [][]interface{} `codec:"rows"`
}

type Column struct {
	Name string `codec:"name"`
	Type string `codec:"type"`
}

// Pair holds a key/value entry. Values are kept in their natural Go type.
type Pair struct {
	Key   interface{} `codec:"key"`
	Value interface{} `codec:"value"`
}

// Take copies db into a Snapshot.
func Take(db *engine.Database) (*Snapshot, error) {
	info := db.Info()
	snap := &Snapshot{
		ID:          db.ID(),
		Name:        db.Name(),
		CreatedAt:   db.CreatedAt().Format(time.RFC3339Nano),
		NumTypes:    info.NumTypes,
		TotalTables: info.TotalTables,
		Types:       make([]Type, 0, info.NumTypes),
	}

	for _, typeName := range db.TypeNames() {
		tg, err := db.GetType(typeName)
		if err != nil {
			return nil, err
		}
		t, err := takeType(tg)
		if err != nil {
			return nil, err
		}
		snap.Types = append(snap.Types, t)
	}
	return snap, nil
}

func takeType(tg *engine.TypeGroup) (Type, error) {
	info := tg.Info()
	out := Type{
		Name:      info.Name,
		NumTables: info.NumTables,
		Info:      make([]Pair, len(info.Info)),
	}
	for i, p := range info.Info {
		out.Info[i] = Pair{Key: p.Key.Interface(), Value: p.Value.Interface()}
	}

	for _, tableName := range tg.TableNames() {
		table, err := tg.GetTable(tableName)
		if err != nil {
			return Type{}, err
		}
		t, err := takeTable(table)
		if err != nil {
			return Type{}, err
		}
		out.Tables = append(out.Tables, t)
	}
	return out, nil
}

func takeTable(table *engine.Table) (Table, error) {
	out := Table{
		Name:         table.Name(),
		Origin:       table.Origin(),
		TotalColumns: table.Info().TotalColumns,
	}
	for _, p := range table.Config() {
		out.Config = append(out.Config, Pair{Key: p.Key, Value: p.Value})
	}

	for _, groupName := range table.GroupNames() {
		g, err := table.GetColumnGroup(groupName)
		if err != nil {
			return Table{}, err
		}
		out.Groups = append(out.Groups, takeGroup(g))
	}
	return out, nil
}

func takeGroup(g *engine.ColumnGroup) Group {
	out := Group{Name: g.Name()}
	for _, c := range g.Columns() {
		out.Columns = append(out.Columns, Column{Name: c.Name, Type: c.Kind().String()})
	}
	for _, r := range g.Rows() {
		vals := make([]interface{}, len(r))
		for i, v := range r {
			vals[i] = v.Interface()
		}
		out.Rows = append(out.Rows, vals)
	}
	return out
}
