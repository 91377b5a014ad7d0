package engine

import "github.com/google/uuid"

// The bulk helpers create one child per name, in order, and stop at the
// first failure. Children created before the failure stay registered.

// CreateTypeSet creates an empty type group for every name in db.
func CreateTypeSet(db *Database, names []string) error {
	opID := uuid.New().String()
	db.notify(Event{Type: EventBulkStart, OpID: opID, Op: "create_dbtype_set", Data: len(names)})

	created := 0
	for _, name := range names {
		if _, err := db.CreateType(name); err != nil {
			db.notify(Event{Type: EventBulkEnd, OpID: opID, Op: "create_dbtype_set", Name: name, Err: err, Data: created})
			return err
		}
		created++
	}

	db.notify(Event{Type: EventBulkEnd, OpID: opID, Op: "create_dbtype_set", Data: created})
	return nil
}

// CreateTableSet creates an empty table for every name in tg, all sharing origin.
func CreateTableSet(tg *TypeGroup, origin string, names []string) error {
	for _, name := range names {
		if _, err := tg.CreateTable(name, origin); err != nil {
			return err
		}
	}
	return nil
}

// CreateColumnGroupSet creates an empty column group for every name in t.
func CreateColumnGroupSet(t *Table, names []string) error {
	for _, name := range names {
		if _, err := t.CreateColumnGroup(name); err != nil {
			return err
		}
	}
	return nil
}

// AddColumnSet appends every column to g's schema in order.
func AddColumnSet(g *ColumnGroup, columns []Column) error {
	for _, col := range columns {
		if err := g.AddColumn(col); err != nil {
			return err
		}
	}
	return nil
}
